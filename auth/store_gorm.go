package auth

import (
	"context"
	"errors"
	"sustainwire/database"
	"time"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Save(ctx context.Context, sess Session) error {
	return s.db.WithContext(ctx).Create(&database.AdminSession{
		Token:     sess.Token,
		Username:  sess.Username,
		ExpiresAt: sess.ExpiresAt,
	}).Error
}

func (s *GormStore) Find(ctx context.Context, token string) (Session, error) {
	var row database.AdminSession
	result := s.db.WithContext(ctx).Where("token = ?", token).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Session{}, ErrNoSession
		}
		return Session{}, result.Error
	}
	return Session{Token: row.Token, Username: row.Username, ExpiresAt: row.ExpiresAt}, nil
}

func (s *GormStore) Delete(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Where("token = ?", token).Delete(&database.AdminSession{}).Error
}

func (s *GormStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&database.AdminSession{})
	return result.RowsAffected, result.Error
}
