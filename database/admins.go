package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func GetAdminUser(ctx context.Context, db *gorm.DB, username string) (*AdminUser, error) {
	var admin AdminUser
	result := db.WithContext(ctx).Where(&AdminUser{Username: username}).First(&admin)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &admin, nil
}

// UpsertAdminUser creates the admin or replaces its password hash.
func UpsertAdminUser(ctx context.Context, db *gorm.DB, username, passwordHash string) error {
	admin := AdminUser{Username: username, PasswordHash: passwordHash}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
	}).Create(&admin).Error
}
