package auth

import (
	"context"
	"errors"
	"fmt"
	"sustainwire/config"
	"sustainwire/database"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Authenticator checks credentials against the bcrypt hashes of the admin_users table.
type Authenticator struct {
	db *gorm.DB
}

func NewAuthenticator(db *gorm.DB) *Authenticator {
	return &Authenticator{db: db}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// unknown usernames still pay for one bcrypt comparison
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// Authenticate returns the canonical username on success.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	admin, err := database.GetAdminUser(ctx, a.db, username)
	if errors.Is(err, database.ErrNotFound) {
		compareDummy(password)
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return admin.Username, nil
}

// SeedAdmins installs the configured admins. Every entry must carry a bcrypt hash.
func SeedAdmins(ctx context.Context, db *gorm.DB, admins []config.AdminConfig) error {
	for _, admin := range admins {
		if _, err := bcrypt.Cost([]byte(admin.PasswordHash)); err != nil {
			return fmt.Errorf("admin %q: password_hash is not a bcrypt hash: %w", admin.Username, err)
		}
		if err := database.UpsertAdminUser(ctx, db, admin.Username, admin.PasswordHash); err != nil {
			return fmt.Errorf("admin %q: %w", admin.Username, err)
		}
	}
	return nil
}
