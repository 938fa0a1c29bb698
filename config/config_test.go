package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdminList(t *testing.T) {
	admins, err := ParseAdminList("chirag:$2a$10$abc, chitra:$2a$10$def ,")
	require.NoError(t, err)
	assert.Equal(t, []AdminConfig{
		{Username: "chirag", PasswordHash: "$2a$10$abc"},
		{Username: "chitra", PasswordHash: "$2a$10$def"},
	}, admins)

	_, err = ParseAdminList("nohash")
	assert.Error(t, err)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("ADMIN_USERS", "jay:$2a$10$xyz")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, UploadsLocal, cfg.Uploads.Backend)
	assert.Equal(t, "sqlite:sustainwire.db", cfg.Database.URL)
	require.Len(t, cfg.Admins, 1)
	assert.Equal(t, "jay", cfg.Admins[0].Username)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, ":8081", cfg.Addr())
}

func TestValidate(t *testing.T) {
	base := Config{
		Session: SessionConfig{Secret: "x", TTL: time.Hour},
		Uploads: UploadsConfig{Backend: UploadsLocal, Dir: "public/uploads"},
		Admins:  []AdminConfig{{Username: "a", PasswordHash: "h"}},
	}
	require.NoError(t, base.Validate())

	noSecret := base
	noSecret.Session.Secret = ""
	assert.Error(t, noSecret.Validate())

	noAdmins := base
	noAdmins.Admins = nil
	assert.Error(t, noAdmins.Validate())

	cloud := base
	cloud.Uploads.Backend = UploadsCloudinary
	assert.Error(t, cloud.Validate())
	cloud.Cloudinary = CloudinaryConfig{CloudName: "c", APIKey: "k", APISecret: "s"}
	assert.NoError(t, cloud.Validate())
}

func TestAdminUsersFromDotEnvNeedSingleQuotes(t *testing.T) {
	const hash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	path := filepath.Join(t.TempDir(), ".env")
	content := "ADMIN_USERS='chirag:" + hash + "'\nUNQUOTED=chirag:" + hash + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	env, err := godotenv.Read(path)
	require.NoError(t, err)

	admins, err := ParseAdminList(env["ADMIN_USERS"])
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, hash, admins[0].PasswordHash)

	assert.NotEqual(t, "chirag:"+hash, env["UNQUOTED"])
}
