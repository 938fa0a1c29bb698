package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	UploadsLocal      = "local"
	UploadsCloudinary = "cloudinary"
)

type Config struct {
	Port       int              `mapstructure:"port"`
	Debug      bool             `mapstructure:"debug"`
	Log        LogConfig        `mapstructure:"log"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Session    SessionConfig    `mapstructure:"session"`
	Uploads    UploadsConfig    `mapstructure:"uploads"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	Admins     []AdminConfig    `mapstructure:"admins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DatabaseConfig.URL is either "sqlite:<path>" or a postgres:// connection string.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type SessionConfig struct {
	Secret   string        `mapstructure:"secret"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
}

type UploadsConfig struct {
	Backend   string `mapstructure:"backend"`
	Dir       string `mapstructure:"dir"`
	URLPrefix string `mapstructure:"url_prefix"`
	MaxBytes  int64  `mapstructure:"max_bytes"`
}

type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Folder    string `mapstructure:"folder"`
}

// AdminConfig carries a bcrypt hash, never a plaintext password.
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

var envBindings = map[string]string{
	"port":                  "PORT",
	"debug":                 "DEBUG",
	"log.level":             "LOG_LEVEL",
	"database.url":          "DATABASE_URL",
	"session.secret":        "SESSION_SECRET",
	"session.ttl":           "SESSION_TTL",
	"session.redis_url":     "REDIS_URL",
	"uploads.backend":       "UPLOADS_BACKEND",
	"uploads.dir":           "UPLOADS_DIR",
	"uploads.url_prefix":    "UPLOADS_URL_PREFIX",
	"uploads.max_bytes":     "UPLOADS_MAX_BYTES",
	"cloudinary.cloud_name": "CLOUDINARY_CLOUD_NAME",
	"cloudinary.api_key":    "CLOUDINARY_API_KEY",
	"cloudinary.api_secret": "CLOUDINARY_API_SECRET",
	"cloudinary.folder":     "CLOUDINARY_FOLDER",
	"admin_users":           "ADMIN_USERS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 3000)
	v.SetDefault("log.level", "info")
	v.SetDefault("database.url", "sqlite:sustainwire.db")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("uploads.backend", UploadsLocal)
	v.SetDefault("uploads.dir", "public/uploads")
	v.SetDefault("uploads.url_prefix", "/uploads")
	v.SetDefault("uploads.max_bytes", 10<<20)
	v.SetDefault("cloudinary.folder", "sustainwire")
}

// Load reads .env, then config.yaml (optional), then environment overrides.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/sustainwire")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if raw := v.GetString("admin_users"); raw != "" {
		admins, err := ParseAdminList(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.Admins = append(cfg.Admins, admins...)
	}

	return cfg, nil
}

// ParseAdminList parses "name:hash,name2:hash2". Bcrypt hashes never contain ':' or ','.
// In a .env file the value must be single-quoted, otherwise godotenv expands
// the "$2a"/"$10" parts of the hashes as variables.
func ParseAdminList(raw string) ([]AdminConfig, error) {
	var admins []AdminConfig
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		username, hash, ok := strings.Cut(entry, ":")
		if !ok || username == "" || hash == "" {
			return nil, fmt.Errorf("invalid admin entry %q, expected username:bcrypt-hash", entry)
		}
		admins = append(admins, AdminConfig{Username: username, PasswordHash: hash})
	}
	return admins, nil
}

func (c Config) Validate() error {
	if c.Session.Secret == "" {
		return errors.New("session secret is required (SESSION_SECRET)")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if len(c.Admins) == 0 {
		return errors.New("at least one admin must be configured (admins or ADMIN_USERS)")
	}
	switch c.Uploads.Backend {
	case UploadsLocal:
		if c.Uploads.Dir == "" {
			return errors.New("uploads dir is required for the local backend")
		}
	case UploadsCloudinary:
		if c.Cloudinary.CloudName == "" || c.Cloudinary.APIKey == "" || c.Cloudinary.APISecret == "" {
			return errors.New("cloudinary backend needs cloud name, api key and api secret")
		}
	default:
		return fmt.Errorf("unknown uploads backend %q", c.Uploads.Backend)
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
