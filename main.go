package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sustainwire/auth"
	"sustainwire/config"
	"sustainwire/constants"
	"sustainwire/content"
	"sustainwire/database"
	"sustainwire/logging"
	"sustainwire/site"
	"sustainwire/upload"
	"syscall"
	"time"

	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := logging.New(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("application stopped", "err", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. Every resource it opens is released
// before it returns, including on startup errors.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	db, err := database.Open(cfg.Database.URL, cfg.Debug)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close(db)

	if err := auth.SeedAdmins(ctx, db, cfg.Admins); err != nil {
		return fmt.Errorf("seeding admins: %w", err)
	}

	store, closeStore, err := sessionStore(ctx, cfg, db, logger)
	if err != nil {
		return fmt.Errorf("creating session store: %w", err)
	}
	defer closeStore()

	sessions := auth.NewManager(store, cfg.Session.Secret, cfg.Session.TTL)
	sessions.Secure = !cfg.Debug
	cleanup, err := sessions.StartCleanup(logger)
	if err != nil {
		return fmt.Errorf("starting session cleanup: %w", err)
	}
	defer func() { <-cleanup.Stop().Done() }()

	uploads, err := uploadAdapter(cfg)
	if err != nil {
		return fmt.Errorf("creating upload adapter: %w", err)
	}

	opts := site.Options{
		MaxUploadBytes:   cfg.Uploads.MaxBytes,
		UploadsURLPrefix: cfg.Uploads.URLPrefix,
	}
	if cfg.Uploads.Backend == config.UploadsLocal {
		opts.UploadsDir = cfg.Uploads.Dir
	}
	server := site.NewServer(content.NewService(db, uploads, logger), auth.NewAuthenticator(db), sessions, logger, opts)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", "http://localhost"+cfg.Addr(), "public_url", constants.PUBLIC_URL, "uploads", cfg.Uploads.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Block until a signal is received or the listener fails
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server stopped: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// sessionStore prefers redis when configured and falls back to the database.
func sessionStore(ctx context.Context, cfg config.Config, db *gorm.DB, logger *slog.Logger) (auth.Store, func(), error) {
	if cfg.Session.RedisURL == "" {
		return auth.NewGormStore(db), func() {}, nil
	}

	store, err := auth.NewRedisStore(cfg.Session.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		store.Close()
		return nil, nil, err
	}
	logger.Info("using redis session store")
	return store, func() { store.Close() }, nil
}

func uploadAdapter(cfg config.Config) (upload.Adapter, error) {
	if cfg.Uploads.Backend == config.UploadsCloudinary {
		c := cfg.Cloudinary
		return upload.NewCloudinary(c.CloudName, c.APIKey, c.APISecret, c.Folder)
	}
	return upload.NewLocal(cfg.Uploads.Dir, cfg.Uploads.URLPrefix)
}
