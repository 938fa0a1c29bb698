package auth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const SessionCookieName = "sustainwire_session"

var ErrNoSession = errors.New("no active session")

type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Store keeps server-side session records keyed by token. Find must return
// ErrNoSession for unknown or expired tokens.
type Store interface {
	Save(ctx context.Context, s Session) error
	Find(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Manager issues and resolves admin sessions. The cookie carries the token
// plus an HMAC of it under the session secret.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	Secure bool
	now    func() time.Time
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: []byte(secret), ttl: ttl, now: time.Now}
}

func generateAuthToken() (string, error) {
	const tokenLength = 32
	tokenBytes := make([]byte, tokenLength)
	_, err := rand.Read(tokenBytes)
	if err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(tokenBytes)
	return token, nil
}

func (m *Manager) sign(token string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *Manager) cookieValue(token string) string {
	return token + "." + m.sign(token)
}

func (m *Manager) tokenFromCookie(value string) (string, bool) {
	token, sig, ok := strings.Cut(value, ".")
	if !ok || token == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(m.sign(token))) {
		return "", false
	}
	return token, true
}

// Start records a new session for username and sets the session cookie.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, username string) (Session, error) {
	token, err := generateAuthToken()
	if err != nil {
		return Session{}, err
	}

	s := Session{Token: token, Username: username, ExpiresAt: m.now().Add(m.ttl)}
	if err := m.store.Save(ctx, s); err != nil {
		return Session{}, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    m.cookieValue(token),
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return s, nil
}

// Current resolves the request's session. Every failure is ErrNoSession
// except store errors.
func (m *Manager) Current(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, ErrNoSession
	}
	token, ok := m.tokenFromCookie(cookie.Value)
	if !ok {
		return Session{}, ErrNoSession
	}

	s, err := m.store.Find(r.Context(), token)
	if err != nil {
		return Session{}, err
	}
	if !s.ExpiresAt.After(m.now()) {
		return Session{}, ErrNoSession
	}
	return s, nil
}

// End drops the session record (if any) and clears the cookie.
func (m *Manager) End(w http.ResponseWriter, r *http.Request) error {
	var err error
	if cookie, cerr := r.Cookie(SessionCookieName); cerr == nil {
		if token, ok := m.tokenFromCookie(cookie.Value); ok {
			err = m.store.Delete(r.Context(), token)
		}
	}
	ClearCookie(w)
	return err
}

func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// StartCleanup purges expired session records every 15 minutes. The caller
// stops the returned scheduler on shutdown.
func (m *Manager) StartCleanup(logger *slog.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc("@every 15m", func() {
		n, err := m.store.DeleteExpired(context.Background(), m.now())
		if err != nil {
			logger.Error("session cleanup failed", "err", err)
			return
		}
		if n > 0 {
			logger.Info("cleaned up expired sessions", "count", n)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	logger.Info("started session cleanup background task")
	return c, nil
}
