package site

import (
	"context"
	"errors"
	"net/http"
	"sustainwire/auth"
)

type contextKey string

const signedInUserKey = contextKey("signed_in_user")

func getSignedInUserOrNil(r *http.Request) *auth.Session {
	session, _ := r.Context().Value(signedInUserKey).(*auth.Session)
	return session
}

func getSignedInUsername(r *http.Request) string {
	if session := getSignedInUserOrNil(r); session != nil {
		return session.Username
	}
	return ""
}

// TryPutUserInContextMiddleware resolves the session cookie, if any, and
// stores the session in the request context. Stale or forged cookies are
// cleared.
func (s *Server) TryPutUserInContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(auth.SessionCookieName); err != nil {
			next.ServeHTTP(w, r)
			return
		}

		session, err := s.sessions.Current(r)
		if err != nil {
			// a store outage must not log everyone out
			if errors.Is(err, auth.ErrNoSession) {
				auth.ClearCookie(w)
			} else {
				s.log.Warn("resolving session failed", "err", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), signedInUserKey, &session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func AuthProtectedMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if getSignedInUserOrNil(r) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
