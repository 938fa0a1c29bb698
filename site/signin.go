package site

import (
	"errors"
	"net/http"
	"sustainwire/auth"
	"sustainwire/views"
)

const invalidCredentialsMessage = "Invalid username or password"

func (s *Server) UserSignIn(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if getSignedInUserOrNil(r) == nil {
			s.render(w, http.StatusOK, views.LoginPage(s.props(r), ""))
		} else {
			http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		}
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	name, err := s.auth.Authenticate(r.Context(), username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.log.Info("failed login attempt", "username", username)
		s.render(w, http.StatusUnauthorized, views.LoginPage(s.props(r), invalidCredentialsMessage))
		return
	}
	if err != nil {
		s.serverError(w, "authenticating admin failed", err)
		return
	}

	if _, err := s.sessions.Start(r.Context(), w, name); err != nil {
		s.serverError(w, "starting session failed", err)
		return
	}
	s.log.Info("admin signed in", "username", name)
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (s *Server) UserLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.End(w, r); err != nil {
		s.log.Warn("ending session failed", "err", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
