package site

import (
	"log/slog"
	"net/http"
	"strings"
	"sustainwire/auth"
	"sustainwire/content"
	"sustainwire/views"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	g "github.com/maragudk/gomponents"
)

type Options struct {
	// MaxUploadBytes caps the body of multipart admin submissions.
	MaxUploadBytes int64
	// UploadsDir is served under UploadsURLPrefix. Empty when uploads live
	// on a remote backend.
	UploadsDir       string
	UploadsURLPrefix string
	AssetsDir        string
	// Requests per minute and IP, for all routes and for POST /login.
	RateLimit      int
	LoginRateLimit int
}

type Server struct {
	content  *content.Service
	auth     *auth.Authenticator
	sessions *auth.Manager
	log      *slog.Logger
	opts     Options
}

func NewServer(svc *content.Service, authenticator *auth.Authenticator, sessions *auth.Manager, logger *slog.Logger, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 100
	}
	if opts.LoginRateLimit <= 0 {
		opts.LoginRateLimit = 10
	}
	if opts.AssetsDir == "" {
		opts.AssetsDir = "./assets"
	}
	return &Server{content: svc, auth: authenticator, sessions: sessions, log: logger, opts: opts}
}

func (s *Server) NewRouter() *chi.Mux {
	r := chi.NewRouter()

	CORSMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	r.Use(CORSMiddleware.Handler)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(httprate.LimitByIP(s.opts.RateLimit, time.Minute))
	r.Use(middleware.Recoverer)
	r.Use(s.TryPutUserInContextMiddleware)

	r.Get("/", s.Home)
	r.Get("/news", s.NewsList)
	r.Get("/news/{id}", s.NewsDetail)
	r.Get("/jobs", s.JobsList)
	r.Get("/job/{id}", s.JobDetail)
	r.Get("/events", s.EventsList)
	r.Get("/event/{id}", s.EventDetail)
	r.Get("/courses", s.CoursesList)
	r.Get("/course/{id}", s.CourseDetail)
	r.Get("/special-report", s.SpecialReport)

	r.Get("/login", s.UserSignIn)
	// stricter limit against password guessing
	r.With(httprate.LimitByIP(s.opts.LoginRateLimit, time.Minute)).Post("/login", s.UserSignIn)
	r.HandleFunc("/logout", s.UserLogout)

	r.With(AuthProtectedMiddleware).Route("/admin", func(r chi.Router) {
		r.Get("/dashboard", s.Dashboard)

		r.HandleFunc("/news/add", s.AddNews)
		r.HandleFunc("/news/edit/{id}", s.EditNews)
		r.HandleFunc("/jobs/add", s.AddJob)
		r.HandleFunc("/jobs/edit/{id}", s.EditJob)
		r.HandleFunc("/events/add", s.AddEvent)
		r.HandleFunc("/events/edit/{id}", s.EditEvent)
		r.HandleFunc("/courses/add", s.AddCourse)
		r.HandleFunc("/courses/edit/{id}", s.EditCourse)
		for _, kind := range []content.Kind{content.KindNews, content.KindJobs, content.KindEvents, content.KindCourses} {
			r.Get("/"+string(kind)+"/delete/{id}", s.deleteHandler(kind))
		}

		r.HandleFunc("/special-report/edit", s.EditSpecialReport)
		r.Get("/analytics/{type}/{id}", s.Analytics)
	})

	fileServer := http.FileServer(http.Dir(s.opts.AssetsDir))
	r.Handle("/assets/*", http.StripPrefix("/assets", fileServer))

	if s.opts.UploadsDir != "" {
		prefix := "/" + strings.Trim(s.opts.UploadsURLPrefix, "/")
		if prefix == "/" {
			prefix = "/uploads"
		}
		uploads := http.FileServer(http.Dir(s.opts.UploadsDir))
		r.Handle(prefix+"/*", http.StripPrefix(prefix, uploads))
	}

	return r
}

func (s *Server) props(r *http.Request) views.LayoutProps {
	return views.LayoutProps{CurrentUser: getSignedInUsername(r)}
}

func (s *Server) render(w http.ResponseWriter, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		s.log.Error("rendering page failed", "err", err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	s.log.Error(msg, "err", err)
	http.Error(w, "Server Error", http.StatusInternalServerError)
}
