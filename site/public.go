package site

import (
	"errors"
	"net/http"
	"sustainwire/database"
	"sustainwire/views"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	home, err := s.content.Home(r.Context())
	if err != nil {
		s.serverError(w, "loading home page failed", err)
		return
	}
	s.render(w, http.StatusOK, views.HomePage(s.props(r), home))
}

func (s *Server) NewsList(w http.ResponseWriter, r *http.Request) {
	items, err := s.content.News.List(r.Context())
	if err != nil {
		s.serverError(w, "listing news failed", err)
		return
	}
	s.render(w, http.StatusOK, views.NewsListPage(s.props(r), items))
}

func (s *Server) JobsList(w http.ResponseWriter, r *http.Request) {
	items, err := s.content.Jobs.List(r.Context())
	if err != nil {
		s.serverError(w, "listing jobs failed", err)
		return
	}
	s.render(w, http.StatusOK, views.JobsListPage(s.props(r), items))
}

func (s *Server) EventsList(w http.ResponseWriter, r *http.Request) {
	items, err := s.content.Events.List(r.Context())
	if err != nil {
		s.serverError(w, "listing events failed", err)
		return
	}
	s.render(w, http.StatusOK, views.EventsListPage(s.props(r), items))
}

func (s *Server) CoursesList(w http.ResponseWriter, r *http.Request) {
	items, err := s.content.Courses.List(r.Context())
	if err != nil {
		s.serverError(w, "listing courses failed", err)
		return
	}
	s.render(w, http.StatusOK, views.CoursesListPage(s.props(r), items))
}

// lookupMissed redirects a failed detail lookup: misses go back to the list,
// anything else goes home.
func (s *Server) lookupMissed(w http.ResponseWriter, r *http.Request, listPath string, err error) {
	if errors.Is(err, database.ErrNotFound) {
		http.Redirect(w, r, listPath, http.StatusSeeOther)
		return
	}
	s.log.Error("loading item failed", "path", r.URL.Path, "err", err)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) NewsDetail(w http.ResponseWriter, r *http.Request) {
	item, err := s.content.News.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.lookupMissed(w, r, "/news", err)
		return
	}
	s.render(w, http.StatusOK, views.NewsDetailPage(s.props(r), item))
}

func (s *Server) JobDetail(w http.ResponseWriter, r *http.Request) {
	item, err := s.content.Jobs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.lookupMissed(w, r, "/jobs", err)
		return
	}
	s.render(w, http.StatusOK, views.JobDetailPage(s.props(r), item))
}

func (s *Server) EventDetail(w http.ResponseWriter, r *http.Request) {
	item, err := s.content.Events.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.lookupMissed(w, r, "/events", err)
		return
	}
	s.render(w, http.StatusOK, views.EventDetailPage(s.props(r), item))
}

func (s *Server) CourseDetail(w http.ResponseWriter, r *http.Request) {
	item, err := s.content.Courses.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.lookupMissed(w, r, "/courses", err)
		return
	}
	s.render(w, http.StatusOK, views.CourseDetailPage(s.props(r), item))
}

func (s *Server) SpecialReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.content.Reports.Get(r.Context())
	if err != nil {
		s.lookupMissed(w, r, "/", err)
		return
	}
	s.render(w, http.StatusOK, views.ReportDetailPage(s.props(r), report))
}
