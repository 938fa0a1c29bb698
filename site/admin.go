package site

import (
	"errors"
	"net/http"
	"sustainwire/content"
	"sustainwire/database"
	"sustainwire/upload"
	"sustainwire/views"

	"github.com/go-chi/chi/v5"
)

const imageField = "imageUrl"

var jobTypes = []string{"Full-time", "Part-time", "Contract", "Internship"}

var notices = map[string]views.Notice{
	"saved":         {Text: "Changes saved."},
	"deleted":       {Text: "Item deleted."},
	"invalid":       {Text: "Please fill in every required field.", Error: true},
	"upload-failed": {Text: "The image could not be uploaded. Nothing was saved.", Error: true},
	"save-failed":   {Text: "The changes could not be saved.", Error: true},
}

func noticeFor(err error) string {
	switch content.StageOf(err) {
	case content.StageValidate:
		return "invalid"
	case content.StageUpload:
		return "upload-failed"
	default:
		return "save-failed"
	}
}

func toDashboard(w http.ResponseWriter, r *http.Request, notice string) {
	target := "/admin/dashboard"
	if notice != "" {
		target += "?notice=" + notice
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// finishWrite logs a failed admin write and sends the admin back to the
// dashboard with a notice describing the outcome.
func (s *Server) finishWrite(w http.ResponseWriter, r *http.Request, err error, success string) {
	if err == nil {
		toDashboard(w, r, success)
		return
	}

	attrs := []any{"user", getSignedInUsername(r), "err", err}
	var opErr *content.OpError
	if errors.As(err, &opErr) {
		attrs = append(attrs, "kind", opErr.Kind, "op", opErr.Op, "stage", opErr.Stage, "id", opErr.ID)
	}
	s.log.Error("admin write failed", attrs...)
	toDashboard(w, r, noticeFor(err))
}

// readImage parses a multipart submission and returns the image field, or nil
// when none was sent. On failure it has already answered the request.
func (s *Server) readImage(w http.ResponseWriter, r *http.Request, kind content.Kind, op, id string) (*upload.File, func(), bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.finishWrite(w, r, &content.OpError{Kind: kind, Op: op, ID: id, Stage: content.StageUpload, Err: err}, "")
		return nil, nil, false
	}

	img, done, err := upload.FromRequest(r, imageField)
	if errors.Is(err, upload.ErrNoFile) {
		return nil, func() {}, true
	}
	if err != nil {
		s.finishWrite(w, r, &content.OpError{Kind: kind, Op: op, ID: id, Stage: content.StageUpload, Err: err}, "")
		return nil, nil, false
	}
	return img, done, true
}

// itemMissing redirects an edit form whose item cannot be loaded.
func (s *Server) itemMissing(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is(err, database.ErrNotFound) {
		s.log.Error("loading item for edit failed", "path", r.URL.Path, "err", err)
	}
	toDashboard(w, r, "")
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.content.Dashboard(r.Context())
	if err != nil {
		s.serverError(w, "loading dashboard failed", err)
		return
	}

	var notice *views.Notice
	if n, ok := notices[r.URL.Query().Get("notice")]; ok {
		notice = &n
	}
	s.render(w, http.StatusOK, views.DashboardPage(s.props(r), dashboard, notice))
}

func (s *Server) deleteHandler(kind content.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.content.Delete(r.Context(), kind, chi.URLParam(r, "id"))
		s.finishWrite(w, r, err, "deleted")
	}
}

func (s *Server) Analytics(w http.ResponseWriter, r *http.Request) {
	kind, ok := content.ParseKind(chi.URLParam(r, "type"))
	if !ok {
		toDashboard(w, r, "")
		return
	}
	stats, err := s.content.Analytics(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		s.itemMissing(w, r, err)
		return
	}
	s.render(w, http.StatusOK, views.AnalyticsPage(s.props(r), stats))
}

// News

func newsFields(n database.News, imageRequired bool) []views.Field {
	hint := ""
	if !imageRequired {
		hint = "Leave empty to keep the current image."
	}
	return []views.Field{
		{Name: "title", Label: "Title", Value: n.Title, Required: true},
		{Name: "category", Label: "Category", Value: n.Category, Required: true},
		{Name: "content", Label: "Content", Kind: views.TextAreaField, Value: n.Content, Required: true},
		{Name: imageField, Label: "Image", Kind: views.FileField, Required: imageRequired, Hint: hint},
	}
}

func newsInput(r *http.Request) content.NewsInput {
	return content.NewsInput{
		Title:    r.FormValue("title"),
		Content:  r.FormValue("content"),
		Category: r.FormValue("category"),
	}
}

func (s *Server) AddNews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		s.render(w, http.StatusOK, views.FormPage(s.props(r), "Add News", "/admin/news/add", newsFields(database.News{}, true)))
	case "POST":
		img, done, ok := s.readImage(w, r, content.KindNews, "create", "")
		if !ok {
			return
		}
		defer done()
		_, err := s.content.CreateNews(r.Context(), getSignedInUsername(r), newsInput(r), img)
		s.finishWrite(w, r, err, "saved")
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) EditNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	switch r.Method {
	case "GET":
		item, err := s.content.News.GetByID(r.Context(), id)
		if err != nil {
			s.itemMissing(w, r, err)
			return
		}
		s.render(w, http.StatusOK, views.FormPage(s.props(r), "Edit News", "/admin/news/edit/"+id, newsFields(item, false)))
	case "POST":
		img, done, ok := s.readImage(w, r, content.KindNews, "update", id)
		if !ok {
			return
		}
		defer done()
		_, err := s.content.UpdateNews(r.Context(), getSignedInUsername(r), id, newsInput(r), img)
		s.finishWrite(w, r, err, "saved")
	default:
		methodNotAllowed(w)
	}
}

// Jobs

func jobFields(j database.Job) []views.Field {
	return []views.Field{
		{Name: "title", Label: "Title", Value: j.Title, Required: true},
		{Name: "company", Label: "Company", Value: j.Company, Required: true},
		{Name: "location", Label: "Location", Value: j.Location, Required: true},
		{Name: "type", Label: "Type", Kind: views.SelectField, Options: jobTypes, Value: j.Type, Required: true},
		{Name: "description", Label: "Description", Kind: views.TextAreaField, Value: j.Description, Required: true},
		{Name: "applyLink", Label: "Apply link", Value: j.ApplyLink, Required: true},
	}
}

func jobInput(r *http.Request) content.JobInput {
	return content.JobInput{
		Title:       r.FormValue("title"),
		Company:     r.FormValue("company"),
		Location:    r.FormValue("location"),
		Type:        r.FormValue("type"),
		Description: r.FormValue("description"),
		ApplyLink:   r.FormValue("applyLink"),
	}
}

func (s *Server) AddJob(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		s.render(w, http.StatusOK, views.FormPage(s.props(r), "Add Job", "/admin/jobs/add", jobFields(database.Job{})))
	case "POST":
		_, err := s.content.CreateJob(r.Context(), getSignedInUsername(r), jobInput(r))
		s.finishWrite(w, r, err, "saved")
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) EditJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	switch r.Method {
	case "GET":
		item, err := s.content.Jobs.GetByID(r.Context(), id)
		if err != nil {
			s.itemMissing(w, r, err)
			return
		}
		s.render(w, http.StatusOK, views.FormPage(s.props(r), "Edit Job", "/admin/jobs/edit/"+id, jobFields(item)))
	case "POST":
		_, err := s.content.UpdateJob(r.Context(), getSignedInUsername(r), id, jobInput(r))
		s.finishWrite(w, r, err, "saved")
	default:
		methodNotAllowed(w)
	}
}

// Events

func eventFields(e database.Event) []views.Field {
	return []views.Field{
		{Name: "title", Label: "Title", Value: e.Title, Required: true},
		{Name: "date", Label: "Date", Value: e.Date, Required: true, Hint: "Free text, e.g. 12-14 March 2025"},
		{Name: "location", Label: "Location", Value: e.Location, Required: true},
		{Name: "description", Label: "Description", Kind: views.TextAreaField, Value: e.Description, Required: true},
		{Name: "applyLink", Label: "Registration link", Value: e.ApplyLink, Required: true},
	}
}

func eventInput(r *http.Request) content.EventInput {
	return content.EventInput{
		Title:       r.FormValue("title"),
		Date:        r.FormValue("date"),
		Location:    r.FormValue("location"),
		Description: r.FormValue("description"),
		ApplyLink:   r.FormValue("applyLink"),
	}
}

func (s *Server) AddEvent(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		s.render(w, http.StatusOK, views.FormPage(s.props(r), "Add Event", "/admin/events/add", eventFields(database.Event{})))
	case "POST":
		_, err := s.content.CreateEvent(r.Context(), getSignedInUsername(r), eventInput(r))
		s.finishWrite(w, r, err, "saved")
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) EditEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	switch r.Method {
	case "GET":
		item, err := s.content.Events.GetByID(r.Context(), id)
		if err != nil {
			s.itemMissing(w, r, err)
			return
		}
		s.render(w, http.StatusOK, views.FormPage(s.props(r), "Edit Event", "/admin/events/edit/"+id, eventFields(item)))
	case "POST":
		_, err := s.content.UpdateEvent(r.Context(), getSignedInUsername(r), id, eventInput(r))
		s.finishWrite(w, r, err, "saved")
	default:
		methodNotAllowed(w)
	}
}

// Courses

func courseFields(c database.Course) []views.Field {
	return []views.Field{
		{Name: "title", Label: "Title", Value: c.Title, Required: true},
		{Name: "provider", Label: "Provider", Value: c.Provider, Required: true},
		{Name: "format", Label: "Format", Value: c.Format, Required: true, Hint: "e.g. Online, In person"},
		{Name: "description", Label: "Description", Kind: views.TextAreaField, Value: c.Description, Required: true},
		{Name: "applyLink", Label: "Enrollment link", Value: c.ApplyLink, Required: true},
	}
}

func courseInput(r *http.Request) content.CourseInput {
	return content.CourseInput{
		Title:       r.FormValue("title"),
		Provider:    r.FormValue("provider"),
		Format:      r.FormValue("format"),
		Description: r.FormValue("description"),
		ApplyLink:   r.FormValue("applyLink"),
	}
}

func (s *Server) AddCourse(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		s.render(w, http.StatusOK, views.FormPage(s.props(r), "Add Course", "/admin/courses/add", courseFields(database.Course{})))
	case "POST":
		_, err := s.content.CreateCourse(r.Context(), getSignedInUsername(r), courseInput(r))
		s.finishWrite(w, r, err, "saved")
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) EditCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	switch r.Method {
	case "GET":
		item, err := s.content.Courses.GetByID(r.Context(), id)
		if err != nil {
			s.itemMissing(w, r, err)
			return
		}
		s.render(w, http.StatusOK, views.FormPage(s.props(r), "Edit Course", "/admin/courses/edit/"+id, courseFields(item)))
	case "POST":
		_, err := s.content.UpdateCourse(r.Context(), getSignedInUsername(r), id, courseInput(r))
		s.finishWrite(w, r, err, "saved")
	default:
		methodNotAllowed(w)
	}
}

// Special report

func reportFields(rep database.SpecialReport) []views.Field {
	return []views.Field{
		{Name: "title", Label: "Title", Value: rep.Title, Required: true},
		{Name: "content", Label: "Content", Kind: views.TextAreaField, Value: rep.Content, Required: true},
		{Name: "applyLink", Label: "Read more link", Value: rep.ApplyLink},
		{Name: imageField, Label: "Image", Kind: views.FileField, Hint: "Leave empty to keep the current image."},
	}
}

func (s *Server) EditSpecialReport(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		report, err := s.content.Reports.Get(r.Context())
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			s.itemMissing(w, r, err)
			return
		}
		s.render(w, http.StatusOK, views.FormPage(s.props(r), "Edit Special Report", "/admin/special-report/edit", reportFields(report)))
	case "POST":
		img, done, ok := s.readImage(w, r, content.KindSpecialReport, "upsert", "")
		if !ok {
			return
		}
		defer done()
		in := content.ReportInput{
			Title:     r.FormValue("title"),
			Content:   r.FormValue("content"),
			ApplyLink: r.FormValue("applyLink"),
		}
		_, err := s.content.UpsertReport(r.Context(), getSignedInUsername(r), in, img)
		s.finishWrite(w, r, err, "saved")
	default:
		methodNotAllowed(w)
	}
}
