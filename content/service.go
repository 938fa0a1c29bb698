package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sustainwire/constants"
	"sustainwire/database"
	"sustainwire/upload"

	"gorm.io/gorm"
)

// Service is the admin write path and the read models shared by the public
// pages. Writes return *OpError on failure.
type Service struct {
	News    *database.Repository[database.News, *database.News]
	Jobs    *database.Repository[database.Job, *database.Job]
	Events  *database.Repository[database.Event, *database.Event]
	Courses *database.Repository[database.Course, *database.Course]
	Reports *database.SpecialReportStore

	uploads upload.Adapter
	log     *slog.Logger
}

func NewService(db *gorm.DB, uploads upload.Adapter, logger *slog.Logger) *Service {
	return &Service{
		News:    database.NewRepository[database.News](db),
		Jobs:    database.NewRepository[database.Job](db),
		Events:  database.NewRepository[database.Event](db),
		Courses: database.NewRepository[database.Course](db),
		Reports: database.NewSpecialReportStore(db),
		uploads: uploads,
		log:     logger,
	}
}

func invalid(kind Kind, op, id string, in any) error {
	if err := validate.Struct(in); err != nil {
		return &OpError{Kind: kind, Op: op, ID: id, Stage: StageValidate, Err: err}
	}
	return nil
}

// write uploads img (if any) before calling persist with its URL. When
// persist fails the fresh upload is removed again.
func (s *Service) write(ctx context.Context, kind Kind, op, id string, img *upload.File, persist func(imageURL string) error) error {
	var stored upload.Stored
	if img != nil {
		var err error
		stored, err = s.uploads.Store(ctx, *img)
		if err != nil {
			return &OpError{Kind: kind, Op: op, ID: id, Stage: StageUpload, Err: err}
		}
	}

	if err := persist(stored.URL); err != nil {
		if img != nil {
			if rmErr := s.uploads.Remove(context.WithoutCancel(ctx), stored.Key); rmErr != nil {
				s.log.Warn("removing orphaned upload failed", "kind", kind, "key", stored.Key, "err", rmErr)
			}
		}
		return &OpError{Kind: kind, Op: op, ID: id, Stage: StageStore, Err: err}
	}
	return nil
}

func (s *Service) CreateNews(ctx context.Context, actor string, in NewsInput, img *upload.File) (database.News, error) {
	in = in.normalized()
	if err := invalid(KindNews, "create", "", in); err != nil {
		return database.News{}, err
	}
	if img == nil {
		return database.News{}, &OpError{Kind: KindNews, Op: "create", Stage: StageValidate, Err: ErrImageRequired}
	}

	var out database.News
	err := s.write(ctx, KindNews, "create", "", img, func(imageURL string) error {
		item := database.News{ImageURL: imageURL}
		in.apply(&item)
		item.UpdatedBy = actor
		var err error
		out, err = s.News.Create(ctx, item)
		return err
	})
	return out, err
}

// UpdateNews keeps the current image unless img is non-nil.
func (s *Service) UpdateNews(ctx context.Context, actor, id string, in NewsInput, img *upload.File) (database.News, error) {
	in = in.normalized()
	if err := invalid(KindNews, "update", id, in); err != nil {
		return database.News{}, err
	}

	var out database.News
	err := s.write(ctx, KindNews, "update", id, img, func(imageURL string) error {
		var err error
		out, err = s.News.Update(ctx, id, func(n *database.News) {
			in.apply(n)
			n.UpdatedBy = actor
			if imageURL != "" {
				n.ImageURL = imageURL
			}
		})
		return err
	})
	return out, err
}

func (s *Service) CreateJob(ctx context.Context, actor string, in JobInput) (database.Job, error) {
	in = in.normalized()
	if err := invalid(KindJobs, "create", "", in); err != nil {
		return database.Job{}, err
	}

	var out database.Job
	err := s.write(ctx, KindJobs, "create", "", nil, func(string) error {
		var item database.Job
		in.apply(&item)
		item.UpdatedBy = actor
		var err error
		out, err = s.Jobs.Create(ctx, item)
		return err
	})
	return out, err
}

func (s *Service) UpdateJob(ctx context.Context, actor, id string, in JobInput) (database.Job, error) {
	in = in.normalized()
	if err := invalid(KindJobs, "update", id, in); err != nil {
		return database.Job{}, err
	}

	var out database.Job
	err := s.write(ctx, KindJobs, "update", id, nil, func(string) error {
		var err error
		out, err = s.Jobs.Update(ctx, id, func(j *database.Job) {
			in.apply(j)
			j.UpdatedBy = actor
		})
		return err
	})
	return out, err
}

func (s *Service) CreateEvent(ctx context.Context, actor string, in EventInput) (database.Event, error) {
	in = in.normalized()
	if err := invalid(KindEvents, "create", "", in); err != nil {
		return database.Event{}, err
	}

	var out database.Event
	err := s.write(ctx, KindEvents, "create", "", nil, func(string) error {
		var item database.Event
		in.apply(&item)
		item.UpdatedBy = actor
		var err error
		out, err = s.Events.Create(ctx, item)
		return err
	})
	return out, err
}

func (s *Service) UpdateEvent(ctx context.Context, actor, id string, in EventInput) (database.Event, error) {
	in = in.normalized()
	if err := invalid(KindEvents, "update", id, in); err != nil {
		return database.Event{}, err
	}

	var out database.Event
	err := s.write(ctx, KindEvents, "update", id, nil, func(string) error {
		var err error
		out, err = s.Events.Update(ctx, id, func(e *database.Event) {
			in.apply(e)
			e.UpdatedBy = actor
		})
		return err
	})
	return out, err
}

func (s *Service) CreateCourse(ctx context.Context, actor string, in CourseInput) (database.Course, error) {
	in = in.normalized()
	if err := invalid(KindCourses, "create", "", in); err != nil {
		return database.Course{}, err
	}

	var out database.Course
	err := s.write(ctx, KindCourses, "create", "", nil, func(string) error {
		var item database.Course
		in.apply(&item)
		item.UpdatedBy = actor
		var err error
		out, err = s.Courses.Create(ctx, item)
		return err
	})
	return out, err
}

func (s *Service) UpdateCourse(ctx context.Context, actor, id string, in CourseInput) (database.Course, error) {
	in = in.normalized()
	if err := invalid(KindCourses, "update", id, in); err != nil {
		return database.Course{}, err
	}

	var out database.Course
	err := s.write(ctx, KindCourses, "update", id, nil, func(string) error {
		var err error
		out, err = s.Courses.Update(ctx, id, func(c *database.Course) {
			in.apply(c)
			c.UpdatedBy = actor
		})
		return err
	})
	return out, err
}

// UpsertReport edits the special report, creating it when none exists.
func (s *Service) UpsertReport(ctx context.Context, actor string, in ReportInput, img *upload.File) (database.SpecialReport, error) {
	in = in.normalized()
	if err := invalid(KindSpecialReport, "upsert", "", in); err != nil {
		return database.SpecialReport{}, err
	}

	var out database.SpecialReport
	err := s.write(ctx, KindSpecialReport, "upsert", "", img, func(imageURL string) error {
		var err error
		out, err = s.Reports.Upsert(ctx, func(r *database.SpecialReport) {
			in.apply(r)
			r.UpdatedBy = actor
			if imageURL != "" {
				r.ImageURL = imageURL
			}
		})
		return err
	})
	return out, err
}

// Delete removes one item. Deleting an unknown id is not an error.
func (s *Service) Delete(ctx context.Context, kind Kind, id string) error {
	var err error
	switch kind {
	case KindNews:
		err = s.News.Delete(ctx, id)
	case KindJobs:
		err = s.Jobs.Delete(ctx, id)
	case KindEvents:
		err = s.Events.Delete(ctx, id)
	case KindCourses:
		err = s.Courses.Delete(ctx, id)
	default:
		err = fmt.Errorf("%s cannot be deleted", kind)
		return &OpError{Kind: kind, Op: "delete", ID: id, Stage: StageValidate, Err: err}
	}
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return &OpError{Kind: kind, Op: "delete", ID: id, Stage: StageStore, Err: err}
	}
	return nil
}

type Home struct {
	Report  database.SpecialReport
	News    []database.News
	Jobs    []database.Job
	Events  []database.Event
	Courses []database.Course
}

// Home builds the landing page previews. It creates the placeholder special
// report on first use.
func (s *Service) Home(ctx context.Context) (Home, error) {
	var (
		h   Home
		err error
	)
	if h.Report, err = s.Reports.Ensure(ctx); err != nil {
		return h, err
	}
	if h.News, err = s.News.ListLimited(ctx, constants.HOME_NEWS_LIMIT); err != nil {
		return h, err
	}
	if h.Jobs, err = s.Jobs.ListLimited(ctx, constants.HOME_JOBS_LIMIT); err != nil {
		return h, err
	}
	if h.Events, err = s.Events.ListLimited(ctx, constants.HOME_EVENTS_LIMIT); err != nil {
		return h, err
	}
	if h.Courses, err = s.Courses.ListLimited(ctx, constants.HOME_COURSES_LIMIT); err != nil {
		return h, err
	}
	return h, nil
}

type Dashboard struct {
	News    []database.News
	Jobs    []database.Job
	Events  []database.Event
	Courses []database.Course
	Report  *database.SpecialReport
}

// Dashboard loads every item of every type, unbounded.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var (
		d   Dashboard
		err error
	)
	if d.News, err = s.News.List(ctx); err != nil {
		return d, err
	}
	if d.Jobs, err = s.Jobs.List(ctx); err != nil {
		return d, err
	}
	if d.Events, err = s.Events.List(ctx); err != nil {
		return d, err
	}
	if d.Courses, err = s.Courses.List(ctx); err != nil {
		return d, err
	}
	report, err := s.Reports.Get(ctx)
	switch {
	case err == nil:
		d.Report = &report
	case !errors.Is(err, database.ErrNotFound):
		return d, err
	}
	return d, nil
}

// ItemAnalytics is the read-only analytics view of one item.
type ItemAnalytics struct {
	Kind      Kind
	ID        string
	Title     string
	UpdatedBy string
	Analytics database.Analytics
}

func (s *Service) Analytics(ctx context.Context, kind Kind, id string) (ItemAnalytics, error) {
	view := ItemAnalytics{Kind: kind, ID: id}
	var (
		doc   database.Document
		title string
	)
	switch kind {
	case KindNews:
		item, err := s.News.GetByID(ctx, id)
		if err != nil {
			return view, err
		}
		doc, title = item.Document, item.Title
	case KindJobs:
		item, err := s.Jobs.GetByID(ctx, id)
		if err != nil {
			return view, err
		}
		doc, title = item.Document, item.Title
	case KindEvents:
		item, err := s.Events.GetByID(ctx, id)
		if err != nil {
			return view, err
		}
		doc, title = item.Document, item.Title
	case KindCourses:
		item, err := s.Courses.GetByID(ctx, id)
		if err != nil {
			return view, err
		}
		doc, title = item.Document, item.Title
	case KindSpecialReport:
		item, err := s.Reports.Get(ctx)
		if err != nil {
			return view, err
		}
		if item.ID != id {
			return view, database.ErrNotFound
		}
		doc, title = item.Document, item.Title
	default:
		return view, database.ErrNotFound
	}

	view.Title = title
	view.UpdatedBy = doc.UpdatedBy
	view.Analytics = doc.Stats()
	return view, nil
}
