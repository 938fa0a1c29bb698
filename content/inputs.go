package content

import (
	"strings"
	"sustainwire/constants"
	"sustainwire/database"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Inputs carry the editable fields of each type as submitted by the admin forms.

type NewsInput struct {
	Title    string `validate:"required"`
	Content  string `validate:"required"`
	Category string `validate:"required"`
}

func (in NewsInput) apply(n *database.News) {
	n.Title = in.Title
	n.Content = in.Content
	n.Category = in.Category
}

type JobInput struct {
	Title       string `validate:"required"`
	Company     string `validate:"required"`
	Location    string `validate:"required"`
	Type        string `validate:"required"`
	Description string `validate:"required"`
	ApplyLink   string `validate:"required"`
}

func (in JobInput) apply(j *database.Job) {
	j.Title = in.Title
	j.Company = in.Company
	j.Location = in.Location
	j.Type = in.Type
	j.TypeColor = TypeColor(in.Type)
	j.Description = in.Description
	j.ApplyLink = in.ApplyLink
}

type EventInput struct {
	Title       string `validate:"required"`
	Date        string `validate:"required"`
	Location    string `validate:"required"`
	Description string `validate:"required"`
	ApplyLink   string `validate:"required"`
}

func (in EventInput) apply(e *database.Event) {
	e.Title = in.Title
	e.Date = in.Date
	e.Location = in.Location
	e.Description = in.Description
	e.ApplyLink = in.ApplyLink
}

type CourseInput struct {
	Title       string `validate:"required"`
	Provider    string `validate:"required"`
	Format      string `validate:"required"`
	Description string `validate:"required"`
	ApplyLink   string `validate:"required"`
}

func (in CourseInput) apply(c *database.Course) {
	c.Title = in.Title
	c.Provider = in.Provider
	c.Format = in.Format
	c.Description = in.Description
	c.ApplyLink = in.ApplyLink
}

// ReportInput.ApplyLink may be empty, it then falls back to "#".
type ReportInput struct {
	Title     string `validate:"required"`
	Content   string `validate:"required"`
	ApplyLink string
}

func (in ReportInput) apply(r *database.SpecialReport) {
	r.Title = in.Title
	r.Content = in.Content
	r.ApplyLink = in.ApplyLink
	if r.ApplyLink == "" {
		r.ApplyLink = constants.DEFAULT_APPLY_LINK
	}
}

func trimmed(s string) string { return strings.TrimSpace(s) }

// normalized trims surrounding whitespace so blank fields fail validation.
func (in NewsInput) normalized() NewsInput {
	return NewsInput{Title: trimmed(in.Title), Content: trimmed(in.Content), Category: trimmed(in.Category)}
}

func (in JobInput) normalized() JobInput {
	return JobInput{
		Title: trimmed(in.Title), Company: trimmed(in.Company), Location: trimmed(in.Location),
		Type: trimmed(in.Type), Description: trimmed(in.Description), ApplyLink: trimmed(in.ApplyLink),
	}
}

func (in EventInput) normalized() EventInput {
	return EventInput{
		Title: trimmed(in.Title), Date: trimmed(in.Date), Location: trimmed(in.Location),
		Description: trimmed(in.Description), ApplyLink: trimmed(in.ApplyLink),
	}
}

func (in CourseInput) normalized() CourseInput {
	return CourseInput{
		Title: trimmed(in.Title), Provider: trimmed(in.Provider), Format: trimmed(in.Format),
		Description: trimmed(in.Description), ApplyLink: trimmed(in.ApplyLink),
	}
}

func (in ReportInput) normalized() ReportInput {
	return ReportInput{Title: trimmed(in.Title), Content: trimmed(in.Content), ApplyLink: trimmed(in.ApplyLink)}
}
