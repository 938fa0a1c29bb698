package views

import (
	"fmt"
	"sustainwire/content"
	"sustainwire/database"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

type FieldKind int

const (
	TextField FieldKind = iota
	TextAreaField
	SelectField
	FileField
)

// Field is one input of an admin form. Name is the form key the handlers read.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Value    string
	Options  []string
	Required bool
	Hint     string
}

type Notice struct {
	Text  string
	Error bool
}

func formEl(children ...g.Node) g.Node  { return g.El("form", children...) }
func labelEl(children ...g.Node) g.Node { return g.El("label", children...) }

func fieldNode(f Field) g.Node {
	var input g.Node
	switch f.Kind {
	case TextAreaField:
		input = Textarea(Name(f.Name), ID(f.Name), Rows("8"), g.If(f.Required, Required()), g.Text(f.Value))
	case SelectField:
		options := make([]g.Node, 0, len(f.Options))
		for _, o := range f.Options {
			options = append(options, Option(Value(o), g.If(o == f.Value, Selected()), g.Text(o)))
		}
		input = Select(Name(f.Name), ID(f.Name), g.If(f.Required, Required()), g.Group(options))
	case FileField:
		input = Input(Type("file"), Name(f.Name), ID(f.Name), Accept("image/*"), g.If(f.Required, Required()))
	default:
		input = Input(Type("text"), Name(f.Name), ID(f.Name), Value(f.Value), g.If(f.Required, Required()))
	}
	return labelEl(g.Attr("for", f.Name),
		g.Text(f.Label),
		input,
		g.If(f.Hint != "", Small(g.Text(f.Hint))),
	)
}

func FormPage(props LayoutProps, heading, action string, fields []Field) g.Node {
	props.Title = heading
	multipart := false
	nodes := make([]g.Node, 0, len(fields))
	for _, f := range fields {
		if f.Kind == FileField {
			multipart = true
		}
		nodes = append(nodes, fieldNode(f))
	}

	return Layout(props,
		H1(g.Text(heading)),
		formEl(Method("post"), Action(action),
			g.If(multipart, g.Attr("enctype", "multipart/form-data")),
			g.Group(nodes),
			Button(Type("submit"), Class("button primary"), g.Text("Save")),
		),
		P(A(Href("/admin/dashboard"), g.Text("Back to dashboard"))),
	)
}

func LoginPage(props LayoutProps, errorMessage string) g.Node {
	props.Title = "Admin Login"
	return Layout(props,
		H1(g.Text("Admin Login")),
		g.If(errorMessage != "", P(Class("error"), g.Text(errorMessage))),
		formEl(Method("post"), Action("/login"),
			labelEl(g.Attr("for", "username"), g.Text("Username"),
				Input(Type("text"), Name("username"), ID("username"), Required())),
			labelEl(g.Attr("for", "password"), g.Text("Password"),
				Input(Type("password"), Name("password"), ID("password"), Required())),
			Button(Type("submit"), Class("button primary"), g.Text("Login")),
		),
	)
}

type row struct {
	id, title, detail, updatedBy string
}

func adminTable(kind content.Kind, title string, rows []row) g.Node {
	trs := make([]g.Node, 0, len(rows))
	for _, r := range rows {
		trs = append(trs, Tr(
			Td(g.Text(r.title)),
			Td(g.Text(r.detail)),
			Td(g.Text(r.updatedBy)),
			Td(
				A(Href(fmt.Sprintf("/admin/%s/edit/%s", kind, r.id)), g.Text("Edit")), g.Text(" "),
				A(Href(fmt.Sprintf("/admin/analytics/%s/%s", kind, r.id)), g.Text("Analytics")), g.Text(" "),
				A(Href(fmt.Sprintf("/admin/%s/delete/%s", kind, r.id)), Class("text-error"), g.Text("Delete")),
			),
		))
	}
	return Section(
		H2(g.Textf("%s (%d)", title, len(rows))),
		P(A(Href(fmt.Sprintf("/admin/%s/add", kind)), g.Textf("+ Add %s", title))),
		Table(
			THead(Tr(Th(g.Text("Title")), Th(g.Text("Details")), Th(g.Text("Updated by")), Th())),
			TBody(g.Group(trs)),
		),
	)
}

func DashboardPage(props LayoutProps, d content.Dashboard, notice *Notice) g.Node {
	props.Title = "Admin Dashboard"

	newsRows := make([]row, 0, len(d.News))
	for _, n := range d.News {
		newsRows = append(newsRows, row{n.ID, n.Title, n.Category, n.UpdatedBy})
	}
	jobRows := make([]row, 0, len(d.Jobs))
	for _, j := range d.Jobs {
		jobRows = append(jobRows, row{j.ID, j.Title, j.Company + " · " + j.Type, j.UpdatedBy})
	}
	eventRows := make([]row, 0, len(d.Events))
	for _, e := range d.Events {
		eventRows = append(eventRows, row{e.ID, e.Title, e.Date + " · " + e.Location, e.UpdatedBy})
	}
	courseRows := make([]row, 0, len(d.Courses))
	for _, c := range d.Courses {
		courseRows = append(courseRows, row{c.ID, c.Title, c.Provider + " · " + c.Format, c.UpdatedBy})
	}

	return Layout(props,
		H1(g.Textf("Welcome, %s", props.CurrentUser)),
		noticeNode(notice),
		reportSection(d.Report),
		adminTable(content.KindNews, "News", newsRows),
		adminTable(content.KindJobs, "Jobs", jobRows),
		adminTable(content.KindEvents, "Events", eventRows),
		adminTable(content.KindCourses, "Courses", courseRows),
	)
}

func noticeNode(n *Notice) g.Node {
	if n == nil {
		return nil
	}
	if n.Error {
		return P(Class("notice notice-error"), g.Text(n.Text))
	}
	return P(Class("notice"), g.Text(n.Text))
}

func reportSection(r *database.SpecialReport) g.Node {
	if r == nil {
		return Section(
			H2(g.Text("Special Report")),
			P(Em(g.Text("No special report yet. "))), A(Href("/admin/special-report/edit"), g.Text("Create it")),
		)
	}
	return Section(
		H2(g.Text("Special Report")),
		P(Strong(g.Text(r.Title)), g.Textf(" · updated by %s", r.UpdatedBy)),
		P(
			A(Href("/admin/special-report/edit"), g.Text("Edit")), g.Text(" "),
			A(Href("/admin/analytics/special-report/"+r.ID), g.Text("Analytics")),
		),
	)
}

func AnalyticsPage(props LayoutProps, a content.ItemAnalytics) g.Node {
	props.Title = "Analytics - " + a.Title
	return Layout(props,
		H1(g.Textf("Analytics: %s", a.Title)),
		P(g.Textf("Type: %s · Last updated by %s", a.Kind, a.UpdatedBy)),
		Table(
			TBody(
				Tr(Th(g.Text("Views")), Td(g.Textf("%d", a.Analytics.Views))),
				Tr(Th(g.Text("Unique visitors")), Td(g.Textf("%d", a.Analytics.Unique))),
				Tr(Th(g.Text("Top country")), Td(g.Text(a.Analytics.TopCountry))),
			),
		),
		P(A(Href("/admin/dashboard"), g.Text("Back to dashboard"))),
	)
}
