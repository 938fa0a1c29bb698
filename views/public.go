package views

import (
	"sustainwire/constants"
	"sustainwire/content"
	"sustainwire/database"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

func newsCard(n database.News) g.Node {
	return Article(Class("card"),
		Img(Src(n.ImageURL), Alt(n.Title)),
		Span(Class("badge"), g.Text(n.Category)),
		H3(A(Href("/news/"+n.ID), g.Text(n.Title))),
	)
}

func jobCard(j database.Job) g.Node {
	return Article(Class("card"),
		Span(Class("badge badge-"+j.TypeColor), g.Text(j.Type)),
		H3(A(Href("/job/"+j.ID), g.Text(j.Title))),
		P(g.Textf("%s · %s", j.Company, j.Location)),
	)
}

func eventCard(e database.Event) g.Node {
	return Article(Class("card"),
		H3(A(Href("/event/"+e.ID), g.Text(e.Title))),
		P(g.Textf("%s · %s", e.Date, e.Location)),
	)
}

func courseCard(c database.Course) g.Node {
	return Article(Class("card"),
		H3(A(Href("/course/"+c.ID), g.Text(c.Title))),
		P(g.Textf("%s · %s", c.Provider, c.Format)),
	)
}

func newsCards(items []database.News) []g.Node {
	nodes := make([]g.Node, 0, len(items))
	for _, n := range items {
		nodes = append(nodes, newsCard(n))
	}
	return nodes
}

func jobCards(items []database.Job) []g.Node {
	nodes := make([]g.Node, 0, len(items))
	for _, j := range items {
		nodes = append(nodes, jobCard(j))
	}
	return nodes
}

func eventCards(items []database.Event) []g.Node {
	nodes := make([]g.Node, 0, len(items))
	for _, e := range items {
		nodes = append(nodes, eventCard(e))
	}
	return nodes
}

func courseCards(items []database.Course) []g.Node {
	nodes := make([]g.Node, 0, len(items))
	for _, c := range items {
		nodes = append(nodes, courseCard(c))
	}
	return nodes
}

func emptyState(n int, what string) g.Node {
	return g.If(n == 0, P(Em(g.Textf("No %s yet.", what))))
}

func listSection(title, href string, n int, cards []g.Node) g.Node {
	return Section(
		H2(A(Href(href), g.Text(title))),
		emptyState(n, title),
		g.Group(cards),
	)
}

func applyButton(link string) g.Node {
	return g.If(link != "" && link != constants.DEFAULT_APPLY_LINK,
		P(A(Class("button primary"), Href(link), Target("_blank"), Rel("noopener"), g.Text("Apply / Learn more"))),
	)
}

func HomePage(props LayoutProps, h content.Home) g.Node {
	props.Title = constants.APP_NAME + " - ESG News, Jobs, Events & Courses"
	return Layout(props,
		Section(Class("hero card"),
			Img(Src(h.Report.ImageURL), Alt(h.Report.Title)),
			Small(g.Text("Special Report")),
			H1(A(Href("/special-report"), g.Text(h.Report.Title))),
		),
		listSection("News", "/news", len(h.News), newsCards(h.News)),
		listSection("Jobs", "/jobs", len(h.Jobs), jobCards(h.Jobs)),
		listSection("Events", "/events", len(h.Events), eventCards(h.Events)),
		listSection("Courses", "/courses", len(h.Courses), courseCards(h.Courses)),
	)
}

func NewsListPage(props LayoutProps, items []database.News) g.Node {
	props.Title = "All News - " + constants.APP_NAME
	return Layout(props, H1(g.Text("All News")), emptyState(len(items), "news"), g.Group(newsCards(items)))
}

func JobsListPage(props LayoutProps, items []database.Job) g.Node {
	props.Title = "All Jobs - " + constants.APP_NAME
	return Layout(props, H1(g.Text("All Jobs")), emptyState(len(items), "jobs"), g.Group(jobCards(items)))
}

func EventsListPage(props LayoutProps, items []database.Event) g.Node {
	props.Title = "All Events - " + constants.APP_NAME
	return Layout(props, H1(g.Text("All Events")), emptyState(len(items), "events"), g.Group(eventCards(items)))
}

func CoursesListPage(props LayoutProps, items []database.Course) g.Node {
	props.Title = "All Courses - " + constants.APP_NAME
	return Layout(props, H1(g.Text("All Courses")), emptyState(len(items), "courses"), g.Group(courseCards(items)))
}

func NewsDetailPage(props LayoutProps, n database.News) g.Node {
	props.Title = n.Title
	return Layout(props,
		Article(
			Span(Class("badge"), g.Text(n.Category)),
			H1(g.Text(n.Title)),
			Img(Src(n.ImageURL), Alt(n.Title)),
			Markdown(n.Content),
		),
	)
}

func JobDetailPage(props LayoutProps, j database.Job) g.Node {
	props.Title = j.Title
	return Layout(props,
		Article(
			Span(Class("badge badge-"+j.TypeColor), g.Text(j.Type)),
			H1(g.Text(j.Title)),
			P(Strong(g.Text(j.Company)), g.Textf(" · %s", j.Location)),
			Markdown(j.Description),
			applyButton(j.ApplyLink),
		),
	)
}

func EventDetailPage(props LayoutProps, e database.Event) g.Node {
	props.Title = e.Title
	return Layout(props,
		Article(
			H1(g.Text(e.Title)),
			P(g.Textf("%s · %s", e.Date, e.Location)),
			Markdown(e.Description),
			applyButton(e.ApplyLink),
		),
	)
}

func CourseDetailPage(props LayoutProps, c database.Course) g.Node {
	props.Title = c.Title
	return Layout(props,
		Article(
			H1(g.Text(c.Title)),
			P(g.Textf("%s · %s", c.Provider, c.Format)),
			Markdown(c.Description),
			applyButton(c.ApplyLink),
		),
	)
}

func ReportDetailPage(props LayoutProps, r database.SpecialReport) g.Node {
	props.Title = r.Title
	return Layout(props,
		Article(Class("hero"),
			Small(g.Text("Special Report")),
			H1(g.Text(r.Title)),
			Img(Src(r.ImageURL), Alt(r.Title)),
			Markdown(r.Content),
			applyButton(r.ApplyLink),
		),
	)
}
