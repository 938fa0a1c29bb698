package constants

const (
	// public URL
	APP_NAME   = "SustainWire"
	PUBLIC_URL = "https://sustainwire.in"

	// home page previews
	HOME_NEWS_LIMIT    = 3
	HOME_JOBS_LIMIT    = 10
	HOME_EVENTS_LIMIT  = 3
	HOME_COURSES_LIMIT = 3

	DEFAULT_UPDATED_BY  = "Admin"
	DEFAULT_TOP_COUNTRY = "N/A"
	DEFAULT_APPLY_LINK  = "#"
)

// placeholder special report, created the first time the home page finds none
const (
	PLACEHOLDER_REPORT_TITLE     = "India Is Becoming the New Backbone of the Global Chemical Industry"
	PLACEHOLDER_REPORT_CONTENT   = "Environmental curbs in China and rising energy costs in Europe have opened the door for a new contender..."
	PLACEHOLDER_REPORT_IMAGE     = "/uploads/special-report-placeholder.jpg"
	PLACEHOLDER_REPORT_APPLYLINK = "https://www.google.com"
)

const (
	JOB_COLOR_CONTRACT   = "blue"
	JOB_COLOR_INTERNSHIP = "yellow"
	JOB_COLOR_DEFAULT    = "green"
)
