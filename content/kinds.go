package content

import "sustainwire/constants"

// Kind names a content type. The value doubles as its admin URL segment.
type Kind string

const (
	KindNews          Kind = "news"
	KindJobs          Kind = "jobs"
	KindEvents        Kind = "events"
	KindCourses       Kind = "courses"
	KindSpecialReport Kind = "special-report"
)

var kinds = []Kind{KindNews, KindJobs, KindEvents, KindCourses, KindSpecialReport}

func ParseKind(s string) (Kind, bool) {
	for _, k := range kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// TypeColor derives a job's badge color from its type.
func TypeColor(jobType string) string {
	switch jobType {
	case "Contract":
		return constants.JOB_COLOR_CONTRACT
	case "Internship":
		return constants.JOB_COLOR_INTERNSHIP
	default:
		return constants.JOB_COLOR_DEFAULT
	}
}
