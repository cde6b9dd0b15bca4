package webreg

// defaultBaseURL is the host the live portal runs on. Tests point the
// client elsewhere.
const defaultBaseURL = "https://act.ucsd.edu"

// Endpoints of the registration portal's internal service adapter. None
// of these are documented; they were recovered by watching the portal's
// own frontend traffic.
const (
	urlSearchByAll     = "/webreg2/svc/wradapter/secure/search-by-all"
	urlSearchBySection = "/webreg2/svc/wradapter/secure/search-by-sectionid"
	urlCourseData      = "/webreg2/svc/wradapter/secure/search-load-group-data"
	urlCourseText      = "/webreg2/svc/wradapter/secure/search-get-crse-text"
	urlSectionText     = "/webreg2/svc/wradapter/secure/search-get-section-text"
	urlSubjectList     = "/webreg2/svc/wradapter/secure/search-load-subject"
	urlDepartmentList  = "/webreg2/svc/wradapter/secure/search-load-department"
	urlPrerequisites   = "/webreg2/svc/wradapter/secure/get-prerequisites"

	urlSchedule       = "/webreg2/svc/wradapter/secure/get-class"
	urlScheduleNames  = "/webreg2/svc/wradapter/secure/sched-get-schednames"
	urlRemoveSchedule = "/webreg2/svc/wradapter/secure/sched-remove"
	urlRenameSchedule = "/webreg2/svc/wradapter/secure/plan-rename"

	urlPlanAdd       = "/webreg2/svc/wradapter/secure/plan-add"
	urlPlanEdit      = "/webreg2/svc/wradapter/secure/edit-plan"
	urlPlanRemove    = "/webreg2/svc/wradapter/secure/plan-remove"
	urlPlanRemoveAll = "/webreg2/svc/wradapter/secure/plan-remove-all"

	urlEnrollAdd    = "/webreg2/svc/wradapter/secure/add-enroll"
	urlEnrollEdit   = "/webreg2/svc/wradapter/secure/edit-enroll"
	urlEnrollDrop   = "/webreg2/svc/wradapter/secure/drop-enroll"
	urlWaitlistAdd  = "/webreg2/svc/wradapter/secure/add-wait"
	urlWaitlistEdit = "/webreg2/svc/wradapter/secure/edit-wait"
	urlWaitlistDrop = "/webreg2/svc/wradapter/secure/drop-wait"
	urlChangeEnroll = "/webreg2/svc/wradapter/secure/change-enroll"

	urlEventAdd    = "/webreg2/svc/wradapter/secure/event-add"
	urlEventEdit   = "/webreg2/svc/wradapter/secure/event-edit"
	urlEventRemove = "/webreg2/svc/wradapter/secure/event-remove"
	urlEventGet    = "/webreg2/svc/wradapter/secure/event-get"

	urlPing        = "/webreg2/svc/wradapter/secure/ping-server"
	urlSendEmail   = "/webreg2/svc/wradapter/secure/send-email"
	urlAccountName = "/webreg2/svc/wradapter/get-current-name"
	urlStatusStart = "/webreg2/svc/wradapter/get-status-start"
	urlEligibility = "/webreg2/svc/wradapter/check-eligibility"
	urlTermList    = "/webreg2/svc/wradapter/get-term"
)

// defaultUserAgent impersonates a desktop browser; the portal serves the
// service adapter only to sessions that look like its own frontend.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, " +
	"like Gecko) Chrome/97.0.4692.71 Safari/537.36"

// DefaultScheduleName is the name of the schedule every account starts
// with. It cannot be renamed or removed.
const DefaultScheduleName = "My Schedule"

// verifyFailErr is the body the portal returns on endpoints whose term
// has not been associated with the session yet.
const verifyFailErr = `[{"VERIFY":"FAIL"}]`
