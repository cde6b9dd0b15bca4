// Package raw mirrors the portal's JSON payloads exactly as the portal
// emits them. These structs are the input to the normalization layer in
// package parse; consumers should prefer the cleaned model in package
// types.
package raw

// Meeting is a single row of the catalog course-data endpoint. The portal
// flattens each section into one row per meeting, so reconstructing
// sections from these rows is the job of the normalization layer.
type Meeting struct {
	SectionID       string   `json:"SECTION_NUMBER"`
	SectCode        string   `json:"SECT_CODE"`
	DisplayType     string   `json:"DISPLAY_TYPE"`
	SpecialMeeting  string   `json:"FK_SPM_SPCL_MTG_CD"`
	MeetingType     string   `json:"FK_CDI_INSTR_TYPE"`
	DayCode         string   `json:"DAY_CODE"`
	StartHour       int      `json:"BEGIN_HH_TIME"`
	StartMin        int      `json:"BEGIN_MM_TIME"`
	EndHour         int      `json:"END_HH_TIME"`
	EndMin          int      `json:"END_MM_TIME"`
	Building        string   `json:"BLDG_CODE"`
	Room            string   `json:"ROOM_CODE"`
	Instructors     string   `json:"PERSON_FULL_NAME"`
	AvailableSeats  int64    `json:"AVAIL_SEAT"`
	EnrolledCount   int64    `json:"SCTN_ENRLT_QTY"`
	SectionCapacity int64    `json:"SCTN_CPCTY_QTY"`
	WaitlistCount   int64    `json:"COUNT_ON_WAITLIST"`
	PrintFlag       string   `json:"PRINT_FLAG"`
	StartDate       string   `json:"START_DATE"`
	SectionStart    string   `json:"SECTION_START_DATE"`
	SectionEnd      string   `json:"SECTION_END_DATE"`
	BeforeDescr     string   `json:"BEFORE_DESC,omitempty"`
}

// IsVisible reports whether the portal would display this row on its own
// search UI. Hidden rows still participate in normalization so that
// canceled meetings are handled consistently.
func (m Meeting) IsVisible() bool {
	return m.PrintFlag != "N"
}

// ScheduledMeeting is a single row of the schedule endpoint. Count
// fields are pointers because the portal omits them on placeholder rows.
type ScheduledMeeting struct {
	SectionID       int64    `json:"SECTION_NUMBER"`
	SectCode        string   `json:"SECT_CODE"`
	SubjectCode     string   `json:"SUBJ_CODE"`
	CourseCode      string   `json:"CRSE_CODE"`
	CourseTitle     string   `json:"CRSE_TITLE"`
	GradeOption     string   `json:"GRADE_OPTION"`
	CreditHours     float64  `json:"SECT_CREDIT_HRS"`
	EnrollStatus    string   `json:"ENROLL_STATUS"`
	SpecialMeeting  string   `json:"FK_SPM_SPCL_MTG_CD"`
	MeetingType     string   `json:"FK_CDI_INSTR_TYPE"`
	DayCode         string   `json:"DAY_CODE"`
	StartHour       int      `json:"BEGIN_HH_TIME"`
	StartMin        int      `json:"BEGIN_MM_TIME"`
	EndHour         int      `json:"END_HH_TIME"`
	EndMin          int      `json:"END_MM_TIME"`
	Building        string   `json:"BLDG_CODE"`
	Room            string   `json:"ROOM_CODE"`
	Instructors     string   `json:"PERSON_FULL_NAME"`
	EnrolledCount   *int64   `json:"SCTN_ENRLT_QTY"`
	SectionCapacity *int64   `json:"SCTN_CPCTY_QTY"`
	WaitlistCount   *int64   `json:"COUNT_ON_WAITLIST"`
	WaitlistPos     string   `json:"WT_POS"`
	StartDate       string   `json:"START_DATE"`
	SectionStart    string   `json:"SECTION_START_DATE"`
	SectionEnd      string   `json:"SECTION_END_DATE"`
}

// CourseResult is a single row of the course search endpoint.
type CourseResult struct {
	UnitsMax    float64 `json:"UNIT_TO"`
	UnitsMin    float64 `json:"UNIT_FROM"`
	SubjCode    string  `json:"SUBJ_CODE"`
	CourseCode  string  `json:"CRSE_CODE"`
	CourseTitle string  `json:"CRSE_TITLE"`
}

// Prerequisite is a single row of the prerequisites endpoint. TYPE is
// either `COURSE` or `TEST`; for TEST rows only TestTitle is populated.
type Prerequisite struct {
	Type              string `json:"TYPE"`
	SubjectCode       string `json:"SUBJECT_CODE"`
	PrereqSeqID       string `json:"PREREQ_SEQ_ID"`
	CourseTitle       string `json:"CRSE_TITLE"`
	CourseCode        string `json:"COURSE_CODE"`
	TestTitle         string `json:"TEST_TITLE"`
	GradeSeqID        string `json:"GRADE_SEQ_ID"`
	Grade             string `json:"GRADE"`
}

// Event is a single row of the event list endpoint. Times are four digit
// strings such as `0900`, and Days is a seven character binary string
// with Monday first.
type Event struct {
	Location    string `json:"LOCATION"`
	StartTime   string `json:"START_TIME"`
	EndTime     string `json:"END_TIME"`
	Description string `json:"DESCRIPTION"`
	Days        string `json:"DAYS"`
	TimeStamp   string `json:"TIME_STAMP"`
	AckFlag     string `json:"ACK_FLAG"`
}

// SubjectElement is a single row of the subject listing endpoint.
type SubjectElement struct {
	SubjectCode string `json:"SUBJECT_CODE"`
	Description string `json:"LONG_DESC"`
}

// DepartmentElement is a single row of the department listing endpoint.
type DepartmentElement struct {
	DepCode     string `json:"DEP_CODE"`
	Description string `json:"DEP_DESC"`
}

// TermListItem is a single row of the term listing endpoint.
type TermListItem struct {
	SeqID    int64  `json:"seq_id"`
	TermCode string `json:"term_code"`
}
