// Package types holds the cleaned, consumer-facing model produced by the
// normalization layer, along with the error taxonomy for the whole library.
package types

import (
	"fmt"
	"strings"
)

// Term is a term that is available on the registration portal.
type Term struct {
	// SeqID is the portal's internal sequential ID for the term.
	SeqID int64 `json:"seq_id"`
	// TermCode is the four character term token, e.g. `SP23`.
	TermCode string `json:"term_code"`
}

// SearchResultItem is a single row of a course search.
type SearchResultItem struct {
	// SubjectCode is the subject, e.g. `CSE` or `MATH`.
	SubjectCode string `json:"subj_code"`
	// CourseCode is the course code, e.g. `100B`.
	CourseCode string `json:"course_code"`
	// CourseTitle is the course title, e.g. `Abstract Algebra II`.
	CourseTitle string `json:"course_title"`
}

func (s SearchResultItem) String() string {
	return fmt.Sprintf("%s %s - %s", s.SubjectCode, s.CourseCode, s.CourseTitle)
}

// MeetingDayKind discriminates the three ways a meeting can be scheduled.
type MeetingDayKind int

const (
	// MeetingDayNone means the meeting has no scheduled time at all
	// (e.g. independent study placeholders).
	MeetingDayNone MeetingDayKind = iota
	// MeetingDayRepeated means the meeting recurs weekly on a set of days.
	MeetingDayRepeated
	// MeetingDayOneTime means the meeting occurs exactly once
	// (e.g. a final exam or midterm).
	MeetingDayOneTime
)

// MeetingDay is a closed union over the three scheduling shapes a meeting
// can have. Use the constructors rather than building the struct by hand.
type MeetingDay struct {
	Kind MeetingDayKind `json:"kind"`
	// Days holds weekday tokens (Su, M, Tu, W, Th, F, Sa) when Kind is
	// MeetingDayRepeated.
	Days []string `json:"days,omitempty"`
	// Date holds the YYYY-MM-DD date when Kind is MeetingDayOneTime.
	Date string `json:"date,omitempty"`
}

// RepeatedDays builds a weekly-recurring MeetingDay.
func RepeatedDays(days []string) MeetingDay {
	return MeetingDay{Kind: MeetingDayRepeated, Days: days}
}

// OneTimeOn builds a single-occurrence MeetingDay for the given date.
func OneTimeOn(date string) MeetingDay {
	return MeetingDay{Kind: MeetingDayOneTime, Date: date}
}

// NoMeetingDay builds the "no scheduled time" MeetingDay.
func NoMeetingDay() MeetingDay {
	return MeetingDay{Kind: MeetingDayNone}
}

func (d MeetingDay) String() string {
	switch d.Kind {
	case MeetingDayRepeated:
		return strings.Join(d.Days, "")
	case MeetingDayOneTime:
		return d.Date
	default:
		return "N/A"
	}
}

// Meeting is one lecture, discussion, final exam, midterm, or similar.
type Meeting struct {
	// MeetingType is the portal's meeting type code, e.g. `LE`, `FI`, `DI`.
	MeetingType string `json:"meeting_type"`
	// MeetingDays is when this meeting occurs.
	MeetingDays MeetingDay `json:"meeting_days"`
	// StartHour and StartMinute are the start of the meeting; for a meeting
	// starting at 14:15 these are 14 and 15 respectively.
	StartHour   int `json:"start_hr"`
	StartMinute int `json:"start_min"`
	// EndHour and EndMinute are the end of the meeting.
	EndHour   int `json:"end_hr"`
	EndMinute int `json:"end_min"`
	// Building is the building code, e.g. `CENTR`.
	Building string `json:"building"`
	// Room is the room code, e.g. `115`.
	Room string `json:"room"`
	// Instructors are the instructors assigned to this specific meeting,
	// which may differ from the section-wide instructor list.
	Instructors []string `json:"instructors"`
}

func (m Meeting) String() string {
	return fmt.Sprintf("[%s] %s at %d:%02d - %d:%02d in %s %s",
		m.MeetingType, m.MeetingDays, m.StartHour, m.StartMinute,
		m.EndHour, m.EndMinute, m.Building, m.Room)
}

// CourseSection is a normalized catalog section: a lecture, usually a
// discussion, and usually a final, reconstructed from the portal's flat
// per-meeting rows.
type CourseSection struct {
	// SubjCourseID is the subject and course, e.g. `CSE 100`.
	SubjCourseID string `json:"subj_course_id"`
	// SectionID is the section ID, e.g. `079912`.
	SectionID string `json:"section_id"`
	// SectionCode is the section code, e.g. `B01`.
	SectionCode string `json:"section_code"`
	// AllInstructors is the deduplicated, sorted union of every
	// instructor appearing in Meetings.
	AllInstructors []string `json:"all_instructors"`
	// AvailableSeats is the seat count reported by the portal, floored
	// at zero (the portal can report negative availability).
	AvailableSeats int64 `json:"available_seats"`
	// EnrolledCount is the number of students enrolled.
	EnrolledCount int64 `json:"enrolled_ct"`
	// TotalSeats is the section capacity.
	TotalSeats int64 `json:"total_seats"`
	// WaitlistCount is the number of students on the waitlist.
	WaitlistCount int64 `json:"waitlist_ct"`
	// Meetings are all meetings belonging to this section.
	Meetings []Meeting `json:"meetings"`
	// IsVisible reports whether the section is shown on the portal UI.
	IsVisible bool `json:"is_visible"`
}

// HasSeats reports whether a student could still enroll directly. The
// portal sometimes reports available seats on a section that still has a
// waitlist, in which case enrolling is not actually possible, so both
// conditions are checked.
func (c CourseSection) HasSeats() bool {
	return c.AvailableSeats > 0 && c.WaitlistCount == 0
}

func (c CourseSection) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s / %s] %s\n", c.SectionCode, c.SectionID, c.SubjCourseID)
	fmt.Fprintf(&sb, "\tInstructors: [%s]\n", strings.Join(c.AllInstructors, ", "))
	fmt.Fprintf(&sb, "\tEnrolled: %d Available: %d Waitlist: %d Total: %d\n",
		c.EnrolledCount, c.AvailableSeats, c.WaitlistCount, c.TotalSeats)
	for _, m := range c.Meetings {
		fmt.Fprintf(&sb, "\t\t%s\n", m)
	}
	return sb.String()
}

// EnrollmentState is the caller's relationship to a scheduled section.
type EnrollmentState string

const (
	StateEnrolled   EnrollmentState = "Enrolled"
	StateWaitlisted EnrollmentState = "Waitlist"
	StatePlanned    EnrollmentState = "Planned"
	StateUnknown    EnrollmentState = "Unknown"
)

// EnrollmentStatus is the enrollment state plus, when waitlisted, the
// position on the waitlist.
type EnrollmentStatus struct {
	State EnrollmentState `json:"enroll_status"`
	// WaitlistPos is only meaningful when State is StateWaitlisted. It is
	// -1 when the portal's position value could not be parsed.
	WaitlistPos int64 `json:"waitlist_pos,omitempty"`
}

// Enrolled, Waitlisted, Planned and UnknownStatus build the four
// EnrollmentStatus variants.
func Enrolled() EnrollmentStatus      { return EnrollmentStatus{State: StateEnrolled} }
func Planned() EnrollmentStatus       { return EnrollmentStatus{State: StatePlanned} }
func UnknownStatus() EnrollmentStatus { return EnrollmentStatus{State: StateUnknown} }
func Waitlisted(pos int64) EnrollmentStatus {
	return EnrollmentStatus{State: StateWaitlisted, WaitlistPos: pos}
}

// ScheduledSection is one section on the logged-in user's own schedule:
// enrolled, waitlisted, or planned.
type ScheduledSection struct {
	// SectionID is the section ID, e.g. `79903`. Note that the schedule
	// endpoint reports IDs as integers, so leading zeros are absent.
	SectionID string `json:"section_id"`
	// SubjectCode is the subject, e.g. `CSE`.
	SubjectCode string `json:"subject_code"`
	// CourseCode is the course code, e.g. `100`.
	CourseCode string `json:"course_code"`
	// CourseTitle is the course title.
	CourseTitle string `json:"course_title"`
	// SectionCode is the section code, e.g. `A01`.
	SectionCode string `json:"section_code"`
	// SectionCapacity is the maximum number of students for the section.
	SectionCapacity int64 `json:"section_capacity"`
	// EnrolledCount is the number of students enrolled.
	EnrolledCount int64 `json:"enrolled_count"`
	// AvailableSeats is max(SectionCapacity-EnrolledCount, 0).
	AvailableSeats int64 `json:"available_seats"`
	// GradeOption is the grading option code: `L`, `P`, or `S`.
	GradeOption string `json:"grade_option"`
	// AllInstructors is the deduplicated, sorted union of every
	// instructor appearing in Meetings.
	AllInstructors []string `json:"all_instructors"`
	// Units is the number of units the course is taken for.
	Units int64 `json:"units"`
	// EnrolledStatus is the caller's enrollment status for the section.
	EnrolledStatus EnrollmentStatus `json:"enrolled_status"`
	// WaitlistCount is the number of students on the waitlist.
	WaitlistCount int64 `json:"waitlist_ct"`
	// Meetings are all meetings belonging to this section.
	Meetings []Meeting `json:"meetings"`
}

func (s ScheduledSection) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s / %s] %s %s: %s\n",
		s.SectionCode, s.SectionID, s.SubjectCode, s.CourseCode, s.CourseTitle)
	fmt.Fprintf(&sb, "\tInstructors: [%s]\n", strings.Join(s.AllInstructors, ", "))
	fmt.Fprintf(&sb, "\tEnrolled: %d Available: %d Waitlist: %d Total: %d\n",
		s.EnrolledCount, s.AvailableSeats, s.WaitlistCount, s.SectionCapacity)
	fmt.Fprintf(&sb, "\tStatus: %s Units: %d Grade Option: %s\n",
		s.EnrolledStatus.State, s.Units, s.GradeOption)
	for _, m := range s.Meetings {
		fmt.Fprintf(&sb, "\t\t%s\n", m)
	}
	return sb.String()
}

// CoursePrerequisite is one course that can satisfy a prerequisite slot.
type CoursePrerequisite struct {
	// SubjCourseID is the subject and course, e.g. `CSE 100`.
	SubjCourseID string `json:"subj_course_id"`
	// CourseTitle is the course title.
	CourseTitle string `json:"course_title"`
}

// PrerequisiteInfo is the full prerequisite structure for one course.
type PrerequisiteInfo struct {
	// CoursePrerequisites is a conjunction of disjunctions: each inner
	// slice is a group of which any one course satisfies the requirement,
	// and every group must be satisfied.
	CoursePrerequisites [][]CoursePrerequisite `json:"course_prerequisites"`
	// ExamPrerequisites lists exams; satisfying any one of them satisfies
	// every course prerequisite group.
	ExamPrerequisites []string `json:"exam_prerequisites"`
}

// Event is a user-created calendar event on the portal.
type Event struct {
	// Name is the event description.
	Name string `json:"name"`
	// Location is where the event occurs.
	Location string `json:"location"`
	// StartHour/StartMinute and EndHour/EndMinute bound the event.
	StartHour   int `json:"start_hr"`
	StartMinute int `json:"start_min"`
	EndHour     int `json:"end_hr"`
	EndMinute   int `json:"end_min"`
	// Days holds the weekday tokens the event occurs on.
	Days []string `json:"days"`
	// Timestamp is the portal's creation timestamp for the event; it is
	// the key used to edit or remove the event.
	Timestamp string `json:"timestamp"`
}

func (e Event) String() string {
	return fmt.Sprintf("[Event] %s at %s, %s %d:%02d - %d:%02d (%s)",
		e.Name, e.Location, strings.Join(e.Days, ""),
		e.StartHour, e.StartMinute, e.EndHour, e.EndMinute, e.Timestamp)
}
