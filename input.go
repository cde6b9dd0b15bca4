package webreg

import (
	"strconv"

	"github.com/tritonlabs/webreg/types"
)

// GradeOption is a grading option as the portal encodes it.
type GradeOption string

const (
	// GradeOptionLetter is the letter grading option.
	GradeOptionLetter GradeOption = "L"
	// GradeOptionPass is Pass/No Pass.
	GradeOptionPass GradeOption = "P"
	// GradeOptionSU is Satisfactory/Unsatisfactory.
	GradeOptionSU GradeOption = "S"
)

// orLetter returns the option, defaulting to letter grading when unset.
func (g GradeOption) orLetter() string {
	if g == "" {
		return string(GradeOptionLetter)
	}
	return string(g)
}

// AddType says how a section should be added: by enrolling, by joining
// the waitlist, or by letting the client check seat counts and decide.
type AddType int

const (
	AddEnroll AddType = iota
	AddWaitlist
	AddDecideForMe
)

// ExplicitAddType is an AddType with the decision already made.
type ExplicitAddType int

const (
	ExplicitEnroll ExplicitAddType = iota
	ExplicitWaitlist
)

func (t ExplicitAddType) String() string {
	if t == ExplicitWaitlist {
		return "waitlist"
	}
	return "enroll"
}

// DayOfWeek is a weekday for event and search inputs. The portal's
// binary day strings start on Monday, hence the ordering.
type DayOfWeek int

const (
	Monday DayOfWeek = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// binaryDayString encodes a set of days as the seven character
// Monday-first binary string the portal expects.
func binaryDayString(days []DayOfWeek) string {
	var active [7]bool
	for _, d := range days {
		if d >= Monday && d <= Sunday {
			active[d] = true
		}
	}
	out := make([]byte, 7)
	for i, on := range active {
		if on {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}

// PlanAdd describes a section to put on a planning schedule.
type PlanAdd struct {
	// SubjectCode is the subject, e.g. `CSE`.
	SubjectCode string
	// CourseCode is the course code, e.g. `100`.
	CourseCode string
	// SectionID is the section ID, e.g. `079911`.
	SectionID string
	// SectionCode is the section code, e.g. `A01`.
	SectionCode string
	// GradingOption defaults to letter grading when empty.
	GradingOption GradeOption
	// ScheduleName defaults to DefaultScheduleName when empty.
	ScheduleName string
	// UnitCount is the number of units to plan the course for.
	UnitCount int
}

func (p *PlanAdd) validate() error {
	switch {
	case p.SubjectCode == "":
		return &types.InputError{Field: "SubjectCode", Reason: "subject code is required"}
	case p.CourseCode == "":
		return &types.InputError{Field: "CourseCode", Reason: "course code is required"}
	case p.SectionID == "":
		return &types.InputError{Field: "SectionID", Reason: "section ID is required"}
	case p.SectionCode == "":
		return &types.InputError{Field: "SectionCode", Reason: "section code is required"}
	}
	return nil
}

func (p *PlanAdd) scheduleName() string {
	if p.ScheduleName == "" {
		return DefaultScheduleName
	}
	return p.ScheduleName
}

// EnrollAdd describes a section to enroll in or waitlist.
type EnrollAdd struct {
	// SectionID is the section ID, e.g. `079911`.
	SectionID string
	// GradingOption defaults to letter grading when empty.
	GradingOption GradeOption
	// UnitCount is the number of units to take the course for; zero
	// means the portal's default for the course.
	UnitCount int
}

func (e *EnrollAdd) validate() error {
	if e.SectionID == "" {
		return &types.InputError{Field: "SectionID", Reason: "section ID is required"}
	}
	return nil
}

func (e *EnrollAdd) unitString() string {
	if e.UnitCount <= 0 {
		return ""
	}
	return strconv.Itoa(e.UnitCount)
}

// EventAdd describes a calendar event to create on the portal.
type EventAdd struct {
	// Name is the event description. Required.
	Name string
	// Location is optional.
	Location string
	// StartHour/StartMinute and EndHour/EndMinute bound the event. The
	// portal only accepts events between 7:00 and 22:00.
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
	// Days are the weekdays the event occurs on. At least one required.
	Days []DayOfWeek
}

// validate applies the portal's own frontend rules before any request
// goes out; the backend accepts garbage events otherwise.
func (e *EventAdd) validate() error {
	if e.Name == "" {
		return &types.InputError{Field: "Name", Reason: "event name is required"}
	}
	start := e.StartHour*100 + e.StartMinute
	end := e.EndHour*100 + e.EndMinute
	if start >= end {
		return &types.InputError{Field: "StartHour", Reason: "start time must be before end time"}
	}
	if e.StartHour < 7 || e.StartHour > 22 {
		return &types.InputError{Field: "StartHour", Reason: "start hour must be between 7 and 22"}
	}
	if e.StartHour == 22 && e.StartMinute != 0 {
		return &types.InputError{Field: "StartMinute", Reason: "events cannot extend past 22:00"}
	}
	if e.StartMinute < 0 || e.StartMinute > 59 || e.EndMinute < 0 || e.EndMinute > 59 {
		return &types.InputError{Field: "StartMinute", Reason: "minutes must be between 0 and 59"}
	}
	if len(e.Days) == 0 {
		return &types.InputError{Field: "Days", Reason: "at least one day is required"}
	}
	return nil
}

// hhmm zero-pads an hour/minute pair to the portal's four digit form.
func hhmm(hour, minute int) string {
	return pad2(hour) + pad2(minute)
}

func pad2(v int) string {
	s := strconv.Itoa(v)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
