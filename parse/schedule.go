package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tritonlabs/webreg/raw"
	"github.com/tritonlabs/webreg/types"
)

func enrollmentStatus(status, waitlistPos string) types.EnrollmentStatus {
	switch status {
	case "EN":
		return types.Enrolled()
	case "WT":
		// The portal pads the position with spaces, so trim before
		// parsing rather than reporting a padded value as unknown.
		pos, err := strconv.ParseInt(strings.TrimSpace(waitlistPos), 10, 64)
		if err != nil {
			pos = -1
		}
		return types.Waitlisted(pos)
	case "PL":
		return types.Planned()
	default:
		return types.UnknownStatus()
	}
}

func orElse(v *int64, fallback int64) int64 {
	if v == nil {
		return fallback
	}
	return *v
}

func scheduledClock(r raw.ScheduledMeeting) (types.Meeting, error) {
	startHr, startMin, err := clock(r.StartHour, r.StartMin)
	if err != nil {
		return types.Meeting{}, err
	}
	endHr, endMin, err := clock(r.EndHour, r.EndMin)
	if err != nil {
		return types.Meeting{}, err
	}
	return types.Meeting{
		StartHour:   startHr,
		StartMinute: startMin,
		EndHour:     endHr,
		EndMinute:   endMin,
		Building:    strings.TrimSpace(r.Building),
		Room:        strings.TrimSpace(r.Room),
		Instructors: InstructorNames(r.Instructors),
	}, nil
}

// Schedule regroups the schedule endpoint's flat per-meeting rows into
// the caller's enrolled, waitlisted, and planned sections.
//
// Rows sharing a trimmed course title belong to one section. Sections
// whose code starts with a digit (independent study and similar)
// collapse into a single meeting. For everything else, `00` rows without
// a special meeting code are the weekly general meetings, `00` rows with
// a special meeting code are one-time meetings such as finals, and the
// remaining rows are the enrollable child meeting.
func Schedule(rows []raw.ScheduledMeeting) ([]types.ScheduledSection, error) {
	regular := map[string][]raw.ScheduledMeeting{}
	regularOrder := []string{}
	special := map[string][]raw.ScheduledMeeting{}
	specialOrder := []string{}

	for _, row := range rows {
		// The portal pads schedules with placeholder rows that report a
		// capacity and enrollment of exactly zero.
		if orElse(row.EnrolledCount, -1) == 0 && orElse(row.SectionCapacity, -1) == 0 {
			continue
		}
		if row.SectCode == "" {
			continue
		}
		title := strings.TrimSpace(row.CourseTitle)
		if row.SectCode[0] >= '0' && row.SectCode[0] <= '9' {
			if _, ok := special[title]; !ok {
				specialOrder = append(specialOrder, title)
			}
			special[title] = append(special[title], row)
			continue
		}
		if _, ok := regular[title]; !ok {
			regularOrder = append(regularOrder, title)
		}
		regular[title] = append(regular[title], row)
	}

	schedule := []types.ScheduledSection{}
	for _, title := range regularOrder {
		section, err := regularSection(regular[title])
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, section)
	}
	for _, title := range specialOrder {
		section, err := specialSection(special[title])
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, section)
	}
	return schedule, nil
}

func regularSection(group []raw.ScheduledMeeting) (types.ScheduledSection, error) {
	instructorNames := []string{}
	for _, row := range group {
		instructorNames = append(instructorNames, InstructorNames(row.Instructors)...)
	}
	instructors := dedupSorted(instructorNames)

	isMain := func(r raw.ScheduledMeeting) bool {
		return strings.HasSuffix(r.SectCode, "00") && trimTBA(r.SpecialMeeting) == ""
	}

	// Every section has at least one weekly general meeting and they all
	// share one meeting type; anything else means the response is not
	// shaped like a schedule.
	mainType := ""
	mainCount := 0
	for _, row := range group {
		if !isMain(row) {
			continue
		}
		if mainCount > 0 && row.MeetingType != mainType {
			return types.ScheduledSection{}, fmt.Errorf(
				"%w: conflicting general meeting types %q and %q for %q",
				types.ErrMalformedResponse, mainType, row.MeetingType,
				strings.TrimSpace(group[0].CourseTitle))
		}
		mainType = row.MeetingType
		mainCount++
	}
	if mainCount == 0 {
		return types.ScheduledSection{}, fmt.Errorf(
			"%w: no general meeting for %q",
			types.ErrMalformedResponse, strings.TrimSpace(group[0].CourseTitle))
	}

	meetings := []types.Meeting{}
	for _, row := range group {
		if !isMain(row) {
			continue
		}
		meeting, err := scheduledClock(row)
		if err != nil {
			return types.ScheduledSection{}, err
		}
		meeting.MeetingType = row.MeetingType
		if dayCode := strings.TrimSpace(row.DayCode); dayCode == "" {
			meeting.MeetingDays = types.NoMeetingDay()
		} else {
			meeting.MeetingDays = types.RepeatedDays(DayCodeDays(dayCode))
		}
		meetings = append(meetings, meeting)
	}
	// Finals and midterms.
	for _, row := range group {
		if !strings.HasSuffix(row.SectCode, "00") || trimTBA(row.SpecialMeeting) == "" {
			continue
		}
		meeting, err := scheduledClock(row)
		if err != nil {
			return types.ScheduledSection{}, err
		}
		meeting.MeetingType = row.MeetingType
		meeting.MeetingDays = types.OneTimeOn(row.StartDate)
		meetings = append(meetings, meeting)
	}
	// The child meeting the caller is actually signed up for.
	for _, row := range group {
		if strings.HasSuffix(row.SectCode, "00") {
			continue
		}
		meeting, err := scheduledClock(row)
		if err != nil {
			return types.ScheduledSection{}, err
		}
		meeting.MeetingType = row.MeetingType
		meeting.MeetingDays = types.RepeatedDays(DayCodeDays(row.DayCode))
		meetings = append(meetings, meeting)
	}

	// Only the enrollable row carries counts; the others leave them out.
	var data *raw.ScheduledMeeting
	for i := range group {
		if group[i].EnrolledCount != nil && group[i].SectionCapacity != nil {
			data = &group[i]
			break
		}
	}
	if data == nil {
		return types.ScheduledSection{}, fmt.Errorf("%w: schedule is deformed", types.ErrMalformedResponse)
	}

	sectionCode := data.SectCode
	for _, row := range group {
		if !strings.HasSuffix(row.SectCode, "00") {
			sectionCode = row.SectCode
			break
		}
	}

	enrolled := orElse(data.EnrolledCount, -1)
	capacity := orElse(data.SectionCapacity, -1)
	return types.ScheduledSection{
		SectionID:       strconv.FormatInt(data.SectionID, 10),
		SubjectCode:     strings.TrimSpace(data.SubjectCode),
		CourseCode:      strings.TrimSpace(data.CourseCode),
		CourseTitle:     strings.TrimSpace(data.CourseTitle),
		SectionCode:     sectionCode,
		SectionCapacity: capacity,
		EnrolledCount:   enrolled,
		AvailableSeats:  max64(capacity-enrolled, 0),
		GradeOption:     data.GradeOption,
		AllInstructors:  instructors,
		Units:           int64(data.CreditHours),
		EnrolledStatus:  enrollmentStatus(data.EnrollStatus, data.WaitlistPos),
		WaitlistCount:   orElse(data.WaitlistCount, 0),
		Meetings:        meetings,
	}, nil
}

// specialSection handles numeric section codes, assumed to have exactly
// one meeting whose days are the union of every row's day code.
func specialSection(group []raw.ScheduledMeeting) (types.ScheduledSection, error) {
	seed := group[0]
	meeting, err := scheduledClock(seed)
	if err != nil {
		return types.ScheduledSection{}, err
	}
	meeting.MeetingType = seed.MeetingType

	var dayCodes strings.Builder
	instructorNames := []string{}
	for _, row := range group {
		dayCodes.WriteString(strings.TrimSpace(row.DayCode))
		instructorNames = append(instructorNames, InstructorNames(row.Instructors)...)
	}
	if dayCodes.Len() == 0 {
		meeting.MeetingDays = types.NoMeetingDay()
	} else {
		meeting.MeetingDays = types.RepeatedDays(DayCodeDays(dayCodes.String()))
	}

	enrolled := orElse(seed.EnrolledCount, -1)
	capacity := orElse(seed.SectionCapacity, -1)
	return types.ScheduledSection{
		SectionID:       strconv.FormatInt(seed.SectionID, 10),
		SubjectCode:     strings.TrimSpace(seed.SubjectCode),
		CourseCode:      strings.TrimSpace(seed.CourseCode),
		CourseTitle:     strings.TrimSpace(seed.CourseTitle),
		SectionCode:     seed.SectCode,
		SectionCapacity: capacity,
		EnrolledCount:   enrolled,
		AvailableSeats:  max64(capacity-enrolled, 0),
		GradeOption:     strings.TrimSpace(seed.GradeOption),
		AllInstructors:  dedupSorted(instructorNames),
		Units:           int64(seed.CreditHours),
		EnrolledStatus:  enrollmentStatus(seed.EnrollStatus, seed.WaitlistPos),
		WaitlistCount:   orElse(seed.WaitlistCount, 0),
		Meetings:        []types.Meeting{meeting},
	}, nil
}
