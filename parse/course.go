package parse

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tritonlabs/webreg/raw"
	"github.com/tritonlabs/webreg/types"
)

// sectionFamily collects the catalog rows for one letter prefix, e.g.
// every `B00`, `B01`, ... row for prefix 'B'. General meetings (the
// lecture, final, and midterm rows) are shared by the whole family while
// each child row (a discussion or lab) becomes its own section.
type sectionFamily struct {
	generalMeetings []raw.Meeting
	childMeetings   []raw.Meeting
}

func meetingFromRow(r raw.Meeting) (types.Meeting, error) {
	startHr, startMin, err := clock(r.StartHour, r.StartMin)
	if err != nil {
		return types.Meeting{}, err
	}
	endHr, endMin, err := clock(r.EndHour, r.EndMin)
	if err != nil {
		return types.Meeting{}, err
	}
	meetingType, meetingDays := meetingDayInfo(r.MeetingType, r.SpecialMeeting, r.DayCode, r.StartDate)
	return types.Meeting{
		MeetingType: meetingType,
		MeetingDays: meetingDays,
		StartHour:   startHr,
		StartMinute: startMin,
		EndHour:     endHr,
		EndMinute:   endMin,
		Building:    strings.TrimSpace(r.Building),
		Room:        strings.TrimSpace(r.Room),
		Instructors: InstructorNames(r.Instructors),
	}, nil
}

// CourseInfo regroups the catalog endpoint's flat per-meeting rows into
// sections for one course.
//
// Rows whose section code starts with a digit each stand alone as a
// single-meeting section. Rows whose code starts with a letter belong to
// the family named by that letter: a code ending in `00` is a general
// meeting shared by the whole family, an `AC` row is an enrollable child
// section, and an `NC` row is an extra non-enrollable general meeting.
// Each child pairs with every general meeting to form one section; a
// family with generals but no children collapses into one section.
func CourseInfo(logger *logrus.Entry, rows []raw.Meeting, subjCourseID string) ([]types.CourseSection, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	sections := []types.CourseSection{}
	families := map[byte]*sectionFamily{}

	for _, row := range rows {
		if row.DisplayType == "CA" || strings.TrimSpace(row.SectCode) == "" {
			continue
		}

		first := row.SectCode[0]
		if first >= '0' && first <= '9' {
			// Numeric section codes are one-meeting sections, so there is
			// nothing to regroup.
			meeting, err := meetingFromRow(row)
			if err != nil {
				return nil, err
			}
			sections = append(sections, types.CourseSection{
				SubjCourseID:   subjCourseID,
				SectionID:      strings.TrimSpace(row.SectionID),
				SectionCode:    strings.TrimSpace(row.SectCode),
				AllInstructors: InstructorNames(row.Instructors),
				AvailableSeats: max64(row.AvailableSeats, 0),
				EnrolledCount:  row.EnrolledCount,
				TotalSeats:     row.SectionCapacity,
				WaitlistCount:  row.WaitlistCount,
				Meetings:       []types.Meeting{meeting},
				IsVisible:      row.IsVisible(),
			})
			continue
		}

		family, ok := families[first]
		if !ok {
			family = &sectionFamily{}
			families[first] = family
		}
		switch {
		// The `00` check comes before the display type: when a section only
		// has a lecture and a final, both rows are marked `AC` even though
		// neither is a standalone enrollable child.
		case strings.HasSuffix(row.SectCode, "00"):
			family.generalMeetings = append(family.generalMeetings, row)
		case row.DisplayType == "AC":
			family.childMeetings = append(family.childMeetings, row)
		case row.DisplayType == "NC":
			family.generalMeetings = append(family.generalMeetings, row)
		}
	}

	familyOrder := make([]byte, 0, len(families))
	for key := range families {
		familyOrder = append(familyOrder, key)
	}
	sort.Slice(familyOrder, func(i, j int) bool { return familyOrder[i] < familyOrder[j] })

	for _, key := range familyOrder {
		family := families[key]
		if len(family.generalMeetings) == 0 {
			logger.WithFields(logrus.Fields{
				"course": subjCourseID,
				"family": string(key),
			}).Warn("section family has no general meetings, skipping")
			continue
		}

		generalMeetings := make([]types.Meeting, 0, len(family.generalMeetings))
		generalInstructors := []string{}
		for _, row := range family.generalMeetings {
			meeting, err := meetingFromRow(row)
			if err != nil {
				return nil, err
			}
			generalMeetings = append(generalMeetings, meeting)
			generalInstructors = append(generalInstructors, InstructorNames(row.Instructors)...)
		}
		generalInstructors = dedupSorted(generalInstructors)

		if len(family.childMeetings) == 0 {
			// Only a lecture (and maybe a final). The count fields are
			// identical on every general row, so the first one works as
			// the source of truth.
			seed := family.generalMeetings[0]
			sections = append(sections, types.CourseSection{
				SubjCourseID:   subjCourseID,
				SectionID:      seed.SectionID,
				SectionCode:    seed.SectCode,
				AllInstructors: InstructorNames(seed.Instructors),
				AvailableSeats: max64(seed.AvailableSeats, 0),
				EnrolledCount:  seed.EnrolledCount,
				TotalSeats:     seed.SectionCapacity,
				WaitlistCount:  seed.WaitlistCount,
				Meetings:       generalMeetings,
				IsVisible:      seed.IsVisible(),
			})
			continue
		}

		for _, child := range family.childMeetings {
			childMeeting, err := meetingFromRow(child)
			if err != nil {
				return nil, err
			}
			instructors := append([]string{}, generalInstructors...)
			instructors = append(instructors, InstructorNames(child.Instructors)...)
			meetings := make([]types.Meeting, 0, len(generalMeetings)+1)
			meetings = append(meetings, generalMeetings...)
			meetings = append(meetings, childMeeting)
			sections = append(sections, types.CourseSection{
				SubjCourseID:   subjCourseID,
				SectionID:      child.SectionID,
				SectionCode:    child.SectCode,
				AllInstructors: dedupSorted(instructors),
				AvailableSeats: max64(child.AvailableSeats, 0),
				EnrolledCount:  child.EnrolledCount,
				TotalSeats:     child.SectionCapacity,
				WaitlistCount:  child.WaitlistCount,
				Meetings:       meetings,
				IsVisible:      child.IsVisible(),
			})
		}
	}

	return sections, nil
}

// EnrollmentCount reduces the catalog rows for one course to one entry
// per enrollable section, carrying only the seat counts. The portal
// repeats counts on every meeting row of a section, so the first row
// seen for a section code wins.
func EnrollmentCount(rows []raw.Meeting, subjCourseID string) []types.CourseSection {
	seen := map[string]bool{}
	sections := []types.CourseSection{}
	for _, row := range rows {
		if seen[row.SectCode] {
			continue
		}
		seen[row.SectCode] = true
		if row.DisplayType != "AC" {
			continue
		}
		sections = append(sections, types.CourseSection{
			SubjCourseID:   subjCourseID,
			SectionID:      strings.TrimSpace(row.SectionID),
			SectionCode:    strings.TrimSpace(row.SectCode),
			AllInstructors: InstructorNames(row.Instructors),
			AvailableSeats: max64(row.AvailableSeats, 0),
			EnrolledCount:  row.EnrolledCount,
			TotalSeats:     row.SectionCapacity,
			WaitlistCount:  row.WaitlistCount,
			Meetings:       []types.Meeting{},
			IsVisible:      row.IsVisible(),
		})
	}
	return sections
}
