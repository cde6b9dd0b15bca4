package parse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tritonlabs/webreg/raw"
	"github.com/tritonlabs/webreg/types"
)

func intp(v int64) *int64 { return &v }

func TestScheduleEnrolledSection(t *testing.T) {
	rows := []raw.ScheduledMeeting{
		{
			SectionID:   79900,
			SectCode:    "A00",
			SubjectCode: "CSE ",
			CourseCode:  " 101",
			CourseTitle: "Design & Analysis of Algorithm",
			MeetingType: "LE",
			DayCode:     "135",
			StartHour:   10, EndHour: 10, EndMin: 50,
			Building:    "CENTR",
			Room:        "119",
			Instructors: "Jones, Miles   ;A100",
		},
		{
			SectionID:   79900,
			SectCode:    "A00",
			SubjectCode: "CSE ",
			CourseCode:  " 101",
			CourseTitle: "Design & Analysis of Algorithm",
			SpecialMeeting: "FI",
			MeetingType:    "FI",
			DayCode:        "3",
			StartHour:      19, EndHour: 21, EndMin: 59,
			StartDate:   "2023-06-14",
			Instructors: "Jones, Miles   ;A100",
		},
		{
			SectionID:   79911,
			SectCode:    "A01",
			SubjectCode: "CSE ",
			CourseCode:  " 101",
			CourseTitle: "Design & Analysis of Algorithm",
			GradeOption: "L",
			CreditHours: 4,
			EnrollStatus: "EN",
			MeetingType:  "DI",
			DayCode:      "1",
			StartHour:    16, EndHour: 16, EndMin: 50,
			Building:     "WLH",
			Room:         "2001",
			Instructors:  "Jones, Miles   ;A100",
			EnrolledCount:   intp(30),
			SectionCapacity: intp(30),
			WaitlistCount:   intp(2),
		},
	}

	schedule, err := Schedule(rows)
	require.NoError(t, err)
	require.Len(t, schedule, 1)

	section := schedule[0]
	// The section ID comes from the row carrying the counts.
	assert.Equal(t, "79911", section.SectionID)
	assert.Equal(t, "CSE", section.SubjectCode)
	assert.Equal(t, "101", section.CourseCode)
	assert.Equal(t, "Design & Analysis of Algorithm", section.CourseTitle)
	assert.Equal(t, "A01", section.SectionCode)
	assert.Equal(t, int64(30), section.SectionCapacity)
	assert.Equal(t, int64(30), section.EnrolledCount)
	assert.Equal(t, int64(0), section.AvailableSeats)
	assert.Equal(t, int64(2), section.WaitlistCount)
	assert.Equal(t, "L", section.GradeOption)
	assert.Equal(t, int64(4), section.Units)
	assert.Equal(t, types.Enrolled(), section.EnrolledStatus)
	assert.Equal(t, []string{"Jones, Miles"}, section.AllInstructors)

	require.Len(t, section.Meetings, 3)
	assert.Equal(t, "LE", section.Meetings[0].MeetingType)
	assert.Equal(t, types.RepeatedDays([]string{"M", "W", "F"}), section.Meetings[0].MeetingDays)
	assert.Equal(t, "FI", section.Meetings[1].MeetingType)
	assert.Equal(t, types.OneTimeOn("2023-06-14"), section.Meetings[1].MeetingDays)
	assert.Equal(t, "DI", section.Meetings[2].MeetingType)
	assert.Equal(t, types.RepeatedDays([]string{"M"}), section.Meetings[2].MeetingDays)
}

func TestScheduleWaitlistedAndPlanned(t *testing.T) {
	waitlisted := raw.ScheduledMeeting{
		SectionID:   80001,
		SectCode:    "B00",
		SubjectCode: "MATH",
		CourseCode:  "100B",
		CourseTitle: "Abstract Algebra II",
		GradeOption: "L",
		CreditHours: 4,
		EnrollStatus: "WT",
		WaitlistPos:  " 3 ",
		MeetingType:  "LE",
		DayCode:      "24",
		StartHour:    9, StartMin: 30, EndHour: 10, EndMin: 50,
		Instructors:     "Abel, Niels ;A1",
		EnrolledCount:   intp(100),
		SectionCapacity: intp(100),
		WaitlistCount:   intp(5),
	}
	planned := waitlisted
	planned.SectionID = 80002
	planned.SectCode = "C00"
	planned.CourseTitle = "Honors Abstract Algebra"
	planned.EnrollStatus = "PL"
	planned.EnrolledCount = intp(20)
	planned.SectionCapacity = intp(35)
	planned.WaitlistCount = nil

	schedule, err := Schedule([]raw.ScheduledMeeting{waitlisted, planned})
	require.NoError(t, err)
	require.Len(t, schedule, 2)

	assert.Equal(t, types.Waitlisted(3), schedule[0].EnrolledStatus)
	assert.Equal(t, int64(0), schedule[0].AvailableSeats)

	assert.Equal(t, types.Planned(), schedule[1].EnrolledStatus)
	assert.Equal(t, int64(15), schedule[1].AvailableSeats)
	// A missing waitlist count on the data row reads as zero.
	assert.Equal(t, int64(0), schedule[1].WaitlistCount)
}

func TestScheduleSpecialSection(t *testing.T) {
	rows := []raw.ScheduledMeeting{
		{
			SectionID:   90001,
			SectCode:    "001",
			SubjectCode: "CSE",
			CourseCode:  "199",
			CourseTitle: "Independent Study",
			GradeOption: " P ",
			CreditHours: 2,
			EnrollStatus: "EN",
			MeetingType:  "IN",
			DayCode:      "2",
			Instructors:     "Mentor, Mary ;A9",
			EnrolledCount:   intp(1),
			SectionCapacity: intp(1),
		},
		{
			SectionID:   90001,
			SectCode:    "001",
			SubjectCode: "CSE",
			CourseCode:  "199",
			CourseTitle: "Independent Study",
			MeetingType: "IN",
			DayCode:     "4",
			Instructors: "Mentor, Mary ;A9",
		},
	}

	schedule, err := Schedule(rows)
	require.NoError(t, err)
	require.Len(t, schedule, 1)

	section := schedule[0]
	assert.Equal(t, "90001", section.SectionID)
	assert.Equal(t, "001", section.SectionCode)
	assert.Equal(t, "P", section.GradeOption)
	assert.Equal(t, []string{"Mentor, Mary"}, section.AllInstructors)
	// Numeric sections collapse to one meeting spanning every row's days.
	require.Len(t, section.Meetings, 1)
	assert.Equal(t, "IN", section.Meetings[0].MeetingType)
	assert.Equal(t, types.RepeatedDays([]string{"Tu", "Th"}), section.Meetings[0].MeetingDays)
}

func TestScheduleSkipsPlaceholderRows(t *testing.T) {
	placeholder := raw.ScheduledMeeting{
		SectCode:        "A00",
		CourseTitle:     "Placeholder",
		EnrolledCount:   intp(0),
		SectionCapacity: intp(0),
	}
	schedule, err := Schedule([]raw.ScheduledMeeting{placeholder})
	require.NoError(t, err)
	assert.Empty(t, schedule)
}

func TestScheduleDeformedResponses(t *testing.T) {
	// A section whose rows never carry counts cannot be normalized.
	noCounts := raw.ScheduledMeeting{
		SectCode:    "A00",
		CourseTitle: "Countless",
		MeetingType: "LE",
		DayCode:     "1",
	}
	_, err := Schedule([]raw.ScheduledMeeting{noCounts})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMalformedResponse))

	// A child row with no general meeting at all.
	orphan := raw.ScheduledMeeting{
		SectCode:        "A01",
		CourseTitle:     "Orphan",
		MeetingType:     "DI",
		DayCode:         "1",
		EnrolledCount:   intp(1),
		SectionCapacity: intp(10),
	}
	_, err = Schedule([]raw.ScheduledMeeting{orphan})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMalformedResponse))

	// Two general meetings that disagree on their type.
	le := raw.ScheduledMeeting{
		SectCode:        "A00",
		CourseTitle:     "Conflicted",
		MeetingType:     "LE",
		DayCode:         "1",
		EnrolledCount:   intp(1),
		SectionCapacity: intp(10),
	}
	se := le
	se.MeetingType = "SE"
	_, err = Schedule([]raw.ScheduledMeeting{le, se})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMalformedResponse))
}
