// Package parse turns the portal's flat JSON rows into the cleaned model
// in package types. The portal reports one row per meeting with section
// membership only implied by code prefixes, so most of this package is
// about regrouping rows into sections.
package parse

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tritonlabs/webreg/types"
)

// weekdays maps the portal's numeric day codes (0 = Sunday) to tokens.
var weekdays = [...]string{"Su", "M", "Tu", "W", "Th", "F", "Sa"}

// mondayFirstDays orders days the way binary day strings do.
var mondayFirstDays = [...]string{"M", "Tu", "W", "Th", "F", "Sa", "Su"}

// InstructorNames splits the portal's packed instructor string into
// trimmed names. The portal formats each instructor as `name   ;pid`
// and joins multiple instructors with `:`.
func InstructorNames(raw string) []string {
	names := []string{}
	for _, part := range strings.Split(raw, ":") {
		name, _, _ := strings.Cut(part, ";")
		names = append(names, strings.TrimSpace(name))
	}
	return names
}

// dedupSorted sorts the slice and removes adjacent duplicates in place.
func dedupSorted(s []string) []string {
	sort.Strings(s)
	out := s[:0]
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// AllInstructors merges packed instructor strings from several rows into
// one sorted list without duplicates.
func AllInstructors(raws []string) []string {
	all := []string{}
	for _, raw := range raws {
		all = append(all, InstructorNames(raw)...)
	}
	return dedupSorted(all)
}

// DayCodeDays decodes a numeric day code string such as `135` into
// weekday tokens. Digits outside 0-6 and non-digit characters are
// dropped.
func DayCodeDays(dayCode string) []string {
	days := []string{}
	for _, r := range dayCode {
		if r < '0' || r > '6' {
			continue
		}
		days = append(days, weekdays[r-'0'])
	}
	return days
}

// BinaryDays decodes a seven character binary day string with Monday
// first, e.g. `1010100` means Monday, Wednesday, and Friday. Strings of
// any other length decode to no days.
func BinaryDays(binary string) []string {
	days := []string{}
	if len(binary) != 7 {
		return days
	}
	for i, r := range binary {
		if r == '1' {
			days = append(days, mondayFirstDays[i])
		}
	}
	return days
}

// FormattedCourseNum pads a course code the way the portal's search
// endpoint expects: codes with one digit get two leading spaces and codes
// with two digits get one, so that `8B`, ` 15L`, and `158` sort together.
func FormattedCourseNum(course string) string {
	digits := 0
	for _, r := range course {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	switch digits {
	case 1:
		return "  " + course
	case 2:
		return " " + course
	default:
		return course
	}
}

// FormatMultipleCourses uppercases, pads, and joins course codes for a
// search request.
func FormatMultipleCourses(courses []string) string {
	formatted := make([]string, 0, len(courses))
	for _, c := range courses {
		formatted = append(formatted, FormattedCourseNum(strings.ToUpper(strings.TrimSpace(c))))
	}
	return strings.Join(formatted, ":")
}

// seasonAnchor fixes a season's sequence ID at its anchor year; the
// portal advances every season's ID by yearStride per academic year.
type seasonAnchor struct {
	seqID int64
	year  int64
}

const yearStride = 70

var seasonAnchors = map[string]seasonAnchor{
	"FA": {5250, 22},
	"WI": {5260, 23},
	"SP": {5270, 23},
	"S1": {5280, 23},
	"S2": {5290, 23},
	"S3": {5300, 23},
}

// TermSeqID derives the portal's internal sequence ID for a four
// character term token such as `FA23`. It returns 0 when the token is
// not recognized.
func TermSeqID(term string) int64 {
	if len(term) != 4 {
		return 0
	}
	anchor, ok := seasonAnchors[strings.ToUpper(term[:2])]
	if !ok {
		return 0
	}
	year, err := strconv.ParseInt(term[2:], 10, 64)
	if err != nil {
		return 0
	}
	return anchor.seqID + (year-anchor.year)*yearStride
}

// clock validates an hour/minute pair from a portal response. The portal
// occasionally emits garbage times and it is better to fail the whole
// parse than to emit a section meeting at hour 91.
func clock(hour, minute int) (int, int, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %d:%02d", types.ErrBadTime, hour, minute)
	}
	return hour, minute, nil
}

// hhmmClock decodes a four digit `HHMM` time string.
func hhmmClock(hhmm string) (int, int, error) {
	if len(hhmm) != 4 {
		return 0, 0, fmt.Errorf("%w: %q", types.ErrBadTime, hhmm)
	}
	for _, r := range hhmm {
		if r < '0' || r > '9' {
			return 0, 0, fmt.Errorf("%w: %q", types.ErrBadTime, hhmm)
		}
	}
	hour := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	minute := int(hhmm[2]-'0')*10 + int(hhmm[3]-'0')
	return clock(hour, minute)
}

// TBA in a special meeting code means the time is not set, which for
// grouping purposes is the same as no special meeting at all.
func trimTBA(specialMeeting string) string {
	return strings.TrimSpace(strings.ReplaceAll(specialMeeting, "TBA", ""))
}

// meetingDayInfo resolves a row's meeting type and day shape. Rows with a
// real special meeting code (a final, midterm, or similar) occur once on
// their start date and take the special code as their type; everything
// else recurs on its day code, or has no scheduled day when the day code
// is empty.
func meetingDayInfo(meetingType, specialMeeting, dayCode, startDate string) (string, types.MeetingDay) {
	if special := strings.TrimSpace(specialMeeting); special != "" && special != "TBA" {
		return special, types.OneTimeOn(startDate)
	}
	meetingType = strings.TrimSpace(meetingType)
	if dayCode := strings.TrimSpace(dayCode); dayCode != "" {
		return meetingType, types.RepeatedDays(DayCodeDays(dayCode))
	}
	return meetingType, types.NoMeetingDay()
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
