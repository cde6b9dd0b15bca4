package webreg

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/tritonlabs/webreg/parse"
)

// SearchType selects which course search endpoint to hit and with what
// parameters. The three implementations are SearchBySection,
// SearchByMultipleSections, and SearchFilter.
type SearchType interface {
	searchQuery(term string) (endpoint string, query url.Values)
}

// SearchBySection looks a single section ID up in the catalog.
type SearchBySection string

func (s SearchBySection) searchQuery(term string) (string, url.Values) {
	return urlSearchBySection, url.Values{
		"sectionid": {string(s)},
		"termcode":  {term},
	}
}

// SearchByMultipleSections looks several section IDs up at once.
type SearchByMultipleSections []string

func (s SearchByMultipleSections) searchQuery(term string) (string, url.Values) {
	return urlSearchBySection, url.Values{
		"sectionid": {strings.Join(s, ":")},
		"termcode":  {term},
	}
}

// SearchFilter is the advanced course search. The zero value matches
// everything; narrow it with the chainable methods.
type SearchFilter struct {
	subjects    []string
	courses     []string
	departments []string
	instructor  string
	title       string
	levelFilter uint32
	days        uint32
	startTime   string
	endTime     string
	onlyOpen    bool
}

func NewSearchFilter() *SearchFilter {
	return &SearchFilter{}
}

// AddSubject adds a subject code such as `CSE`. Codes longer than four
// characters are not valid subjects and are ignored.
func (f *SearchFilter) AddSubject(subject string) *SearchFilter {
	if len(subject) > 4 {
		return f
	}
	f.subjects = append(f.subjects, strings.ToUpper(subject))
	return f
}

// AddCourse adds a course code such as `8B` or `100`.
func (f *SearchFilter) AddCourse(course string) *SearchFilter {
	f.courses = append(f.courses, course)
	return f
}

// AddDepartment adds a department code. Like subjects, these are at
// most four characters.
func (f *SearchFilter) AddDepartment(department string) *SearchFilter {
	if len(department) > 4 {
		return f
	}
	f.departments = append(f.departments, strings.ToUpper(department))
	return f
}

// SetInstructor filters by instructor name, any case.
func (f *SearchFilter) SetInstructor(instructor string) *SearchFilter {
	f.instructor = strings.ToUpper(instructor)
	return f
}

// SetTitle filters by course title, any case.
func (f *SearchFilter) SetTitle(title string) *SearchFilter {
	f.title = strings.ToUpper(title)
	return f
}

// CourseLevelFilter restricts the advanced search to a band of course
// numbers. Filters combine: apply several to widen the band.
type CourseLevelFilter uint32

const (
	// LowerDivision covers courses numbered 1-99.
	LowerDivision CourseLevelFilter = 1 << 11
	// FreshmanSeminar covers courses numbered 87 and 90.
	FreshmanSeminar CourseLevelFilter = 1 << 10
	// LowerDivisionIndependentStudy covers courses numbered 99.
	LowerDivisionIndependentStudy CourseLevelFilter = 1 << 9
	// UpperDivision covers courses numbered 100-198.
	UpperDivision CourseLevelFilter = 1 << 8
	// Apprenticeship covers courses numbered 195.
	Apprenticeship CourseLevelFilter = 1 << 7
	// UpperDivisionIndependentStudy covers courses numbered 199.
	UpperDivisionIndependentStudy CourseLevelFilter = 1 << 6
	// Graduate covers courses numbered 200-297.
	Graduate CourseLevelFilter = 1 << 5
	// GraduateIndependentStudy covers courses numbered 298.
	GraduateIndependentStudy CourseLevelFilter = 1 << 4
	// GraduateResearch covers courses numbered 299.
	GraduateResearch CourseLevelFilter = 1 << 3
	// Level300 covers courses numbered 300-399.
	Level300 CourseLevelFilter = 1 << 2
	// Level400 covers courses numbered 400-499.
	Level400 CourseLevelFilter = 1 << 1
	// Level500 covers courses numbered 500 and up.
	Level500 CourseLevelFilter = 1 << 0
)

// FilterCoursesBy adds a course level band to the filter.
func (f *SearchFilter) FilterCoursesBy(filter CourseLevelFilter) *SearchFilter {
	f.levelFilter |= uint32(filter)
	return f
}

// ApplyDay restricts results to sections meeting on the given day.
func (f *SearchFilter) ApplyDay(day DayOfWeek) *SearchFilter {
	if day < Monday || day > Sunday {
		return f
	}
	f.days |= 1 << (6 - uint32(day))
	return f
}

// SetStartTime restricts results to sections starting at or after the
// given time. Out of range values are ignored.
func (f *SearchFilter) SetStartTime(hour, minute int) *SearchFilter {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return f
	}
	f.startTime = hhmm(hour, minute)
	return f
}

// SetEndTime restricts results to sections ending at or before the
// given time. Out of range values are ignored.
func (f *SearchFilter) SetEndTime(hour, minute int) *SearchFilter {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return f
	}
	f.endTime = hhmm(hour, minute)
	return f
}

// OnlyAllowOpen restricts results to sections with open seats.
func (f *SearchFilter) OnlyAllowOpen() *SearchFilter {
	f.onlyOpen = true
	return f
}

// paddedBinary renders v as a binary string of exactly width digits.
func paddedBinary(v uint32, width int) string {
	s := strconv.FormatUint(uint64(v), 2)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func (f *SearchFilter) searchQuery(term string) (string, url.Values) {
	levels := ""
	if f.levelFilter != 0 {
		levels = paddedBinary(f.levelFilter, 12)
	}
	days := ""
	if f.days != 0 {
		days = paddedBinary(f.days, 7)
	}
	timeStr := ""
	if f.startTime != "" || f.endTime != "" {
		timeStr = f.startTime + ":" + f.endTime
	}
	return urlSearchByAll, url.Values{
		"subjcode":         {strings.Join(f.subjects, ":")},
		"crsecode":         {parse.FormatMultipleCourses(f.courses)},
		"department":       {strings.Join(f.departments, ":")},
		"professor":        {f.instructor},
		"title":            {f.title},
		"levels":           {levels},
		"days":             {days},
		"timestr":          {timeStr},
		"opensection":      {strconv.FormatBool(f.onlyOpen)},
		"isbasic":          {"true"},
		"basicsearchvalue": {""},
		"termcode":         {term},
		"_":                {epochMillis()},
	}
}
