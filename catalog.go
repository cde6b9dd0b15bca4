package webreg

import (
	"context"
	"net/url"
	"strings"

	"github.com/tritonlabs/webreg/parse"
	"github.com/tritonlabs/webreg/raw"
	"github.com/tritonlabs/webreg/types"
)

func (r *Request) courseQuery(subjectCode, courseCode string) url.Values {
	return url.Values{
		"subjcode": {subjectCode},
		"crsecode": {parse.FormattedCourseNum(courseCode)},
		"termcode": {r.term},
		"_":        {epochMillis()},
	}
}

// RawSearchCourses runs a course search and returns the portal's JSON
// untouched.
func (r *Request) RawSearchCourses(ctx context.Context, searchBy SearchType) (string, error) {
	endpoint, query := searchBy.searchQuery(r.term)
	return r.getText(ctx, endpoint, query)
}

// SearchCourses runs a course search. Use SearchBySection or
// SearchByMultipleSections to look up specific section IDs, or a
// SearchFilter for the advanced search.
func (r *Request) SearchCourses(ctx context.Context, searchBy SearchType) ([]types.SearchResultItem, error) {
	body, err := r.RawSearchCourses(ctx, searchBy)
	if err != nil {
		return nil, err
	}
	rows, err := decode[[]raw.CourseResult]("course search", body)
	if err != nil {
		return nil, err
	}
	results := make([]types.SearchResultItem, 0, len(rows))
	for _, row := range rows {
		results = append(results, types.SearchResultItem{
			SubjectCode: strings.TrimSpace(row.SubjCode),
			CourseCode:  strings.TrimSpace(row.CourseCode),
			CourseTitle: strings.TrimSpace(row.CourseTitle),
		})
	}
	return results, nil
}

// RawCourseData returns the catalog rows for one course exactly as the
// portal sends them.
func (r *Request) RawCourseData(ctx context.Context, subjectCode, courseCode string) (string, error) {
	return r.getText(ctx, urlCourseData, r.courseQuery(subjectCode, courseCode))
}

func (r *Request) courseRows(ctx context.Context, subjectCode, courseCode string) ([]raw.Meeting, error) {
	body, err := r.RawCourseData(ctx, subjectCode, courseCode)
	if err != nil {
		return nil, err
	}
	return decode[[]raw.Meeting]("course data", body)
}

// CourseInfo returns every section of a course, with the portal's flat
// per-meeting rows regrouped so each section carries its lecture,
// discussion, and exams together. Canceled sections are not included.
func (r *Request) CourseInfo(ctx context.Context, subjectCode, courseCode string) ([]types.CourseSection, error) {
	rows, err := r.courseRows(ctx, subjectCode, courseCode)
	if err != nil {
		return nil, err
	}
	return parse.CourseInfo(r.client.log, rows, subjCourseID(subjectCode, courseCode))
}

// EnrollmentCount returns one entry per enrollable section of a course
// with only the seat counts filled in. It is a much lighter way to poll
// seat availability than CourseInfo.
func (r *Request) EnrollmentCount(ctx context.Context, subjectCode, courseCode string) ([]types.CourseSection, error) {
	rows, err := r.courseRows(ctx, subjectCode, courseCode)
	if err != nil {
		return nil, err
	}
	return parse.EnrollmentCount(rows, subjCourseID(subjectCode, courseCode)), nil
}

// RawPrerequisites returns the prerequisite rows for one course exactly
// as the portal sends them.
func (r *Request) RawPrerequisites(ctx context.Context, subjectCode, courseCode string) (string, error) {
	return r.getText(ctx, urlPrerequisites, r.courseQuery(subjectCode, courseCode))
}

// Prerequisites returns the prerequisite structure for one course.
func (r *Request) Prerequisites(ctx context.Context, subjectCode, courseCode string) (types.PrerequisiteInfo, error) {
	body, err := r.RawPrerequisites(ctx, subjectCode, courseCode)
	if err != nil {
		return types.PrerequisiteInfo{}, err
	}
	rows, err := decode[[]raw.Prerequisite]("prerequisites", body)
	if err != nil {
		return types.PrerequisiteInfo{}, err
	}
	return parse.Prerequisites(rows), nil
}

// SubjectCodes lists every subject with at least one course offered in
// the term.
func (r *Request) SubjectCodes(ctx context.Context) ([]string, error) {
	query := url.Values{"termcode": {r.term}, "_": {epochMillis()}}
	resp, respErr := r.get(ctx, urlSubjectList, query)
	rows, err := getJSON[[]raw.SubjectElement]("subject list", resp, respErr)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, strings.TrimSpace(row.SubjectCode))
	}
	return codes, nil
}

// DepartmentCodes lists every department offering courses in the term.
func (r *Request) DepartmentCodes(ctx context.Context) ([]string, error) {
	query := url.Values{"termcode": {r.term}, "_": {epochMillis()}}
	resp, respErr := r.get(ctx, urlDepartmentList, query)
	rows, err := getJSON[[]raw.DepartmentElement]("department list", resp, respErr)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, strings.TrimSpace(row.DepCode))
	}
	return codes, nil
}

// subjCourseID joins a subject and course code into the display ID used
// on the cleaned model, e.g. `CSE 100`.
func subjCourseID(subjectCode, courseCode string) string {
	return strings.ToUpper(strings.TrimSpace(subjectCode)) + " " +
		strings.ToUpper(strings.TrimSpace(courseCode))
}
