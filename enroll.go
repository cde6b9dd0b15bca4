package webreg

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/tritonlabs/webreg/types"
)

// AddTypeFor decides whether a section can be directly enrolled in or
// must be waitlisted, by checking its live seat counts. Note that this
// only checks seats, not whether the caller personally may enroll.
func (r *Request) AddTypeFor(ctx context.Context, sectionID string) (ExplicitAddType, error) {
	results, err := r.SearchCourses(ctx, SearchBySection(sectionID))
	if err != nil {
		return ExplicitEnroll, err
	}
	if len(results) == 0 {
		return ExplicitEnroll, &types.SectionNotFoundError{SectionID: sectionID, Where: types.ContextCatalog}
	}

	counts, err := r.EnrollmentCount(ctx, results[0].SubjectCode, results[0].CourseCode)
	if err != nil {
		return ExplicitEnroll, err
	}
	for _, section := range counts {
		if section.SectionID != sectionID {
			continue
		}
		if section.HasSeats() {
			return ExplicitEnroll, nil
		}
		return ExplicitWaitlist, nil
	}
	return ExplicitEnroll, &types.SectionNotFoundError{SectionID: sectionID, Where: types.ContextCatalog}
}

func (r *Request) resolveAddType(ctx context.Context, addType AddType, sectionID string) (ExplicitAddType, error) {
	switch addType {
	case AddEnroll:
		return ExplicitEnroll, nil
	case AddWaitlist:
		return ExplicitWaitlist, nil
	default:
		return r.AddTypeFor(ctx, sectionID)
	}
}

// ValidateAddSection asks the portal whether enrolling in (or
// waitlisting) the given section would succeed, without committing.
func (r *Request) ValidateAddSection(ctx context.Context, addType AddType, enroll *EnrollAdd) (bool, error) {
	if err := enroll.validate(); err != nil {
		return false, err
	}
	explicit, err := r.resolveAddType(ctx, addType, enroll.SectionID)
	if err != nil {
		return false, err
	}
	endpoint := urlEnrollEdit
	if explicit == ExplicitWaitlist {
		endpoint = urlWaitlistEdit
	}
	return r.post(ctx, endpoint, url.Values{
		"section":  {enroll.SectionID},
		"termcode": {r.term},
		"subjcode": {""},
		"crsecode": {""},
	})
}

// AddSection enrolls in or waitlists a section.
//
// The portal requires validation before enrollment, so validate should
// be true unless ValidateAddSection was already called with the same
// options. After a successful enrollment the section is also removed
// from every planning schedule, the way the portal's frontend does it.
func (r *Request) AddSection(ctx context.Context, addType AddType, enroll EnrollAdd, validate bool) (bool, error) {
	if err := enroll.validate(); err != nil {
		return false, err
	}
	explicit, err := r.resolveAddType(ctx, addType, enroll.SectionID)
	if err != nil {
		return false, err
	}
	endpoint := urlEnrollAdd
	if explicit == ExplicitWaitlist {
		endpoint = urlWaitlistAdd
	}

	if validate {
		if _, err := r.ValidateAddSection(ctx, addType, &enroll); err != nil {
			return false, err
		}
	}

	if _, err := r.post(ctx, endpoint, url.Values{
		"section":  {enroll.SectionID},
		"termcode": {r.term},
		"unit":     {enroll.unitString()},
		"grade":    {enroll.GradingOption.orLetter()},
		"crsecode": {""},
		"subjcode": {""},
	}); err != nil {
		return false, err
	}

	return r.post(ctx, urlPlanRemoveAll, url.Values{
		"sectnum":  {enroll.SectionID},
		"termcode": {r.term},
	})
}

// DropSection drops an enrolled or waitlisted section. prevStatus must
// say which of the two the caller currently is, since the portal uses
// different endpoints for each.
func (r *Request) DropSection(ctx context.Context, prevStatus ExplicitAddType, sectionID string) (bool, error) {
	endpoint := urlEnrollDrop
	if prevStatus == ExplicitWaitlist {
		endpoint = urlWaitlistDrop
	}
	return r.post(ctx, endpoint, url.Values{
		"subjcode": {""},
		"crsecode": {""},
		"section":  {sectionID},
		"termcode": {r.term},
	})
}

// ChangeGradingOption changes the grading option of an enrolled
// section.
//
// The schedule endpoint reports section IDs as integers while the rest
// of the portal uses zero-padded strings, so leading zeros on the input
// are ignored when looking the section up.
func (r *Request) ChangeGradingOption(ctx context.Context, sectionID string, newOption GradeOption) (bool, error) {
	trimmed := strings.TrimLeft(sectionID, "0")

	schedule, err := r.Schedule(ctx, "")
	if err != nil {
		return false, err
	}
	var units int64 = -1
	for _, section := range schedule {
		if section.SectionID == trimmed {
			units = section.Units
			break
		}
	}
	if units < 0 {
		return false, &types.SectionNotFoundError{SectionID: sectionID, Where: types.ContextSchedule}
	}

	return r.post(ctx, urlChangeEnroll, url.Values{
		"section":  {trimmed},
		"subjCode": {""},
		"crseCode": {""},
		"unit":     {strconv.FormatInt(units, 10)},
		"grade":    {newOption.orLetter()},
		"oldGrade": {""},
		"oldUnit":  {""},
		"termcode": {r.term},
	})
}
