package webreg

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tritonlabs/webreg/parse"
)

// ValidateAddToPlan asks the portal whether planning the given section
// would succeed, without planning anything.
func (r *Request) ValidateAddToPlan(ctx context.Context, plan *PlanAdd) (bool, error) {
	if err := plan.validate(); err != nil {
		return false, err
	}
	return r.post(ctx, urlPlanEdit, url.Values{
		"section":  {plan.SectionID},
		"subjcode": {plan.SubjectCode},
		"crsecode": {parse.FormattedCourseNum(plan.CourseCode)},
		"termcode": {r.term},
	})
}

// AddToPlan puts a section on a planning schedule.
//
// When validate is set, the plan-edit endpoint is called first; without
// that step the portal can record a plan for only part of a section
// (e.g. the discussion without its lecture), which visually breaks the
// portal's own frontend. A validation rejection only skips the
// validation benefit; the plan itself is still attempted, matching the
// frontend's behavior.
func (r *Request) AddToPlan(ctx context.Context, plan PlanAdd, validate bool) (bool, error) {
	if err := plan.validate(); err != nil {
		return false, err
	}
	if validate {
		// The portal rejects validation for, e.g., major-restricted
		// courses that it will still happily let you plan.
		if _, err := r.ValidateAddToPlan(ctx, &plan); err != nil {
			r.client.log.WithError(err).Debug("plan validation rejected, planning anyway")
		}
	}
	return r.post(ctx, urlPlanAdd, url.Values{
		"subjcode":  {plan.SubjectCode},
		"crsecode":  {parse.FormattedCourseNum(plan.CourseCode)},
		"sectnum":   {plan.SectionID},
		"sectcode":  {plan.SectionCode},
		"unit":      {strconv.Itoa(plan.UnitCount)},
		"grade":     {plan.GradingOption.orLetter()},
		"termcode":  {r.term},
		"schedname": {plan.scheduleName()},
	})
}

// RemoveFromPlan removes a planned section from a schedule. An empty
// schedule name means the default schedule.
func (r *Request) RemoveFromPlan(ctx context.Context, sectionID, scheduleName string) (bool, error) {
	if scheduleName == "" {
		scheduleName = DefaultScheduleName
	}
	return r.post(ctx, urlPlanRemove, url.Values{
		"sectnum":   {sectionID},
		"termcode":  {r.term},
		"schedname": {scheduleName},
	})
}
