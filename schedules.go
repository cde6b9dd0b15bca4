package webreg

import (
	"context"
	"net/url"

	"github.com/tritonlabs/webreg/parse"
	"github.com/tritonlabs/webreg/raw"
	"github.com/tritonlabs/webreg/types"
)

// RawSchedule returns the rows of one of the caller's schedules exactly
// as the portal sends them. An empty schedule name means the default
// schedule.
func (r *Request) RawSchedule(ctx context.Context, scheduleName string) (string, error) {
	if scheduleName == "" {
		scheduleName = DefaultScheduleName
	}
	return r.getText(ctx, urlSchedule, url.Values{
		"schedname": {scheduleName},
		"final":     {""},
		"sectnum":   {""},
		"termcode":  {r.term},
		"_":         {epochMillis()},
	})
}

// Schedule returns the caller's enrolled, waitlisted, and planned
// sections on the named schedule. An empty name means the default
// schedule.
func (r *Request) Schedule(ctx context.Context, scheduleName string) ([]types.ScheduledSection, error) {
	body, err := r.RawSchedule(ctx, scheduleName)
	if err != nil {
		return nil, err
	}
	rows, err := decode[[]raw.ScheduledMeeting]("schedule", body)
	if err != nil {
		return nil, err
	}
	return parse.Schedule(rows)
}

// RawScheduleNames returns the schedule list exactly as the portal
// sends it.
func (r *Request) RawScheduleNames(ctx context.Context) (string, error) {
	return r.getText(ctx, urlScheduleNames, url.Values{
		"termcode": {r.term},
	})
}

// ScheduleNames lists the caller's schedules for the term.
func (r *Request) ScheduleNames(ctx context.Context) ([]string, error) {
	body, err := r.RawScheduleNames(ctx)
	if err != nil {
		return nil, err
	}
	return decode[[]string]("schedule names", body)
}

// RenameSchedule renames a schedule. The default schedule cannot be
// renamed.
func (r *Request) RenameSchedule(ctx context.Context, oldName, newName string) (bool, error) {
	if oldName == DefaultScheduleName {
		return false, &types.InputError{Field: "oldName", Reason: "the default schedule cannot be renamed"}
	}
	return r.post(ctx, urlRenameSchedule, url.Values{
		"termcode":     {r.term},
		"oldschedname": {oldName},
		"newschedname": {newName},
	})
}

// RemoveSchedule deletes a schedule. The default schedule cannot be
// removed.
func (r *Request) RemoveSchedule(ctx context.Context, scheduleName string) (bool, error) {
	if scheduleName == DefaultScheduleName {
		return false, &types.InputError{Field: "scheduleName", Reason: "the default schedule cannot be removed"}
	}
	return r.post(ctx, urlRemoveSchedule, url.Values{
		"termcode":  {r.term},
		"schedname": {scheduleName},
	})
}
