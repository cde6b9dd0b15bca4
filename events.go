package webreg

import (
	"context"
	"net/url"

	"github.com/tritonlabs/webreg/parse"
	"github.com/tritonlabs/webreg/raw"
	"github.com/tritonlabs/webreg/types"
)

// RawEvents returns the caller's calendar events exactly as the portal
// sends them.
func (r *Request) RawEvents(ctx context.Context) (string, error) {
	return r.getText(ctx, urlEventGet, url.Values{"termcode": {r.term}})
}

// Events returns the caller's calendar events for the term.
func (r *Request) Events(ctx context.Context) ([]types.Event, error) {
	body, err := r.RawEvents(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := decode[[]raw.Event]("events", body)
	if err != nil {
		return nil, err
	}
	return parse.Events(rows)
}

// AddEvent creates a calendar event.
func (r *Request) AddEvent(ctx context.Context, event EventAdd) (bool, error) {
	return r.addOrEditEvent(ctx, event, "")
}

// EditEvent replaces the event with the given timestamp. The portal
// implements edits as remove-then-add, so the replacement gets a new
// timestamp.
func (r *Request) EditEvent(ctx context.Context, event EventAdd, timestamp string) (bool, error) {
	if timestamp == "" {
		return false, &types.InputError{Field: "timestamp", Reason: "event timestamp is required"}
	}
	return r.addOrEditEvent(ctx, event, timestamp)
}

func (r *Request) addOrEditEvent(ctx context.Context, event EventAdd, timestamp string) (bool, error) {
	if err := event.validate(); err != nil {
		return false, err
	}
	form := url.Values{
		"termcode":    {r.term},
		"aename":      {event.Name},
		"aestarttime": {hhmm(event.StartHour, event.StartMinute)},
		"aeendtime":   {hhmm(event.EndHour, event.EndMinute)},
		"aelocation":  {event.Location},
		"aedays":      {binaryDayString(event.Days)},
	}
	endpoint := urlEventAdd
	if timestamp != "" {
		endpoint = urlEventEdit
		form.Set("aetimestamp", timestamp)
	}
	return r.post(ctx, endpoint, form)
}

// RemoveEvent deletes the event with the given timestamp.
func (r *Request) RemoveEvent(ctx context.Context, timestamp string) (bool, error) {
	return r.post(ctx, urlEventRemove, url.Values{
		"aetimestamp": {timestamp},
		"termcode":    {r.term},
	})
}
