package parse

import (
	"strings"

	"github.com/tritonlabs/webreg/raw"
	"github.com/tritonlabs/webreg/types"
)

// Events converts the event list endpoint's rows. Times arrive as four
// digit `HHMM` strings and days as a seven character binary string with
// Monday first.
func Events(rows []raw.Event) ([]types.Event, error) {
	events := make([]types.Event, 0, len(rows))
	for _, row := range rows {
		startHr, startMin, err := hhmmClock(row.StartTime)
		if err != nil {
			return nil, err
		}
		endHr, endMin, err := hhmmClock(row.EndTime)
		if err != nil {
			return nil, err
		}
		events = append(events, types.Event{
			Name:        strings.TrimSpace(row.Description),
			Location:    strings.TrimSpace(row.Location),
			StartHour:   startHr,
			StartMinute: startMin,
			EndHour:     endHr,
			EndMinute:   endMin,
			Days:        BinaryDays(row.Days),
			Timestamp:   row.TimeStamp,
		})
	}
	return events, nil
}
