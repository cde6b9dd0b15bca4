package parse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tritonlabs/webreg/raw"
	"github.com/tritonlabs/webreg/types"
)

func TestEvents(t *testing.T) {
	rows := []raw.Event{
		{
			Description: " Gym ",
			Location:    "RIMAC",
			StartTime:   "0700",
			EndTime:     "0830",
			Days:        "1010100",
			TimeStamp:   "2023-04-01 10:00:00.000000",
		},
	}

	events, err := Events(rows)
	require.NoError(t, err)
	require.Len(t, events, 1)

	got := events[0]
	assert.Equal(t, "Gym", got.Name)
	assert.Equal(t, "RIMAC", got.Location)
	assert.Equal(t, 7, got.StartHour)
	assert.Equal(t, 0, got.StartMinute)
	assert.Equal(t, 8, got.EndHour)
	assert.Equal(t, 30, got.EndMinute)
	assert.Equal(t, []string{"M", "W", "F"}, got.Days)
	assert.Equal(t, "2023-04-01 10:00:00.000000", got.Timestamp)
}

func TestEventsBadTime(t *testing.T) {
	_, err := Events([]raw.Event{{StartTime: "9am", EndTime: "1000"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrBadTime))
}
