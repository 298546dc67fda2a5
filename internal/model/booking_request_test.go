package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRequestRow(t *testing.T) {
	req := &BookingRequest{
		ApplicationNumber:    "mc00007",
		RequesterName:        "Ann Lee",
		PurposeOrUnit:        "Workshop",
		EquipmentList:        "1 camera",
		SelectedDates:        []string{"18.10.2026", "19.10.2026"},
		TimeRange:            "12:00-18:00",
		Schedule:             []string{"18.10.2026 12:00-18:00", "19.10.2026 12:00-18:00"},
		RequesterHandle:      "annlee",
		RequesterProfileLink: "https://t.me/annlee",
		CreatedAt:            time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
	}

	row := req.Row()

	require.Len(t, row, len(RecordColumns))
	assert.Equal(t, "mc00007", row[0])
	assert.Equal(t, "2026-10-16 09:30:00", row[1])
	assert.Equal(t, "18.10.2026 12:00-18:00; 19.10.2026 12:00-18:00", row[5])
	assert.Equal(t, "https://t.me/annlee", row[7])
	for i, v := range row {
		assert.NotEmpty(t, v, "column %q", RecordColumns[i])
	}
}

func TestBookingRequestClearSchedule(t *testing.T) {
	req := &BookingRequest{
		SelectedDates:    []string{"18.10.2026"},
		TimeRange:        "09:00-12:00",
		Schedule:         []string{"18.10.2026 09:00-12:00"},
		FreeformSchedule: true,
	}
	require.True(t, req.HasSchedule())

	req.ClearSchedule()

	assert.False(t, req.HasSchedule())
	assert.Empty(t, req.SelectedDates)
	assert.Empty(t, req.TimeRange)
	assert.False(t, req.FreeformSchedule)
}
