package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateWithWeekday(t *testing.T) {
	// 18.10.2026 это воскресенье
	d := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "18.10.2026 Вс", FormatDateWithWeekday(d))
	assert.Equal(t, "18.10.2026", FormatDate(d))
}

func TestGetWeekdayShortOutOfRange(t *testing.T) {
	assert.Equal(t, "?", GetWeekdayShort(7))
	assert.Equal(t, "?", GetWeekdayShort(-1))
	assert.Equal(t, "Пн", GetWeekdayShort(int(time.Monday)))
}

func TestFormatTimeRange(t *testing.T) {
	assert.Equal(t, "09:00-12:30", FormatTimeRange(9, 0, 12, 30))
}
