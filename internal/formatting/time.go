package formatting

import (
	"fmt"
	"time"
)

// DateLayout формат даты в заявке и на кнопках
const DateLayout = "02.01.2006"

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDateWithWeekday форматирует дату с коротким днём недели: 18.10.2026 Вс
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s %s", FormatDate(t), GetWeekdayShort(int(t.Weekday())))
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(startHour, startMin, endHour, endMin int) string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", startHour, startMin, endHour, endMin)
}

// GetWeekdayShort возвращает короткое название дня недели
func GetWeekdayShort(weekday int) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}
