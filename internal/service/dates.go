package service

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/motomotoph/mc1lovecamerabot/internal/formatting"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrTooSoon          = errors.New("start is earlier than lead time")
)

// TimePreset именованный диапазон времени для кнопок
type TimePreset struct {
	Key   string
	Title string
	Range string
}

// TimePresets фиксированный набор диапазонов в порядке показа
var TimePresets = []TimePreset{
	{Key: "morning", Title: "🌅 Утро", Range: "09:00-12:00"},
	{Key: "day", Title: "☀️ День", Range: "12:00-18:00"},
	{Key: "evening", Title: "🌆 Вечер", Range: "18:00-22:00"},
	{Key: "full_day", Title: "🕘 Весь день", Range: "09:00-22:00"},
}

var literalRangeRe = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})\s*[-–—]\s*(\d{1,2})[:.](\d{2})$`)

// CandidateDate дата, предлагаемая пользователю
type CandidateDate struct {
	Token string // 18.10.2026
	Label string // 18.10.2026 Вс
}

// DatePlanner строит списки дат и применяет к ним время
type DatePlanner struct {
	leadHours   int
	horizonDays int
	loc         *time.Location
}

// NewDatePlanner создаёт планировщик дат
func NewDatePlanner(leadHours, horizonDays int, loc *time.Location) *DatePlanner {
	if loc == nil {
		loc = time.Local
	}
	return &DatePlanner{
		leadHours:   leadHours,
		horizonDays: horizonDays,
		loc:         loc,
	}
}

// Location возвращает часовой пояс календаря
func (p *DatePlanner) Location() *time.Location {
	return p.loc
}

// LeadHours минимальный срок подачи заявки в часах
func (p *DatePlanner) LeadHours() int {
	return p.leadHours
}

// CandidateDates возвращает дни начиная с дня (reference + lead) и не дальше horizonDays от reference
func (p *DatePlanner) CandidateDates(reference time.Time) []CandidateDate {
	ref := reference.In(p.loc)
	first := startOfDay(ref.Add(time.Duration(p.leadHours) * time.Hour))
	last := startOfDay(ref).AddDate(0, 0, p.horizonDays)

	var dates []CandidateDate
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dates = append(dates, CandidateDate{
			Token: formatting.FormatDate(d),
			Label: formatting.FormatDateWithWeekday(d),
		})
	}
	return dates
}

// CheckLeadTime проверяет что начало диапазона на каждой дате не раньше reference + lead
func (p *DatePlanner) CheckLeadTime(reference time.Time, dates []string, timeRange string) error {
	start, err := time.Parse("15:04", strings.SplitN(timeRange, "-", 2)[0])
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeRange, timeRange)
	}

	earliest := reference.In(p.loc).Add(time.Duration(p.leadHours) * time.Hour)
	for _, d := range dates {
		day, err := time.ParseInLocation(formatting.DateLayout, d, p.loc)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", d, err)
		}
		at := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, p.loc)
		if at.Before(earliest) {
			return fmt.Errorf("%w: %s %s", ErrTooSoon, d, timeRange)
		}
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ToggleDate добавляет дату в конец списка; повторный выбор ничего не меняет
func ToggleDate(selected []string, token string) []string {
	if slices.Contains(selected, token) {
		return selected
	}
	return append(slices.Clone(selected), token)
}

// ClearDates сбрасывает выбор дат
func ClearDates() []string {
	return nil
}

// PresetByKey ищет пресет по ключу
func PresetByKey(key string) (TimePreset, bool) {
	for _, p := range TimePresets {
		if p.Key == key {
			return p, true
		}
	}
	return TimePreset{}, false
}

// ResolveTimeRange превращает ключ пресета или строку вида "10:00-16:30" в HH:MM-HH:MM
func ResolveTimeRange(input string) (string, error) {
	input = strings.TrimSpace(input)
	if p, ok := PresetByKey(input); ok {
		return p.Range, nil
	}

	m := literalRangeRe.FindStringSubmatch(input)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeRange, input)
	}

	nums := make([]int, 4)
	for i := range nums {
		nums[i], _ = strconv.Atoi(m[i+1])
	}
	startHour, startMin, endHour, endMin := nums[0], nums[1], nums[2], nums[3]

	if startHour > 23 || endHour > 23 || startMin > 59 || endMin > 59 {
		return "", fmt.Errorf("%w: out of range %q", ErrInvalidTimeRange, input)
	}
	if endHour*60+endMin <= startHour*60+startMin {
		return "", fmt.Errorf("%w: end before start %q", ErrInvalidTimeRange, input)
	}

	return formatting.FormatTimeRange(startHour, startMin, endHour, endMin), nil
}

// ApplyTimeRange возвращает по одной строке "дата диапазон" на каждую выбранную дату
func ApplyTimeRange(dates []string, timeRange string) []string {
	lines := make([]string, 0, len(dates))
	for _, d := range dates {
		lines = append(lines, d+" "+timeRange)
	}
	return lines
}
