package state

import (
	"sync"
	"time"

	"github.com/motomotoph/mc1lovecamerabot/internal/model"
)

// State представляет текущий шаг диалога оформления заявки
type State string

const (
	StateNone State = "" // Нет активного диалога

	// Сбор полей заявки
	StateCollectingName      State = "collecting_name"
	StateCollectingPurpose   State = "collecting_purpose"
	StateCollectingEquipment State = "collecting_equipment"

	// Выбор дат и времени
	StateSelectingDates State = "selecting_dates"
	StateSelectingTime  State = "selecting_time"

	// Сводка и редактирование
	StateReviewingSummary State = "reviewing_summary"
	StateEditingField     State = "editing_field"
)

// Session хранит диалог одного пользователя
type Session struct {
	UserID       int64
	State        State
	Draft        *model.BookingRequest
	PendingDates []string // Выбранные даты, к которым ещё не применено время
	Candidates   []string // Даты, предложенные на последнем шаге выбора
	Editing      bool     // Поле редактируется из сводки
	UpdatedAt    time.Time

	mu sync.Mutex
}

// Touch отмечает активность в сессии
func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now
}
