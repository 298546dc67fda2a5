package intake

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/motomotoph/mc1lovecamerabot/internal/controller/state"
	"github.com/motomotoph/mc1lovecamerabot/internal/formatting"
	"github.com/motomotoph/mc1lovecamerabot/internal/model"
	"github.com/motomotoph/mc1lovecamerabot/internal/service"
	"go.uber.org/zap"
)

// ========== Текстовые поля ==========

func (e *Engine) handleName(s *state.Session, act Action) transition {
	value, problem, ok := textValue(act, NameMinLength, NameMaxLength)
	if !ok {
		return e.repeat(s, problem, textAskName)
	}
	s.Draft.RequesterName = value
	return e.afterField(s, e.askPurpose())
}

func (e *Engine) handlePurpose(s *state.Session, act Action) transition {
	value, problem, ok := textValue(act, PurposeMinLength, PurposeMaxLength)
	if !ok {
		return e.repeat(s, problem, textAskPurpose)
	}
	s.Draft.PurposeOrUnit = value
	return e.afterField(s, e.askEquipment())
}

func (e *Engine) handleEquipment(s *state.Session, act Action) transition {
	value, problem, ok := textValue(act, EquipmentMinLength, EquipmentMaxLength)
	if !ok {
		return e.repeat(s, problem, textAskEquipment)
	}
	s.Draft.EquipmentList = value
	return e.afterField(s, e.askDates(s, ""))
}

// textValue достаёт значение текстового поля. Кнопки и команды в текстовых шагах не принимаются.
func textValue(act Action, minLen, maxLen int) (string, string, bool) {
	if act.Kind != ActionText {
		return "", "", false
	}
	if problem := validateField(act.Text, minLen, maxLen); problem != "" {
		return "", problem, false
	}
	return act.Text, "", true
}

// validateField проверяет длину в символах, возвращает текст ошибки или пустую строку
func validateField(value string, minLen, maxLen int) string {
	n := utf8.RuneCountInString(value)
	if n < minLen {
		return fmt.Sprintf(textFieldTooShort, minLen)
	}
	if n > maxLen {
		return fmt.Sprintf(textFieldTooLong, maxLen)
	}
	return ""
}

// afterField после ввода поля: при редактировании возврат к сводке, иначе следующий шаг
func (e *Engine) afterField(s *state.Session, next transition) transition {
	if s.Editing {
		s.Editing = false
		return e.showSummary(s)
	}
	return next
}

// repeat повторяет запрос текущего шага с пояснением
func (e *Engine) repeat(s *state.Session, problem, prompt string) transition {
	text := prompt
	if problem != "" {
		text = problem
	}
	return transition{next: s.State, text: text, keyboard: cancelKeyboard()}
}

// ========== Даты ==========

func (e *Engine) handleDates(s *state.Session, act Action) transition {
	switch act.Kind {
	case ActionPickDate:
		if !slices.Contains(s.Candidates, act.Date) {
			return e.askDates(s, fmt.Sprintf(textDateUnavailable, act.Date))
		}
		s.PendingDates = service.ToggleDate(s.PendingDates, act.Date)
		return e.askDates(s, "")

	case ActionClearDates:
		s.PendingDates = service.ClearDates()
		return e.askDates(s, textDatesCleared)

	case ActionDatesDone:
		if len(s.PendingDates) == 0 {
			return e.askDates(s, textNoDatesSelected)
		}
		return e.askTime(s, "")

	case ActionText:
		return e.applyFreeformSchedule(s, act.Text)

	default:
		return e.askDates(s, "")
	}
}

// applyFreeformSchedule принимает даты и время одной строкой
func (e *Engine) applyFreeformSchedule(s *state.Session, text string) transition {
	n := utf8.RuneCountInString(text)
	if n < FreeformScheduleMinLength {
		return e.askDates(s, textFreeformInvalid)
	}
	if n > FreeformScheduleMaxLength {
		return e.askDates(s, fmt.Sprintf(textFieldTooLong, FreeformScheduleMaxLength))
	}

	s.Draft.ClearSchedule()
	s.Draft.Schedule = []string{text}
	s.Draft.FreeformSchedule = true
	s.PendingDates = nil
	s.Editing = false
	return e.showSummary(s)
}

// askDates показывает доступные даты с отметкой выбранных
func (e *Engine) askDates(s *state.Session, notice string) transition {
	candidates := e.planner.CandidateDates(e.now())

	s.Candidates = s.Candidates[:0]
	for _, c := range candidates {
		s.Candidates = append(s.Candidates, c.Token)
	}

	if len(candidates) == 0 {
		return transition{
			next:     state.StateSelectingDates,
			text:     withNotice(notice, textAskDatesNoCandidates),
			keyboard: cancelKeyboard(),
		}
	}

	text := textAskDates
	if len(s.PendingDates) > 0 {
		text += fmt.Sprintf(textSelectedDates, strings.Join(s.PendingDates, ", "))
	}

	return transition{
		next:     state.StateSelectingDates,
		text:     withNotice(notice, text),
		keyboard: datesKeyboard(candidates, s.PendingDates),
	}
}

// ========== Время ==========

func (e *Engine) handleTime(s *state.Session, act Action) transition {
	var input string
	switch act.Kind {
	case ActionTimePreset:
		input = act.Preset
	case ActionText:
		input = act.Text
	case ActionBackToDates:
		return e.askDates(s, "")
	default:
		return e.askTime(s, "")
	}

	timeRange, err := service.ResolveTimeRange(input)
	if err != nil {
		e.logger.Debug("Rejected time range",
			zap.Int64("telegram_id", s.UserID),
			zap.Error(err))
		return e.askTime(s, textTimeInvalid)
	}

	if err := e.planner.CheckLeadTime(e.now(), s.PendingDates, timeRange); err != nil {
		e.logger.Debug("Rejected time range before lead time",
			zap.Int64("telegram_id", s.UserID),
			zap.Error(err))
		return e.askTime(s, fmt.Sprintf(textTimeTooSoon, e.planner.LeadHours()))
	}

	s.Draft.SelectedDates = slices.Clone(s.PendingDates)
	s.Draft.TimeRange = timeRange
	s.Draft.Schedule = service.ApplyTimeRange(s.Draft.SelectedDates, timeRange)
	s.Draft.FreeformSchedule = false
	s.PendingDates = nil
	s.Editing = false
	return e.showSummary(s)
}

// askTime предлагает пресеты времени для выбранных дат
func (e *Engine) askTime(s *state.Session, notice string) transition {
	text := fmt.Sprintf(textAskTime, strings.Join(s.PendingDates, ", "))
	return transition{
		next:     state.StateSelectingTime,
		text:     withNotice(notice, text),
		keyboard: presetsKeyboard(),
	}
}

// ========== Сводка и редактирование ==========

func (e *Engine) handleSummary(ctx context.Context, s *state.Session, act Action) transition {
	switch act.Kind {
	case ActionConfirm:
		return e.confirm(ctx, s)
	case ActionEdit:
		return e.showEditMenu()
	default:
		return e.showSummary(s)
	}
}

// confirm отправляет заявку; сессия после этого завершается
func (e *Engine) confirm(ctx context.Context, s *state.Session) transition {
	s.Draft.Status = model.RequestStatusSubmitted
	result := e.submitter.Submit(ctx, s.Draft)

	text := textAccepted
	if !result.Persisted {
		text = textAcceptedDegraded
	}

	e.logger.Info("Request confirmed",
		zap.Int64("telegram_id", s.UserID),
		zap.String("application_number", s.Draft.ApplicationNumber),
		zap.Bool("persisted", result.Persisted))

	return transition{
		next: state.StateNone,
		text: fmt.Sprintf(text, s.Draft.ApplicationNumber),
	}
}

func (e *Engine) handleEditChoice(s *state.Session, act Action) transition {
	switch act.Kind {
	case ActionBackToSummary:
		return e.showSummary(s)
	case ActionEditField:
	default:
		return e.showEditMenu()
	}

	s.Editing = true
	switch act.Field {
	case FieldName:
		return e.askName()
	case FieldPurpose:
		return e.askPurpose()
	case FieldEquipment:
		return e.askEquipment()
	case FieldDates:
		s.Draft.ClearSchedule()
		s.PendingDates = nil
		return e.askDates(s, "")
	case FieldTime:
		if s.Draft.FreeformSchedule || len(s.Draft.SelectedDates) == 0 {
			s.Editing = false
			return withText(e.showEditMenu(), textTimeEditFreeform)
		}
		s.PendingDates = slices.Clone(s.Draft.SelectedDates)
		return e.askTime(s, "")
	default:
		s.Editing = false
		return e.showEditMenu()
	}
}

func (e *Engine) showSummary(s *state.Session) transition {
	return transition{
		next:     state.StateReviewingSummary,
		text:     formatting.FormatRequestSummary(s.Draft),
		keyboard: summaryKeyboard(),
	}
}

func (e *Engine) showEditMenu() transition {
	return transition{
		next:     state.StateEditingField,
		text:     textEditMenu,
		keyboard: editKeyboard(),
	}
}

func (e *Engine) askName() transition {
	return transition{next: state.StateCollectingName, text: textAskName, keyboard: cancelKeyboard()}
}

func (e *Engine) askPurpose() transition {
	return transition{next: state.StateCollectingPurpose, text: textAskPurpose, keyboard: cancelKeyboard()}
}

func (e *Engine) askEquipment() transition {
	return transition{next: state.StateCollectingEquipment, text: textAskEquipment, keyboard: cancelKeyboard()}
}

func withNotice(notice, text string) string {
	if notice == "" {
		return text
	}
	return notice + "\n\n" + text
}

func withText(t transition, notice string) transition {
	t.text = withNotice(notice, t.text)
	return t
}
