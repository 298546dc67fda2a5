package intake

import (
	"regexp"
	"strings"

	"github.com/motomotoph/mc1lovecamerabot/internal/service"
)

// ActionKind вид входящего ответа пользователя
type ActionKind int

const (
	ActionText ActionKind = iota // Произвольный текст
	ActionStart
	ActionHelp
	ActionCancel
	ActionUnknownCommand

	// Сводка
	ActionConfirm
	ActionEdit
	ActionBackToSummary
	ActionEditField

	// Выбор дат и времени
	ActionPickDate
	ActionClearDates
	ActionDatesDone
	ActionTimePreset
	ActionBackToDates
)

// Field поле заявки, доступное для редактирования
type Field int

const (
	FieldName Field = iota + 1
	FieldPurpose
	FieldEquipment
	FieldDates
	FieldTime
)

// Action результат классификации ответа. Payload заполнен только для своего вида.
type Action struct {
	Kind   ActionKind
	Text   string // ActionText: ответ без пробелов по краям
	Field  Field  // ActionEditField
	Date   string // ActionPickDate: DD.MM.YYYY
	Preset string // ActionTimePreset: ключ пресета
}

// Подписи кнопок
const (
	LabelConfirm       = "✅ Подтвердить"
	LabelEdit          = "✏️ Редактировать"
	LabelCancel        = "❌ Отменить"
	LabelBackToSummary = "🔙 Назад к сводке"

	LabelEditName      = "👤 ФИО"
	LabelEditPurpose   = "🏢 Структурная единица"
	LabelEditEquipment = "📹 Оборудование"
	LabelEditDates     = "📅 Даты"
	LabelEditTime      = "⏰ Время"

	LabelDatesDone   = "✅ Готово"
	LabelClearDates  = "🧹 Очистить выбор"
	LabelBackToDates = "⬅️ К датам"

	// Префикс уже выбранной даты на кнопке
	selectedMark = "✅ "
)

var controlLabels = map[string]Action{
	LabelConfirm:       {Kind: ActionConfirm},
	LabelEdit:          {Kind: ActionEdit},
	LabelCancel:        {Kind: ActionCancel},
	LabelBackToSummary: {Kind: ActionBackToSummary},
	LabelEditName:      {Kind: ActionEditField, Field: FieldName},
	LabelEditPurpose:   {Kind: ActionEditField, Field: FieldPurpose},
	LabelEditEquipment: {Kind: ActionEditField, Field: FieldEquipment},
	LabelEditDates:     {Kind: ActionEditField, Field: FieldDates},
	LabelEditTime:      {Kind: ActionEditField, Field: FieldTime},
	LabelDatesDone:     {Kind: ActionDatesDone},
	LabelClearDates:    {Kind: ActionClearDates},
	LabelBackToDates:   {Kind: ActionBackToDates},
}

var commands = map[string]ActionKind{
	"start":  ActionStart,
	"help":   ActionHelp,
	"cancel": ActionCancel,
}

// Кнопка даты: "18.10.2026 Вс" или "✅ 18.10.2026 Вс"
var dateButtonRe = regexp.MustCompile(`^(?:✅\s*)?(\d{2}\.\d{2}\.\d{4})(?:\s+\p{L}{2})?$`)

func init() {
	for _, p := range service.TimePresets {
		controlLabels[PresetLabel(p)] = Action{Kind: ActionTimePreset, Preset: p.Key}
	}
}

// PresetLabel подпись кнопки пресета времени
func PresetLabel(p service.TimePreset) string {
	return p.Title + " " + p.Range
}

// Classify превращает текст ответа в действие. Всё нераспознанное считается произвольным текстом.
func Classify(text string) Action {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "/") {
		name := strings.TrimPrefix(strings.Fields(text + " ")[0], "/")
		if at := strings.Index(name, "@"); at >= 0 {
			name = name[:at]
		}
		if kind, ok := commands[strings.ToLower(name)]; ok {
			return Action{Kind: kind}
		}
		return Action{Kind: ActionUnknownCommand, Text: text}
	}

	if a, ok := controlLabels[text]; ok {
		return a
	}

	if m := dateButtonRe.FindStringSubmatch(text); m != nil {
		return Action{Kind: ActionPickDate, Date: m[1]}
	}

	return Action{Kind: ActionText, Text: text}
}
