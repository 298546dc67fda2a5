package intake

import (
	"testing"

	"github.com/motomotoph/mc1lovecamerabot/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Action
	}{
		{"start", "/start", Action{Kind: ActionStart}},
		{"start with bot name", "/start@mc1lovecamerabot", Action{Kind: ActionStart}},
		{"help upper case", "/Help", Action{Kind: ActionHelp}},
		{"cancel command", "/cancel", Action{Kind: ActionCancel}},
		{"cancel button", LabelCancel, Action{Kind: ActionCancel}},
		{"unknown command", "/settings", Action{Kind: ActionUnknownCommand, Text: "/settings"}},
		{"confirm", LabelConfirm, Action{Kind: ActionConfirm}},
		{"edit dates", LabelEditDates, Action{Kind: ActionEditField, Field: FieldDates}},
		{"dates done", LabelDatesDone, Action{Kind: ActionDatesDone}},
		{"date button", "18.10.2026 Вс", Action{Kind: ActionPickDate, Date: "18.10.2026"}},
		{"selected date button", "✅ 18.10.2026 Вс", Action{Kind: ActionPickDate, Date: "18.10.2026"}},
		{"bare date", "18.10.2026", Action{Kind: ActionPickDate, Date: "18.10.2026"}},
		{"date with time is text", "18.10.2026 10:00-12:00", Action{Kind: ActionText, Text: "18.10.2026 10:00-12:00"}},
		{"preset", PresetLabel(service.TimePresets[1]), Action{Kind: ActionTimePreset, Preset: "day"}},
		{"text trimmed", "  Ann Lee \n", Action{Kind: ActionText, Text: "Ann Lee"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestControlLabelsAreUnique(t *testing.T) {
	// Пресеты добавляются в init и не должны перетирать другие кнопки
	assert.Len(t, controlLabels, 12+len(service.TimePresets))
}
