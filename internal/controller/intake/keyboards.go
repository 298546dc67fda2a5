package intake

import (
	"slices"

	"github.com/motomotoph/mc1lovecamerabot/internal/service"
)

// Кнопок в ряду для дат и пресетов
const buttonsPerRow = 2

func cancelKeyboard() [][]string {
	return [][]string{{LabelCancel}}
}

func summaryKeyboard() [][]string {
	return [][]string{
		{LabelConfirm, LabelEdit},
		{LabelCancel},
	}
}

func editKeyboard() [][]string {
	return [][]string{
		{LabelEditName, LabelEditPurpose},
		{LabelEditEquipment, LabelEditDates},
		{LabelEditTime},
		{LabelBackToSummary},
	}
}

// datesKeyboard кнопки дат; выбранные помечены галочкой
func datesKeyboard(candidates []service.CandidateDate, selected []string) [][]string {
	labels := make([]string, 0, len(candidates))
	for _, c := range candidates {
		label := c.Label
		if slices.Contains(selected, c.Token) {
			label = selectedMark + label
		}
		labels = append(labels, label)
	}

	rows := chunk(labels, buttonsPerRow)
	rows = append(rows,
		[]string{LabelClearDates, LabelDatesDone},
		[]string{LabelCancel},
	)
	return rows
}

func presetsKeyboard() [][]string {
	labels := make([]string, 0, len(service.TimePresets))
	for _, p := range service.TimePresets {
		labels = append(labels, PresetLabel(p))
	}

	rows := chunk(labels, buttonsPerRow)
	rows = append(rows,
		[]string{LabelBackToDates},
		[]string{LabelCancel},
	)
	return rows
}

func chunk(labels []string, size int) [][]string {
	var rows [][]string
	for c := range slices.Chunk(labels, size) {
		rows = append(rows, c)
	}
	return rows
}
