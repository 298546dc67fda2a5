package keyboard

import "github.com/go-telegram/bot/models"

// Builder упрощает создание reply клавиатур
type Builder struct {
	rows [][]models.KeyboardButton
}

// NewBuilder создаёт новый builder клавиатуры
func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.KeyboardButton, 0),
	}
}

// Row добавляет ряд кнопок с подписями
func (b *Builder) Row(labels ...string) *Builder {
	if len(labels) == 0 {
		return b
	}
	row := make([]models.KeyboardButton, 0, len(labels))
	for _, label := range labels {
		row = append(row, models.KeyboardButton{Text: label})
	}
	b.rows = append(b.rows, row)
	return b
}

// Rows добавляет несколько рядов
func (b *Builder) Rows(rows [][]string) *Builder {
	for _, r := range rows {
		b.Row(r...)
	}
	return b
}

// Build создаёт финальную клавиатуру
func (b *Builder) Build() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard:       b.rows,
		ResizeKeyboard: true,
	}
}

// Remove убирает клавиатуру у пользователя
func Remove() *models.ReplyKeyboardRemove {
	return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
}

// Markup клавиатура для ответа: пустой набор рядов убирает клавиатуру
func Markup(rows [][]string) models.ReplyMarkup {
	if len(rows) == 0 {
		return Remove()
	}
	return NewBuilder().Rows(rows).Build()
}
