package model

import (
	"strings"
	"time"
)

type RequestStatus string

const (
	RequestStatusDraft     RequestStatus = "draft"     // Заполняется пользователем
	RequestStatusSubmitted RequestStatus = "submitted" // Подтверждена и отправлена
)

// CreatedAtLayout формат даты создания в журнале заявок
const CreatedAtLayout = "2006-01-02 15:04:05"

// NoHandle подставляется когда у пользователя нет username
const NoHandle = "Не указан"

// ScheduleSeparator разделитель строк расписания в одной ячейке журнала
const ScheduleSeparator = "; "

// RecordColumns фиксированный порядок колонок журнала заявок
var RecordColumns = []string{
	"Номер заявки",
	"Создано",
	"ФИО",
	"Структурная единица/Проект",
	"Оборудование",
	"Даты и время",
	"Username",
	"Ссылка на профиль",
}

// BookingRequest заявка на съёмочное оборудование
type BookingRequest struct {
	ApplicationNumber    string        `json:"application_number"`
	RequesterName        string        `json:"requester_name"`
	PurposeOrUnit        string        `json:"purpose_or_unit"`
	EquipmentList        string        `json:"equipment_list"`
	SelectedDates        []string      `json:"selected_dates"`    // DD.MM.YYYY в порядке выбора
	TimeRange            string        `json:"time_range"`        // HH:MM-HH:MM для всех дат
	Schedule             []string      `json:"schedule"`          // Итоговые строки "дата время"
	FreeformSchedule     bool          `json:"freeform_schedule"` // Даты введены одной строкой вручную
	RequesterHandle      string        `json:"requester_handle"`
	RequesterProfileLink string        `json:"requester_profile_link"`
	CreatedAt            time.Time     `json:"created_at"`
	Status               RequestStatus `json:"status"`
}

// HasSchedule проверяет что даты выбраны и время применено
func (r *BookingRequest) HasSchedule() bool {
	return len(r.SelectedDates) > 0 && len(r.Schedule) > 0
}

// ClearSchedule сбрасывает выбранные даты и время
func (r *BookingRequest) ClearSchedule() {
	r.SelectedDates = nil
	r.TimeRange = ""
	r.Schedule = nil
	r.FreeformSchedule = false
}

// Row возвращает строку журнала в порядке RecordColumns
func (r *BookingRequest) Row() []string {
	return []string{
		r.ApplicationNumber,
		r.CreatedAt.Format(CreatedAtLayout),
		r.RequesterName,
		r.PurposeOrUnit,
		r.EquipmentList,
		strings.Join(r.Schedule, ScheduleSeparator),
		r.RequesterHandle,
		r.RequesterProfileLink,
	}
}
