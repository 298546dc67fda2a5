package formatting

import (
	"fmt"
	"strings"

	"github.com/motomotoph/mc1lovecamerabot/internal/model"
)

// FormatSchedule форматирует расписание заявки списком
func FormatSchedule(r *model.BookingRequest) string {
	if len(r.Schedule) == 0 {
		return "—"
	}
	if len(r.Schedule) == 1 {
		return r.Schedule[0]
	}

	var sb strings.Builder
	for _, line := range r.Schedule {
		sb.WriteString("\n• ")
		sb.WriteString(line)
	}
	return sb.String()
}

// FormatRequestSummary форматирует сводку заявки для пользователя
func FormatRequestSummary(r *model.BookingRequest) string {
	return fmt.Sprintf(
		"📋 Сводка заявки #%s\n\n"+
			"👤 ФИО: %s\n"+
			"🏢 Структурная единица/Проект: %s\n"+
			"📹 Оборудование: %s\n"+
			"📅 Даты и время: %s\n"+
			"⏰ Создано: %s",
		r.ApplicationNumber,
		r.RequesterName,
		r.PurposeOrUnit,
		r.EquipmentList,
		FormatSchedule(r),
		r.CreatedAt.Format(model.CreatedAtLayout),
	)
}

// FormatAdminNotification форматирует уведомление администраторам о новой заявке
func FormatAdminNotification(r *model.BookingRequest, persisted bool) string {
	text := fmt.Sprintf(
		"🆕 Новая заявка #%s\n\n"+
			"👤 ФИО: %s\n"+
			"🏢 Структурная единица/Проект: %s\n"+
			"📹 Оборудование: %s\n"+
			"📅 Даты и время: %s\n"+
			"⏰ Создано: %s\n\n"+
			"💬 Контакт: %s\n"+
			"🔗 %s",
		r.ApplicationNumber,
		r.RequesterName,
		r.PurposeOrUnit,
		r.EquipmentList,
		FormatSchedule(r),
		r.CreatedAt.Format(model.CreatedAtLayout),
		formatHandle(r.RequesterHandle),
		r.RequesterProfileLink,
	)

	if !persisted {
		text += "\n\n⚠️ Заявку не удалось сохранить в журнал. Внесите её вручную."
	}
	return text
}

func formatHandle(handle string) string {
	if handle == "" || handle == model.NoHandle {
		return model.NoHandle
	}
	return "@" + handle
}
