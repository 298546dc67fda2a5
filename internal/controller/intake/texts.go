package intake

// Ограничения на поля заявки (в символах)
const (
	NameMinLength = 2
	NameMaxLength = 100

	PurposeMinLength = 2
	PurposeMaxLength = 200

	EquipmentMinLength = 2
	EquipmentMaxLength = 1000

	// Свободный ввод дат и времени одной строкой
	FreeformScheduleMinLength = 5
	FreeformScheduleMaxLength = 300
)

// EquipmentCatalog список доступного оборудования
const EquipmentCatalog = `📹 Камеры:
- Sony FX6 (2 шт.)
- Canon C70 (3 шт.)

🎤 Аудио оборудование:
- Rode Wireless Go II (4 шт.)
- Zoom H6 Recorder (2 шт.)

💡 Свет:
- Aputure 300D (2 шт.)
- Godox SL60W (3 шт.)

🎬 Стабилизация:
- DJI Ronin RS2 (2 шт.)
- Триподы Manfrotto (5 шт.)`

const (
	textWelcome = "Добро пожаловать в систему заявок на съемочное оборудование! 🎬\n\n" +
		"Заявка #%s\n\n" +
		"Шаг 1 из 5: Введите ваше ФИО:\n\n" +
		"Для отмены используйте /cancel"

	textAskName      = "Введите ваше ФИО:"
	textAskPurpose   = "Шаг 2 из 5: Укажите вашу структурную единицу или название проекта/мероприятия:"
	textAskEquipment = "Шаг 3 из 5: Введите список необходимого оборудования:\n\n" + EquipmentCatalog

	textAskDates = "Шаг 4 из 5: Выберите одну или несколько дат и нажмите «" + LabelDatesDone + "».\n\n" +
		"Если нужны другие даты, напишите их текстом вместе со временем.\n" +
		"Пример: 15.12.2024 10:00 - 16.12.2024 18:00"
	textAskDatesNoCandidates = "Шаг 4 из 5: Напишите даты и время текстом.\n\n" +
		"Пример: 15.12.2024 10:00 - 16.12.2024 18:00"
	textSelectedDates = "\n\nВыбрано: %s"

	textAskTime = "Шаг 5 из 5: Выберите время для дат: %s\n\n" +
		"Или напишите свой промежуток, например: 10:00-16:30"

	textEditMenu = "Выберите что хотите отредактировать:"

	textAccepted         = "✅ Ваша заявка #%s принята! С вами скоро свяжутся."
	textAcceptedDegraded = "✅ Ваша заявка #%s принята! С вами скоро свяжутся.\n\n" +
		"⚠️ Заявку не удалось сохранить в журнал, администраторы внесут её вручную."

	textCancelled       = "Диалог прерван. Для новой заявки отправьте /start"
	textNothingToCancel = "❌ Нет активной заявки. Для новой заявки отправьте /start"
	textRestartRequired = "❌ Сессия не найдена или устарела. Начните заново: /start"
	textUnexpectedError = "❌ Произошла ошибка. Заявка сброшена, начните заново: /start"

	textHelp = "📚 Справка:\n\n" +
		"/start - Новая заявка на оборудование\n" +
		"/cancel - Прервать оформление заявки\n" +
		"/help - Показать эту справку"

	textFieldTooShort    = "❌ Слишком коротко. Минимум %d символа.\n\nПопробуйте ещё раз:"
	textFieldTooLong     = "❌ Слишком длинно. Максимум %d символов.\n\nПопробуйте ещё раз:"
	textNoDatesSelected  = "❌ Выберите хотя бы одну дату."
	textDateUnavailable  = "❌ Дата %s недоступна для выбора."
	textDatesCleared     = "🧹 Выбор очищен."
	textFreeformInvalid  = "❌ Не удалось разобрать даты. Укажите даты и время подробнее."
	textTimeInvalid      = "❌ Неверный промежуток времени. Формат: 10:00-16:30, конец позже начала."
	textTimeEditFreeform = "❌ Время введено вместе с датами текстом. Отредактируйте даты."
	textTimeTooSoon      = "❌ Слишком рано: заявку нужно подать минимум за %d ч. до начала. Выберите время позже или другие даты."
)
