package render

// Board texts shown when data is missing.
const (
	NoNotifications     = "Нет новых уведомлений."
	UntitledTitle       = "Без заголовка"
	EmptyDescription    = "Без содержания"
	RoutineUnavailable  = "Распорядок дня недоступен."
	RoutineHeading      = "Распорядок дня:"
	TimeNotSpecified    = "Время не указано"
	ScheduleLoadFailed  = "Не удалось загрузить расписание."
	ScheduleMissing     = "Расписание на сегодня отсутствует."
	ScheduleHeadingFmt  = "Расписание на %s"
	ClassNotSpecified   = "Не указано"
	LessonUnnamed       = "Без названия"
	ClassroomUnassigned = "Не указано"
	WeatherLoadFailed   = "Не удалось загрузить данные о погоде."
)
