package formatting

import (
	"time"
)

// CallbackDateLayout - формат даты в callback data
const CallbackDateLayout = "2006-01-02"

// FormatDate форматирует дату для кнопок и заголовков
func FormatDate(t time.Time) string {
	return t.Format("Mon, Jan 2")
}

// FormatDateLong форматирует дату для подтверждения записи
func FormatDateLong(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// FormatDateTime форматирует время сохранения заметки
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 2, 15:04")
}

// FormatCallbackDate кодирует дату для callback data
func FormatCallbackDate(t time.Time) string {
	return t.Format(CallbackDateLayout)
}

// ParseCallbackDate декодирует дату из callback data
func ParseCallbackDate(s string) (time.Time, error) {
	return time.Parse(CallbackDateLayout, s)
}

// SameDay сравнивает только календарную дату
func SameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
