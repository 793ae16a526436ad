package keyboard

import (
	"github.com/go-telegram/bot/models"
)

// Callback data для навигации по шагам портала
const (
	CallbackNext   = "nav:next"
	CallbackBack   = "nav:back"
	CallbackLogout = "nav:logout"
	CallbackNoop   = "noop"
)

// BackButton создаёт кнопку "Назад"
func BackButton() models.InlineKeyboardButton {
	return Button("⬅️ Back", CallbackBack)
}

// NextButton создаёт кнопку перехода к следующему шагу
func NextButton(nextLabel string) models.InlineKeyboardButton {
	return Button("Next: "+nextLabel+" ➡️", CallbackNext)
}

// FinishButton завершает сценарий роли
func FinishButton() models.InlineKeyboardButton {
	return Button("🏁 Finish", CallbackNext)
}

// LogoutButton создаёт кнопку выхода
func LogoutButton() models.InlineKeyboardButton {
	return Button("🚪 Logout", CallbackLogout)
}

// Label создаёт некликабельную кнопку-подпись
func Label(text string) models.InlineKeyboardButton {
	return Button(text, CallbackNoop)
}

// AddNavigation добавляет ряд Back/Next и ряд Logout.
// prevOK и nextLabel описывают соседние шаги; last означает, что следующий
// шаг терминальный.
func (b *Builder) AddNavigation(prevOK bool, nextLabel string, last bool) *Builder {
	var row []models.InlineKeyboardButton
	if prevOK {
		row = append(row, BackButton())
	}
	if last {
		row = append(row, FinishButton())
	} else {
		row = append(row, NextButton(nextLabel))
	}
	b.Row(row...)
	return b.Row(LogoutButton())
}
