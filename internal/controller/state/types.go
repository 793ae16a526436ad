package state

import (
	"time"

	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/service"
)

// DialogState представляет, какой текстовый ввод бот ждёт от пользователя
type DialogState string

const (
	StateNone DialogState = "" // Нет активного диалога

	// Вход в портал
	StateEnteringEmail    DialogState = "entering_email"
	StateEnteringPassword DialogState = "entering_password"

	// Админ: ручной ввод времени нового слота
	StateEnteringSlotTime DialogState = "entering_slot_time"

	// Админ: поиск пользователя по имени или email
	StateEnteringUserSearch DialogState = "entering_user_search"

	// Врач: текст заметки о пациенте
	StateEnteringNote DialogState = "entering_note"
)

// ChatData хранит всё, что относится к одному чату: сессию портала и
// временные данные текущего шага
type ChatData struct {
	Workspace *service.Workspace
	Dialog    DialogState
	Email     string // введён на первом шаге входа

	// Шаг записи пациента
	Selection model.BookingSelection
	Filter    model.Period

	// Шаг управления слотами (админ)
	AdminDoctorID int64
	AdminDate     time.Time

	// Шаг управления пользователями (админ); пустая роль = все
	UserQuery string
	UserRole  model.Role

	// Шаг заметок (врач); 0 = первый пациент
	NotePatientID int64

	// Сообщение со «страницей» шага, которое редактируем при навигации
	ScreenMessageID int

	lastSeen time.Time
}

// ResetStep сбрасывает всё, что относится к текущему шагу.
// Вызывается при каждом уходе с шага.
func (d *ChatData) ResetStep() {
	d.Selection = model.BookingSelection{}
	d.Filter = model.PeriodAll
	d.AdminDoctorID = 0
	d.AdminDate = time.Time{}
	d.UserQuery = ""
	d.UserRole = model.RoleNone
	d.NotePatientID = 0
}

// idle: в чате нет ни сессии, ни недописанного ввода
func (d *ChatData) idle() bool {
	return d.Dialog == StateNone && !d.Workspace.State.Authenticated()
}
