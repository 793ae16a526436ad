package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/medislot/internal/controller/state"
	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/Freeeeeet/medislot/internal/service"
	"github.com/Freeeeeet/medislot/internal/users"
	"github.com/go-telegram/bot/models"
)

var roleIcons = map[model.Role]string{
	model.RolePatient: "🧑",
	model.RoleDoctor:  "🩺",
	model.RoleAdmin:   "🛠",
}

var userRoleTitles = map[model.Role]string{
	model.RoleNone:    "All",
	model.RolePatient: "Patients",
	model.RoleDoctor:  "Doctors",
	model.RoleAdmin:   "Admins",
}

var periodTitles = map[model.Period]string{
	model.PeriodAll:       "All",
	model.PeriodMorning:   "Morning",
	model.PeriodAfternoon: "Afternoon",
	model.PeriodEvening:   "Evening",
}

// StepScreen собирает всё, что нужно для отрисовки текущего шага
type StepScreen struct {
	View  service.View
	Lines []string
	Chat  state.ChatData

	// Только для шагов со слотами
	Doctors []model.Doctor
	Dates   []time.Time
	Context service.SlotContext
	Slots   []model.TimeSlot

	// Управление пользователями
	Users []model.User

	// Заметки врача
	Patients []model.Patient
	Patient  model.Patient
	Notes    []model.Note
}

// LoadStepScreen читает состояние сессии и данные интерактивного шага:
// слоты, пользователей или заметки
func LoadStepScreen(
	svc service.Services,
	ws *service.Workspace,
	chat state.ChatData,
	today time.Time,
) (StepScreen, error) {
	ps, bs := svc.Portal, svc.Booking
	view := ps.Snapshot(ws)
	s := StepScreen{View: view, Chat: chat}
	if !view.Authenticated {
		return s, nil
	}
	s.Lines = ps.Lines(view.Step)

	switch {
	case IsBookingStep(view):
		s.Doctors = bs.Doctors()
		s.Dates = bs.BookingDates(today)
		s.Context = service.SlotContext{DoctorID: chat.Selection.DoctorID, Date: chat.Selection.Date}
		if s.Context.DoctorID == 0 || s.Context.Date.IsZero() {
			return s, nil
		}
		slots, err := bs.Slots(ws, s.Context, chat.Filter)
		if err != nil {
			return s, err
		}
		s.Slots = slots

	case IsSlotManagementStep(view):
		s.Doctors = bs.Doctors()
		s.Dates = bs.ManagedDates()
		s.Context = AdminContext(bs, chat)
		slots, err := bs.Slots(ws, s.Context, model.PeriodAll)
		if err != nil {
			return s, err
		}
		s.Slots = slots

	case IsUserManagementStep(view):
		list, err := svc.Users.Users(ws, UserFilter(chat))
		if err != nil {
			return s, err
		}
		s.Users = list

	case IsNotesStep(view):
		s.Patients = svc.Notes.Patients()
		id := NotesPatient(svc.Notes, chat)
		if id == 0 {
			return s, nil
		}
		patient, err := svc.Notes.Patient(id)
		if err != nil {
			return s, err
		}
		list, err := svc.Notes.Notes(ws, id)
		if err != nil {
			return s, err
		}
		s.Patient, s.Notes = patient, list
	}
	return s, nil
}

// IsBookingStep: шаг записи пациента
func IsBookingStep(v service.View) bool {
	return v.At(model.RolePatient, portal.KeyBookAppointment)
}

// IsSlotManagementStep: шаг управления слотами админа
func IsSlotManagementStep(v service.View) bool {
	return v.At(model.RoleAdmin, portal.KeyManageSlots)
}

// IsUserManagementStep: шаг управления пользователями
func IsUserManagementStep(v service.View) bool {
	return v.At(model.RoleAdmin, portal.KeyManageUsers)
}

// IsNotesStep: шаг заметок врача
func IsNotesStep(v service.View) bool {
	return v.At(model.RoleDoctor, portal.KeyNotes)
}

// RequireStep пропускает действие только на шаге key роли role.
// Кнопки со старых сообщений после перехода на другой шаг отклоняются.
func RequireStep(v service.View, role model.Role, key string) error {
	if !v.At(role, key) {
		return fmt.Errorf("%w: not on the %s %s step", service.ErrForbidden, role, key)
	}
	return nil
}

// UserFilter собирает фильтр справочника из состояния поиска чата
func UserFilter(chat state.ChatData) users.Filter {
	return users.Filter{Query: chat.UserQuery, Role: chat.UserRole}
}

// NotesPatient возвращает пациента, чьи заметки открыты.
// Пока врач не выбрал пациента, берётся первый; 0, если пациентов нет.
func NotesPatient(ns *service.NoteService, chat state.ChatData) int64 {
	if chat.NotePatientID != 0 {
		return chat.NotePatientID
	}
	if patients := ns.Patients(); len(patients) > 0 {
		return patients[0].ID
	}
	return 0
}

// AdminContext возвращает врача и дату, которые редактирует админ.
// Пока ничего не выбрано, берутся первый врач и первая дата.
func AdminContext(bs *service.BookingService, chat state.ChatData) service.SlotContext {
	sc := service.SlotContext{DoctorID: chat.AdminDoctorID, Date: chat.AdminDate}
	if sc.DoctorID == 0 {
		if doctors := bs.Doctors(); len(doctors) > 0 {
			sc.DoctorID = doctors[0].ID
		}
	}
	if sc.Date.IsZero() {
		if dates := bs.ManagedDates(); len(dates) > 0 {
			sc.Date = dates[0]
		}
	}
	return sc
}

// BuildRoleScreen формирует экран выбора роли
func BuildRoleScreen() (string, *models.InlineKeyboardMarkup) {
	text := "🏥 <b>MediSlot</b>\n\n" +
		"Demo healthcare portal.\n" +
		"Choose how you want to sign in:"

	kb := keyboard.NewBuilder()
	for _, r := range model.Roles {
		kb.Row(keyboard.Button(roleIcons[r]+" "+r.Title(), keyboard.RolePrefix+string(r)))
	}
	return text, kb.Build()
}

// BuildLoginPrompt просит ввести email для выбранной роли
func BuildLoginPrompt(role model.Role) string {
	return fmt.Sprintf(
		"%s <b>%s sign in</b>\n\n"+
			"📧 Enter your email:\n\n"+
			"<i>Any non-empty email and password work. /cancel to go back.</i>",
		roleIcons[role], role.Title(),
	)
}

// BuildCompletedScreen показывается после завершения сценария
func BuildCompletedScreen(role model.Role) string {
	return fmt.Sprintf(
		"🏁 <b>All done!</b>\n\n"+
			"You completed the %s workflow and have been signed out.\n\n"+
			"Use /start to begin again.",
		role.Title(),
	)
}

// BookingSummary собирает текст alert после подтверждения записи
func BookingSummary(b model.Booking) string {
	return fmt.Sprintf("✅ Appointment booked\n%s\n%s at %s",
		b.Doctor.Name, formatting.FormatDate(b.Date), b.Slot.Time)
}

// BuildStepScreen формирует "страницу" текущего шага
func BuildStepScreen(s StepScreen) (string, *models.InlineKeyboardMarkup) {
	v := s.View
	if !v.Authenticated {
		return BuildRoleScreen()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>%s Portal</b> · %s\n",
		roleIcons[v.Role], v.Role.Title(), formatting.Sanitize(v.Session.Name))
	sb.WriteString(formatting.Progress(v.Steps, v.Step.Index) + "\n")
	fmt.Fprintf(&sb, "%s: <b>%s</b>\n", formatting.StepCounter(v.Step.Index, len(v.Steps)), v.Step.Label)

	if len(s.Lines) > 0 {
		sb.WriteString("\n")
		for _, line := range s.Lines {
			sb.WriteString("• " + formatting.Sanitize(line) + "\n")
		}
	}

	kb := keyboard.NewBuilder()
	switch {
	case IsBookingStep(v):
		writeBookingSection(&sb, kb, s)
	case IsSlotManagementStep(v):
		writeSlotsSection(&sb, kb, s)
	case IsUserManagementStep(v):
		writeUsersSection(&sb, kb, s)
	case IsNotesStep(v):
		writeNotesSection(&sb, kb, s)
	}

	prevOK := v.Step.Index > 1
	next := v.Step
	if v.Step.Index < len(v.Steps) {
		next = v.Steps[v.Step.Index]
	}
	kb.AddNavigation(prevOK, next.Label, next.Terminal)

	return sb.String(), kb.Build()
}

func writeBookingSection(sb *strings.Builder, kb *keyboard.Builder, s StepScreen) {
	sel := s.Chat.Selection

	date := "—"
	if !sel.Date.IsZero() {
		date = formatting.FormatDate(sel.Date)
	}
	sb.WriteString("\n📅 Date: " + date + "\n")

	doctor := "—"
	for _, d := range s.Doctors {
		if d.ID == sel.DoctorID {
			doctor = fmt.Sprintf("%s (%s)", d.Name, d.Specialty)
		}
	}
	sb.WriteString("👨‍⚕️ Doctor: " + doctor + "\n")

	slotLabel := "—"
	for _, slot := range s.Slots {
		if slot.ID == sel.SlotID {
			slotLabel = slot.Time
		}
	}
	sb.WriteString("🕐 Time: " + slotLabel + "\n")

	dates := make([]models.InlineKeyboardButton, 0, len(s.Dates))
	for _, d := range s.Dates {
		dates = append(dates, keyboard.Button(
			mark(formatting.SameDay(d, sel.Date), "• ")+d.Format("Jan 2"),
			keyboard.BookDatePrefix+formatting.FormatCallbackDate(d)))
	}
	kb.Grid(dates, 4)

	doctors := make([]models.InlineKeyboardButton, 0, len(s.Doctors))
	for _, d := range s.Doctors {
		doctors = append(doctors, keyboard.Button(
			mark(d.ID == sel.DoctorID, "✅ ")+d.Name,
			fmt.Sprintf("%s%d", keyboard.BookDoctorPrefix, d.ID)))
	}
	kb.Grid(doctors, 2)

	if sel.Date.IsZero() || sel.DoctorID == 0 {
		sb.WriteString("\n<i>Pick a date and a doctor to see available times.</i>\n")
		return
	}

	periods := make([]models.InlineKeyboardButton, 0, len(model.Periods))
	for _, p := range model.Periods {
		periods = append(periods, keyboard.Button(
			mark(p == s.Chat.Filter, "• ")+periodTitles[p],
			keyboard.BookPeriodPrefix+string(p)))
	}
	kb.Row(periods...)

	if len(s.Slots) == 0 {
		sb.WriteString("\n<i>No slots in this period.</i>\n")
	}

	slots := make([]models.InlineKeyboardButton, 0, len(s.Slots))
	for _, slot := range s.Slots {
		label := slot.Time
		switch {
		case slot.ID == sel.SlotID:
			label = "✅ " + label
		case !slot.Available:
			label = "✖ " + label
		}
		slots = append(slots, keyboard.Button(label, fmt.Sprintf("%s%d", keyboard.BookSlotPrefix, slot.ID)))
	}
	kb.Grid(slots, 3)

	if sel.Complete() {
		kb.Row(keyboard.Button("✅ Confirm Appointment", keyboard.BookConfirm))
	}
}

func writeSlotsSection(sb *strings.Builder, kb *keyboard.Builder, s StepScreen) {
	sc := s.Context

	doctor := "—"
	for _, d := range s.Doctors {
		if d.ID == sc.DoctorID {
			doctor = d.Name
		}
	}
	available := 0
	for _, slot := range s.Slots {
		if slot.Available {
			available++
		}
	}
	fmt.Fprintf(sb, "\n👨‍⚕️ %s · 📅 %s\n%d slots, %d available\n",
		doctor, formatting.FormatDate(sc.Date), len(s.Slots), available)

	dates := make([]models.InlineKeyboardButton, 0, len(s.Dates))
	for _, d := range s.Dates {
		dates = append(dates, keyboard.Button(
			mark(formatting.SameDay(d, sc.Date), "• ")+d.Format("Jan 2"),
			keyboard.SlotsDatePrefix+formatting.FormatCallbackDate(d)))
	}
	kb.Grid(dates, 5)

	doctors := make([]models.InlineKeyboardButton, 0, len(s.Doctors))
	for _, d := range s.Doctors {
		doctors = append(doctors, keyboard.Button(
			mark(d.ID == sc.DoctorID, "✅ ")+d.Name,
			fmt.Sprintf("%s%d", keyboard.SlotsDoctorPrefix, d.ID)))
	}
	kb.Grid(doctors, 2)

	for _, slot := range s.Slots {
		status := "🟢"
		if !slot.Available {
			status = "🔴"
		}
		kb.Row(
			keyboard.Button(status+" "+slot.Time, fmt.Sprintf("%s%d", keyboard.SlotsTogglePrefix, slot.ID)),
			keyboard.Button("🗑", fmt.Sprintf("%s%d", keyboard.SlotsRemovePrefix, slot.ID)),
		)
	}

	kb.Row(
		keyboard.Button("➕ Add slot", keyboard.SlotsAdd),
		keyboard.Button("✏️ Custom time", keyboard.SlotsAddCustom),
	)
}

func writeUsersSection(sb *strings.Builder, kb *keyboard.Builder, s StepScreen) {
	chat := s.Chat

	active := 0
	for _, u := range s.Users {
		if u.Active() {
			active++
		}
	}
	fmt.Fprintf(sb, "\n👥 %d users, %d active", len(s.Users), active)
	if chat.UserQuery != "" {
		fmt.Fprintf(sb, " · 🔍 “%s”", formatting.Sanitize(chat.UserQuery))
	}
	sb.WriteString("\n")

	if len(s.Users) == 0 {
		sb.WriteString("\n<i>No users match.</i>\n")
	}
	for _, u := range s.Users {
		fmt.Fprintf(sb, "%s %s · %s · %s\n",
			userIcon(u), formatting.Sanitize(u.Name), u.Role, formatting.Sanitize(u.Email))
	}

	roles := make([]models.InlineKeyboardButton, 0, len(model.Roles)+1)
	for _, r := range append([]model.Role{model.RoleNone}, model.Roles...) {
		data := string(r)
		if r == model.RoleNone {
			data = keyboard.UsersRoleAll
		}
		roles = append(roles, keyboard.Button(
			mark(r == chat.UserRole, "• ")+userRoleTitles[r],
			keyboard.UsersRolePrefix+data))
	}
	kb.Row(roles...)

	toggles := make([]models.InlineKeyboardButton, 0, len(s.Users))
	for _, u := range s.Users {
		toggles = append(toggles, keyboard.Button(
			userIcon(u)+" "+u.Name,
			fmt.Sprintf("%s%d", keyboard.UsersTogglePrefix, u.ID)))
	}
	kb.Grid(toggles, 2)

	search := []models.InlineKeyboardButton{keyboard.Button("🔍 Search", keyboard.UsersSearch)}
	if chat.UserQuery != "" {
		search = append(search, keyboard.Button("✖ Clear search", keyboard.UsersClearSearch))
	}
	kb.Row(search...)

	if len(s.Users) > 0 {
		sb.WriteString("\n<i>Tap a user to activate or deactivate.</i>\n")
	}
}

func userIcon(u model.User) string {
	if u.Active() {
		return "🟢"
	}
	return "⚪"
}

func writeNotesSection(sb *strings.Builder, kb *keyboard.Builder, s StepScreen) {
	p := s.Patient
	if p.ID != 0 {
		fmt.Fprintf(sb, "\n👤 <b>%s</b>, %d · last visit %s\n",
			formatting.Sanitize(p.Name), p.Age, p.LastVisit)

		if len(s.Notes) == 0 {
			sb.WriteString("<i>No notes yet.</i>\n")
		} else {
			fmt.Fprintf(sb, "📝 Notes (%d):\n", len(s.Notes))
		}
		for _, n := range s.Notes {
			fmt.Fprintf(sb, "🕐 %s · %s\n",
				formatting.FormatDateTime(n.CreatedAt), formatting.Sanitize(n.Body))
		}
	}

	patients := make([]models.InlineKeyboardButton, 0, len(s.Patients))
	for _, pt := range s.Patients {
		patients = append(patients, keyboard.Button(
			mark(pt.ID == p.ID, "✅ ")+pt.Name,
			fmt.Sprintf("%s%d", keyboard.NotesPatientPrefix, pt.ID)))
	}
	kb.Grid(patients, 2)

	if p.ID != 0 {
		kb.Row(keyboard.Button("📝 Add note", keyboard.NotesAdd))
	}
}

func mark(on bool, prefix string) string {
	if on {
		return prefix
	}
	return ""
}
