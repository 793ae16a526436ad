// Package tui is the terminal presentation of the portal. One App owns one
// workspace; it only reads portal state and issues transition requests.
package tui

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/notes"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/Freeeeeet/medislot/internal/service"
	"github.com/Freeeeeet/medislot/internal/users"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// screen is which page the app shows
type screen int

const (
	screenRole      screen = iota // role picker
	screenLogin                   // email + password
	screenSigningIn               // waiting for the sign-in delay
	screenStep                    // a workflow step
	screenDone                    // after the terminal step
)

// inputMode is what the step's text field is collecting
type inputMode int

const (
	inputNone inputMode = iota
	inputUserSearch
	inputNote
)

// userRoleFilters is the cycle of the admin directory's role filter;
// RoleNone shows everyone.
var userRoleFilters = []model.Role{model.RoleNone, model.RolePatient, model.RoleDoctor, model.RoleAdmin}

// signInDoneMsg carries the result of the blocking sign-in.
type signInDoneMsg struct {
	session model.Session
	err     error
}

// App is the bubbletea model.
type App struct {
	portal  *service.PortalService
	booking *service.BookingService
	users   *service.UserService
	notes   *service.NoteService
	ws      *service.Workspace
	logger  *zap.Logger
	now     func() time.Time

	screen     screen
	roleCursor int
	email      textinput.Model
	password   textinput.Model
	doneRole   model.Role

	// booking step
	selection model.BookingSelection
	filter    model.Period

	// shared by both slot steps; -1 means nothing picked yet
	dateIdx   int
	doctorIdx int
	cursor    int

	// admin users step
	userQuery string
	userRole  model.Role

	// doctor notes step
	patientIdx int

	input     textinput.Model
	inputMode inputMode

	status string
	err    error

	width  int
	height int
}

// Option customizes App construction for tests.
type Option func(*App)

// WithClock sets "today" for the patient date strip.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// NewApp creates an App with a fresh, signed-out workspace.
func NewApp(svc service.Services, logger *zap.Logger, opts ...Option) *App {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	a := &App{
		portal:   svc.Portal,
		booking:  svc.Booking,
		users:    svc.Users,
		notes:    svc.Notes,
		ws:       svc.Portal.NewWorkspace(),
		logger:   logger,
		now:      time.Now,
		screen:   screenRole,
		email:    email,
		password: password,
		input:    textinput.New(),
	}
	a.resetStepState()
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case signInDoneMsg:
		return a, a.handleSignInDone(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.status = ""
		a.err = nil

		switch a.screen {
		case screenRole:
			return a, a.updateRole(msg)
		case screenLogin:
			return a, a.updateLogin(msg)
		case screenSigningIn:
			return a, nil // input is ignored until sign-in completes
		case screenStep:
			return a, a.updateStep(msg)
		case screenDone:
			return a, a.updateDone(msg)
		}
	}
	return a, nil
}

func (a *App) updateRole(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		a.roleCursor = (a.roleCursor + len(model.Roles) - 1) % len(model.Roles)
	case "down", "j":
		a.roleCursor = (a.roleCursor + 1) % len(model.Roles)
	case "enter":
		role := model.Roles[a.roleCursor]
		if err := a.portal.SelectRole(a.ws, role); err != nil {
			a.err = err
			return nil
		}
		a.email.SetValue("")
		a.password.SetValue("")
		a.password.Blur()
		a.screen = screenLogin
		return a.email.Focus()
	}
	return nil
}

func (a *App) updateLogin(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		// sign-in not started: drop the chosen role
		a.portal.SignOut(a.ws)
		a.screen = screenRole
		return nil
	case "tab", "shift+tab", "up", "down":
		return a.toggleLoginFocus()
	case "enter":
		if a.email.Focused() {
			return a.toggleLoginFocus()
		}
		return a.submitSignIn()
	}

	var cmd tea.Cmd
	if a.email.Focused() {
		a.email, cmd = a.email.Update(msg)
	} else {
		a.password, cmd = a.password.Update(msg)
	}
	return cmd
}

func (a *App) toggleLoginFocus() tea.Cmd {
	if a.email.Focused() {
		a.email.Blur()
		return a.password.Focus()
	}
	a.password.Blur()
	return a.email.Focus()
}

// submitSignIn runs the blocking sign-in off the update loop.
func (a *App) submitSignIn() tea.Cmd {
	email, password := a.email.Value(), a.password.Value()
	a.screen = screenSigningIn

	ps, ws := a.portal, a.ws
	return func() tea.Msg {
		sess, err := ps.SignIn(ws, email, password)
		return signInDoneMsg{session: sess, err: err}
	}
}

func (a *App) handleSignInDone(msg signInDoneMsg) tea.Cmd {
	if msg.err != nil {
		a.err = msg.err
		if errors.Is(msg.err, portal.ErrInvalidRole) {
			a.screen = screenRole
			return nil
		}
		a.screen = screenLogin
		a.password.SetValue("")
		return nil
	}

	a.logger.Debug("TUI signed in", zap.String("session_id", msg.session.ID.String()))
	a.password.SetValue("")
	a.resetStepState()
	a.screen = screenStep
	return nil
}

func (a *App) updateDone(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "enter":
		a.screen = screenRole
	}
	return nil
}

func (a *App) updateStep(msg tea.KeyMsg) tea.Cmd {
	view := a.portal.Snapshot(a.ws)
	if !view.Authenticated {
		a.screen = screenRole
		return nil
	}

	// the text field takes every key while it is open
	if a.inputMode != inputNone {
		return a.updateInput(msg, view)
	}

	switch msg.String() {
	case "q":
		a.portal.SignOut(a.ws)
		return tea.Quit
	case "o":
		a.portal.SignOut(a.ws)
		a.resetStepState()
		a.status = "Signed out"
		a.screen = screenRole
		return nil
	case "right", "n":
		a.advance("")
		return nil
	case "left", "b":
		if _, err := a.portal.Retreat(a.ws); err != nil {
			a.err = err
			return nil
		}
		a.resetStepState()
		return nil
	}

	switch {
	case isBookingStep(view):
		a.updateBooking(msg)
	case isSlotManagementStep(view):
		a.updateSlots(msg)
	case isUserManagementStep(view):
		return a.updateUsers(msg)
	case isNotesStep(view):
		return a.updateNotes(msg)
	}
	return nil
}

func (a *App) advance(notice string) {
	tr, err := a.portal.Advance(a.ws)
	if err != nil {
		a.err = err
		return
	}
	a.resetStepState()
	if tr.Completed {
		a.doneRole = tr.Step.Role
		a.screen = screenDone
		return
	}
	a.status = notice
}

func (a *App) resetStepState() {
	a.selection = model.BookingSelection{}
	a.filter = model.PeriodAll
	a.dateIdx = -1
	a.doctorIdx = -1
	a.cursor = 0
	a.userQuery = ""
	a.userRole = model.RoleNone
	a.patientIdx = 0
	a.closeInput()
}

// ---- patient: Book Appointment ----

func (a *App) bookingContext() service.SlotContext {
	return service.SlotContext{DoctorID: a.selection.DoctorID, Date: a.selection.Date}
}

func (a *App) bookingSlots() []model.TimeSlot {
	sc := a.bookingContext()
	if sc.DoctorID == 0 || sc.Date.IsZero() {
		return nil
	}
	slots, err := a.booking.Slots(a.ws, sc, a.filter)
	if err != nil {
		a.err = err
		return nil
	}
	return slots
}

func (a *App) updateBooking(msg tea.KeyMsg) {
	switch msg.String() {
	case "d":
		dates := a.booking.BookingDates(a.now())
		if len(dates) == 0 {
			return
		}
		a.dateIdx = (a.dateIdx + 1) % len(dates)
		a.selection.Date = dates[a.dateIdx]
		a.selection.SlotID = 0
		a.cursor = 0
	case "c":
		doctors := a.booking.Doctors()
		a.doctorIdx = (a.doctorIdx + 1) % len(doctors)
		a.selection.DoctorID = doctors[a.doctorIdx].ID
		a.selection.SlotID = 0
		a.cursor = 0
	case "f":
		i := slices.Index(model.Periods, a.filter)
		a.filter = model.Periods[(i+1)%len(model.Periods)]
		a.cursor = 0
	case "up", "k":
		a.moveCursor(-1, len(a.bookingSlots()))
	case "down", "j":
		a.moveCursor(1, len(a.bookingSlots()))
	case "enter":
		slots := a.bookingSlots()
		if a.cursor >= len(slots) {
			return
		}
		slot, err := a.booking.Select(a.ws, a.bookingContext(), slots[a.cursor].ID)
		if err != nil {
			a.err = err
			return
		}
		a.selection.SlotID = slot.ID
	case "y":
		booking, err := a.booking.Confirm(a.ws, a.selection)
		if err != nil {
			a.err = err
			return
		}
		a.advance("Booked " + booking.Doctor.Name + " at " + booking.Slot.Time)
	}
}

// ---- admin: Manage Slots ----

func (a *App) adminContext() service.SlotContext {
	doctors := a.booking.Doctors()
	dates := a.booking.ManagedDates()
	sc := service.SlotContext{}
	if len(doctors) > 0 {
		sc.DoctorID = doctors[max(a.doctorIdx, 0)%len(doctors)].ID
	}
	if len(dates) > 0 {
		sc.Date = dates[max(a.dateIdx, 0)%len(dates)]
	}
	return sc
}

func (a *App) adminSlots() []model.TimeSlot {
	slots, err := a.booking.Slots(a.ws, a.adminContext(), model.PeriodAll)
	if err != nil {
		a.err = err
		return nil
	}
	return slots
}

func (a *App) updateSlots(msg tea.KeyMsg) {
	switch msg.String() {
	case "d":
		if n := len(a.booking.ManagedDates()); n > 0 {
			a.dateIdx = (max(a.dateIdx, 0) + 1) % n
		}
		a.cursor = 0
	case "c":
		a.doctorIdx = (max(a.doctorIdx, 0) + 1) % len(a.booking.Doctors())
		a.cursor = 0
	case "up", "k":
		a.moveCursor(-1, len(a.adminSlots()))
	case "down", "j":
		a.moveCursor(1, len(a.adminSlots()))
	case "enter":
		slots := a.adminSlots()
		if a.cursor >= len(slots) {
			return
		}
		slot, err := a.booking.Toggle(a.ws, a.adminContext(), slots[a.cursor].ID)
		if err != nil {
			a.err = err
			return
		}
		a.status = slot.Time + " toggled"
	case "x":
		slots := a.adminSlots()
		if a.cursor >= len(slots) {
			return
		}
		if err := a.booking.Remove(a.ws, a.adminContext(), slots[a.cursor].ID); err != nil {
			a.err = err
			return
		}
		a.cursor = max(0, min(a.cursor, len(slots)-2))
	case "a":
		slot, err := a.booking.Add(a.ws, a.adminContext(), "")
		if err != nil {
			a.err = err
			return
		}
		a.status = "Added " + slot.Time
	}
}

// ---- admin: Manage Users ----

func (a *App) userList() []model.User {
	list, err := a.users.Users(a.ws, users.Filter{Query: a.userQuery, Role: a.userRole})
	if err != nil {
		a.err = err
		return nil
	}
	return list
}

func (a *App) updateUsers(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "r":
		i := slices.Index(userRoleFilters, a.userRole)
		a.userRole = userRoleFilters[(i+1)%len(userRoleFilters)]
		a.cursor = 0
	case "s", "/":
		return a.openInput(inputUserSearch, "name or email", a.userQuery, 100)
	case "esc":
		a.userQuery = ""
		a.cursor = 0
	case "up", "k":
		a.moveCursor(-1, len(a.userList()))
	case "down", "j":
		a.moveCursor(1, len(a.userList()))
	case "enter":
		list := a.userList()
		if a.cursor >= len(list) {
			return nil
		}
		u, err := a.users.ToggleStatus(a.ws, list[a.cursor].ID)
		if err != nil {
			a.err = err
			return nil
		}
		a.status = u.Name + " is now " + string(u.Status)
	}
	return nil
}

// ---- doctor: Notes ----

func (a *App) notesPatient() (model.Patient, bool) {
	patients := a.notes.Patients()
	if len(patients) == 0 {
		return model.Patient{}, false
	}
	return patients[a.patientIdx%len(patients)], true
}

func (a *App) updateNotes(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "p":
		if n := len(a.notes.Patients()); n > 0 {
			a.patientIdx = (a.patientIdx + 1) % n
		}
	case "a":
		if _, ok := a.notesPatient(); !ok {
			return nil
		}
		return a.openInput(inputNote, "note", "", 1000)
	}
	return nil
}

// ---- step text field ----

func (a *App) openInput(mode inputMode, placeholder, value string, limit int) tea.Cmd {
	a.inputMode = mode
	a.input.Placeholder = placeholder
	a.input.CharLimit = limit
	a.input.SetValue(value)
	return a.input.Focus()
}

func (a *App) closeInput() {
	a.inputMode = inputNone
	a.input.SetValue("")
	a.input.Blur()
}

func (a *App) updateInput(msg tea.KeyMsg, view service.View) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.closeInput()
		return nil
	case "enter":
		a.submitInput(view)
		return nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return cmd
}

func (a *App) submitInput(view service.View) {
	value := a.input.Value()
	switch a.inputMode {
	case inputUserSearch:
		if isUserManagementStep(view) {
			a.userQuery = strings.TrimSpace(value)
			a.cursor = 0
		}
	case inputNote:
		p, ok := a.notesPatient()
		if !ok || !isNotesStep(view) {
			break
		}
		if _, err := a.notes.Save(a.ws, p.ID, value); err != nil {
			a.err = err
			if errors.Is(err, notes.ErrEmptyNote) {
				// keep the field open for another try
				return
			}
			break
		}
		a.status = "Note saved for " + p.Name
	}
	a.closeInput()
}

func (a *App) moveCursor(delta, n int) {
	if n == 0 {
		a.cursor = 0
		return
	}
	a.cursor = (a.cursor + delta + n) % n
}

func isBookingStep(v service.View) bool {
	return v.At(model.RolePatient, portal.KeyBookAppointment)
}

func isSlotManagementStep(v service.View) bool {
	return v.At(model.RoleAdmin, portal.KeyManageSlots)
}

func isUserManagementStep(v service.View) bool {
	return v.At(model.RoleAdmin, portal.KeyManageUsers)
}

func isNotesStep(v service.View) bool {
	return v.At(model.RoleDoctor, portal.KeyNotes)
}
