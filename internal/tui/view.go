package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/notes"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/Freeeeeet/medislot/internal/service"
	"github.com/Freeeeeet/medislot/internal/slots"
	"github.com/Freeeeeet/medislot/internal/users"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#2E7D9A")).
			Padding(0, 1)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	blockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2E7D9A")).
			Padding(1, 2)

	stepDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	stepCurrent = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true).Underline(true)
	stepAhead   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// View renders the current screen.
func (a *App) View() string {
	var body, help string

	switch a.screen {
	case screenRole:
		body, help = a.viewRole(), "↑/↓ choose · enter select · q quit"
	case screenLogin:
		body, help = a.viewLogin(), "tab switch field · enter continue · esc back"
	case screenSigningIn:
		body, help = labelStyle.Render("Signing in…"), ""
	case screenStep:
		body, help = a.viewStep()
	case screenDone:
		body = fmt.Sprintf("%s\n\nYou completed the %s workflow and have been signed out.",
			titleStyle.Render("All done"), a.doneRole.Title())
		help = "enter start again · q quit"
	}

	var sb strings.Builder
	sb.WriteString(boxStyle.Render(body))
	sb.WriteString("\n")
	if a.err != nil {
		sb.WriteString(errorStyle.Render(errorText(a.err)) + "\n")
	}
	if a.status != "" {
		sb.WriteString(statusStyle.Render(a.status) + "\n")
	}
	if help != "" {
		sb.WriteString(mutedStyle.Render(help) + "\n")
	}
	return sb.String()
}

func (a *App) viewRole() string {
	lines := []string{titleStyle.Render("MediSlot"), "", "Choose how you want to sign in:", ""}
	for i, r := range model.Roles {
		if i == a.roleCursor {
			lines = append(lines, cursorStyle.Render("› "+r.Title()))
			continue
		}
		lines = append(lines, "  "+r.Title())
	}
	return strings.Join(lines, "\n")
}

func (a *App) viewLogin() string {
	role := a.ws.State.Role()
	return strings.Join([]string{
		titleStyle.Render(role.Title() + " sign in"),
		"",
		labelStyle.Render("Email"),
		a.email.View(),
		"",
		labelStyle.Render("Password"),
		a.password.View(),
		"",
		mutedStyle.Render("Any non-empty email and password work."),
	}, "\n")
}

func (a *App) viewStep() (string, string) {
	v := a.portal.Snapshot(a.ws)
	if !v.Authenticated {
		return a.viewRole(), ""
	}

	lines := []string{
		titleStyle.Render(v.Role.Title()+" Portal") + "  " + mutedStyle.Render(v.Session.Name),
		"",
		progressBar(v.Steps, v.Step.Index),
		"",
		labelStyle.Render(fmt.Sprintf("Step %d of %d: %s", v.Step.Index, len(v.Steps), v.Step.Label)),
	}
	for _, line := range a.portal.Lines(v.Step) {
		lines = append(lines, "• "+line)
	}

	help := "←/b back · →/n next · o logout · q quit"
	switch {
	case isBookingStep(v):
		lines = append(lines, a.viewBooking()...)
		help = "d date · c doctor · f filter · ↑/↓ slot · enter select · y confirm\n" + help
	case isSlotManagementStep(v):
		lines = append(lines, a.viewSlots()...)
		help = "d date · c doctor · ↑/↓ slot · enter toggle · x remove · a add\n" + help
	case isUserManagementStep(v):
		lines = append(lines, a.viewUsers()...)
		help = "r role · s search · esc clear search · ↑/↓ user · enter activate/deactivate\n" + help
	case isNotesStep(v):
		lines = append(lines, a.viewNotes()...)
		help = "p patient · a add note\n" + help
	}
	if a.inputMode != inputNone {
		lines = append(lines, "", a.input.View())
		help = "enter save · esc cancel"
	}
	return strings.Join(lines, "\n"), help
}

func (a *App) viewBooking() []string {
	sel := a.selection
	date, doctor, slotLabel := "—", "—", "—"
	if !sel.Date.IsZero() {
		date = sel.Date.Format("Mon, Jan 2")
	}
	if d, err := a.booking.Doctor(sel.DoctorID); err == nil {
		doctor = fmt.Sprintf("%s (%s)", d.Name, d.Specialty)
	}

	list := a.bookingSlots()
	for _, s := range list {
		if s.ID == sel.SlotID {
			slotLabel = s.Time
		}
	}

	lines := []string{
		"",
		"Date:   " + date,
		"Doctor: " + doctor,
		"Time:   " + slotLabel,
		"Filter: " + string(a.filter),
		"",
	}
	if sel.Date.IsZero() || sel.DoctorID == 0 {
		return append(lines, mutedStyle.Render("Pick a date and a doctor to see available times."))
	}
	if len(list) == 0 {
		return append(lines, mutedStyle.Render("No slots in this period."))
	}
	return append(lines, a.slotLines(list, sel.SlotID)...)
}

func (a *App) viewSlots() []string {
	sc := a.adminContext()
	doctor := "—"
	if d, err := a.booking.Doctor(sc.DoctorID); err == nil {
		doctor = d.Name
	}

	list := a.adminSlots()
	lines := []string{
		"",
		fmt.Sprintf("%s · %s", doctor, sc.Date.Format("Mon, Jan 2")),
		"",
	}
	return append(lines, a.slotLines(list, 0)...)
}

func (a *App) viewUsers() []string {
	list := a.userList()
	role := "all"
	if a.userRole != model.RoleNone {
		role = a.userRole.Title()
	}
	header := "Role: " + role
	if a.userQuery != "" {
		header += fmt.Sprintf(" · search %q", a.userQuery)
	}

	lines := []string{"", header, ""}
	if len(list) == 0 {
		return append(lines, mutedStyle.Render("No users match."))
	}
	for i, u := range list {
		mark := "  "
		if i == a.cursor {
			mark = cursorStyle.Render("› ")
		}
		status := okStyle.Render(string(u.Status))
		if !u.Active() {
			status = blockedStyle.Render(string(u.Status))
		}
		lines = append(lines, fmt.Sprintf("%s%-20s %-22s %-8s %s", mark, u.Name, u.Email, u.Role.Title(), status))
	}
	return lines
}

func (a *App) viewNotes() []string {
	p, ok := a.notesPatient()
	if !ok {
		return []string{"", mutedStyle.Render("No patients.")}
	}

	lines := []string{
		"",
		labelStyle.Render(p.Name) + fmt.Sprintf(" · %d · last visit %s", p.Age, p.LastVisit),
		"",
	}
	list, err := a.notes.Notes(a.ws, p.ID)
	if err != nil {
		a.err = err
		return lines
	}
	if len(list) == 0 {
		return append(lines, mutedStyle.Render("No notes yet."))
	}
	for _, n := range list {
		lines = append(lines, mutedStyle.Render(n.CreatedAt.Format("Jan 2, 15:04"))+"  "+n.Body)
	}
	return lines
}

func (a *App) slotLines(list []model.TimeSlot, selectedID int64) []string {
	lines := make([]string, 0, len(list))
	for i, s := range list {
		mark := "  "
		if i == a.cursor {
			mark = cursorStyle.Render("› ")
		}

		state := okStyle.Render("available")
		if !s.Available {
			state = blockedStyle.Render("blocked")
		}
		if s.ID == selectedID {
			state = cursorStyle.Render("selected")
		}
		lines = append(lines, fmt.Sprintf("%s%-9s %-10s %s", mark, s.Time, s.Period, state))
	}
	return lines
}

// progressBar renders the workflow steps with the current one highlighted.
func progressBar(steps []portal.Step, current int) string {
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		switch {
		case s.Index < current:
			parts = append(parts, stepDone.Render("✓ "+s.Label))
		case s.Index == current:
			parts = append(parts, stepCurrent.Render(s.Label))
		default:
			parts = append(parts, stepAhead.Render(s.Label))
		}
	}
	return strings.Join(parts, mutedStyle.Render(" › "))
}

func errorText(err error) string {
	switch {
	case errors.Is(err, portal.ErrAuthentication):
		return "Email and password are required."
	case errors.Is(err, portal.ErrSessionActive):
		return "Already signed in; log out to switch roles."
	case errors.Is(err, portal.ErrInvalidRole):
		return "Choose a role first."
	case errors.Is(err, portal.ErrWorkflowBoundary):
		return "Already on the first step."
	case errors.Is(err, portal.ErrWorkflowExhausted):
		return "Workflow already complete."
	case errors.Is(err, slots.ErrSlotUnavailable):
		return "That time slot is not available."
	case errors.Is(err, slots.ErrSlotNotFound):
		return "Time slot not found."
	case errors.Is(err, notes.ErrEmptyNote):
		return "Empty note: write something before saving."
	case errors.Is(err, users.ErrUserNotFound):
		return "User not found."
	case errors.Is(err, service.ErrPatientNotFound):
		return "Patient not found."
	case errors.Is(err, service.ErrIncompleteSelection):
		return "Incomplete selection: pick a date, doctor and time slot."
	}
	return err.Error()
}
