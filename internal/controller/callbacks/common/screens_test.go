package common

import (
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/medislot/internal/catalog"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/medislot/internal/controller/state"
	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/Freeeeeet/medislot/internal/service"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var today = time.Date(2024, time.March, 18, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc service.Services
	ps  *service.PortalService
	bs  *service.BookingService
	ws  *service.Workspace
}

func signedIn(t *testing.T, role model.Role) fixture {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	svc := service.NewServices(cat, 0, nil, zap.NewNop())
	f := fixture{svc: svc, ps: svc.Portal, bs: svc.Booking}
	f.ws = f.ps.NewWorkspace()
	require.NoError(t, f.ps.SelectRole(f.ws, role))
	_, err = f.ps.SignIn(f.ws, "jane@clinic.org", "secret")
	require.NoError(t, err)
	return f
}

func (f fixture) render(t *testing.T, chat state.ChatData) (string, *models.InlineKeyboardMarkup) {
	t.Helper()
	screen, err := LoadStepScreen(f.svc, f.ws, chat, today)
	require.NoError(t, err)
	return BuildStepScreen(screen)
}

func callbacks(kb *models.InlineKeyboardMarkup, prefix string) []models.InlineKeyboardButton {
	var out []models.InlineKeyboardButton
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if strings.HasPrefix(btn.CallbackData, prefix) {
				out = append(out, btn)
			}
		}
	}
	return out
}

func TestRoleScreen(t *testing.T) {
	text, kb := BuildRoleScreen()
	assert.Contains(t, text, "MediSlot")

	roles := callbacks(kb, keyboard.RolePrefix)
	require.Len(t, roles, 3)
	assert.Equal(t, "role:patient", roles[0].CallbackData)
	assert.Equal(t, "role:admin", roles[2].CallbackData)
}

func TestStepScreenSignedOutShowsRoles(t *testing.T) {
	f := signedIn(t, model.RoleDoctor)
	f.ps.SignOut(f.ws)

	_, kb := f.render(t, state.ChatData{})
	assert.Len(t, callbacks(kb, keyboard.RolePrefix), 3)
}

func TestBookingStepBeforeSelection(t *testing.T) {
	f := signedIn(t, model.RolePatient)

	text, kb := f.render(t, state.ChatData{Filter: model.PeriodAll})

	assert.Contains(t, text, "Patient Portal</b> · jane")
	assert.Contains(t, text, "Step 1 of 5: <b>Book Appointment</b>")
	assert.Contains(t, text, "Pick a date and a doctor")

	assert.Len(t, callbacks(kb, keyboard.BookDatePrefix), 7)
	assert.Len(t, callbacks(kb, keyboard.BookDoctorPrefix), 4)
	assert.Empty(t, callbacks(kb, keyboard.BookSlotPrefix))
	assert.Empty(t, callbacks(kb, keyboard.BookConfirm))
	assert.Empty(t, callbacks(kb, keyboard.CallbackBack))

	next := callbacks(kb, keyboard.CallbackNext)
	require.Len(t, next, 1)
	assert.Contains(t, next[0].Text, "Medical Records")
}

func TestBookingStepWithSelection(t *testing.T) {
	f := signedIn(t, model.RolePatient)
	chat := state.ChatData{
		Filter:    model.PeriodAll,
		Selection: model.BookingSelection{Date: today, DoctorID: 2},
	}

	text, kb := f.render(t, chat)
	assert.Contains(t, text, "Dr. Michael Chen (Cardiologist)")

	slots := callbacks(kb, keyboard.BookSlotPrefix)
	require.Len(t, slots, 15)
	assert.Equal(t, "✖ 10:00 AM", slots[2].Text)
	assert.Len(t, callbacks(kb, keyboard.BookPeriodPrefix), 4)
	assert.Empty(t, callbacks(kb, keyboard.BookConfirm))

	chat.Selection.SlotID = 1
	chat.Filter = model.PeriodMorning
	text, kb = f.render(t, chat)
	assert.Contains(t, text, "Time: 09:00 AM")
	assert.Len(t, callbacks(kb, keyboard.BookSlotPrefix), 6)
	assert.Len(t, callbacks(kb, keyboard.BookConfirm), 1)
}

func TestSlotManagementStep(t *testing.T) {
	f := signedIn(t, model.RoleAdmin)
	_, err := f.ps.Advance(f.ws)
	require.NoError(t, err)

	text, kb := f.render(t, state.ChatData{})
	assert.Contains(t, text, "Manage Slots")
	assert.Contains(t, text, "Dr. Sarah Johnson · 📅 Mon, Mar 18")
	assert.Contains(t, text, "15 slots, 11 available")

	assert.Len(t, callbacks(kb, keyboard.SlotsTogglePrefix), 15)
	assert.Len(t, callbacks(kb, keyboard.SlotsRemovePrefix), 15)
	assert.Len(t, callbacks(kb, keyboard.SlotsAdd), 2) // add и add_custom имеют общий префикс
	assert.Len(t, callbacks(kb, keyboard.CallbackBack), 1)

	sc := AdminContext(f.bs, state.ChatData{})
	_, err = f.bs.Toggle(f.ws, sc, 1)
	require.NoError(t, err)

	text, _ = f.render(t, state.ChatData{})
	assert.Contains(t, text, "15 slots, 10 available")
}

func TestContentStepAndFinish(t *testing.T) {
	f := signedIn(t, model.RoleDoctor)
	for range 3 {
		_, err := f.ps.Advance(f.ws)
		require.NoError(t, err)
	}

	text, kb := f.render(t, state.ChatData{})
	assert.Contains(t, text, "Step 4 of 5: <b>Notes</b>")
	assert.Contains(t, text, "• Add notes and observations")

	next := callbacks(kb, keyboard.CallbackNext)
	require.Len(t, next, 1)
	assert.Equal(t, "🏁 Finish", next[0].Text)
	assert.Len(t, callbacks(kb, keyboard.CallbackLogout), 1)
}

func TestUserManagementStep(t *testing.T) {
	f := signedIn(t, model.RoleAdmin)

	text, kb := f.render(t, state.ChatData{})
	assert.Contains(t, text, "Step 1 of 5: <b>Manage Users</b>")
	assert.Contains(t, text, "5 users, 4 active")
	assert.Contains(t, text, "⚪ Robert Wilson · patient · robert@example.com")
	assert.Len(t, callbacks(kb, keyboard.UsersTogglePrefix), 5)
	assert.Len(t, callbacks(kb, keyboard.UsersRolePrefix), 4)
	assert.Len(t, callbacks(kb, keyboard.UsersSearch), 1)

	_, err := f.svc.Users.ToggleStatus(f.ws, 5)
	require.NoError(t, err)

	chat := state.ChatData{UserQuery: "medicare", UserRole: model.RoleDoctor}
	text, kb = f.render(t, chat)
	assert.Contains(t, text, "2 users, 2 active")
	assert.Contains(t, text, "“medicare”")
	assert.Len(t, callbacks(kb, keyboard.UsersTogglePrefix), 2)
	assert.Len(t, callbacks(kb, keyboard.UsersClearSearch), 1)

	roles := callbacks(kb, keyboard.UsersRolePrefix)
	assert.Equal(t, "• Doctors", roles[2].Text)
	assert.Equal(t, "users:role:all", roles[0].CallbackData)

	text, _ = f.render(t, state.ChatData{UserQuery: "nobody"})
	assert.Contains(t, text, "No users match")
}

func TestNotesStep(t *testing.T) {
	f := signedIn(t, model.RoleDoctor)
	for range 3 {
		_, err := f.ps.Advance(f.ws)
		require.NoError(t, err)
	}

	text, kb := f.render(t, state.ChatData{})
	assert.Contains(t, text, "<b>John Doe</b>, 35")
	assert.Contains(t, text, "No notes yet")
	assert.Len(t, callbacks(kb, keyboard.NotesPatientPrefix), 4)
	assert.Len(t, callbacks(kb, keyboard.NotesAdd), 1)

	_, err := f.svc.Notes.Save(f.ws, 2, "Allergy <b>test</b> ordered")
	require.NoError(t, err)

	text, kb = f.render(t, state.ChatData{NotePatientID: 2})
	assert.Contains(t, text, "<b>Jane Smith</b>, 28")
	assert.Contains(t, text, "Notes (1)")
	assert.Contains(t, text, "Allergy test ordered")

	patients := callbacks(kb, keyboard.NotesPatientPrefix)
	assert.Equal(t, "✅ Jane Smith", patients[1].Text)
}

func TestRequireStep(t *testing.T) {
	f := signedIn(t, model.RoleAdmin)
	v := f.ps.Snapshot(f.ws)

	assert.NoError(t, RequireStep(v, model.RoleAdmin, portal.KeyManageUsers))
	assert.ErrorIs(t, RequireStep(v, model.RoleAdmin, portal.KeyManageSlots), service.ErrForbidden)
	assert.ErrorIs(t, RequireStep(v, model.RoleDoctor, portal.KeyManageUsers), service.ErrForbidden)

	f.ps.SignOut(f.ws)
	assert.ErrorIs(t, RequireStep(f.ps.Snapshot(f.ws), model.RoleAdmin, portal.KeyManageUsers), service.ErrForbidden)
}

func TestBookingSummary(t *testing.T) {
	s := BookingSummary(model.Booking{
		Date:   today,
		Doctor: model.Doctor{Name: "Dr. Emily Williams"},
		Slot:   model.TimeSlot{Time: "02:00 PM"},
	})
	assert.Contains(t, s, "Dr. Emily Williams")
	assert.Contains(t, s, "Mon, Mar 18 at 02:00 PM")
}
