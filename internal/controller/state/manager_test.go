package state

import (
	"testing"
	"time"

	"github.com/Freeeeeet/medislot/internal/catalog"
	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/Freeeeeet/medislot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	ps := service.NewPortalService(cat, portal.NewNavigator(), 0, nil, zap.NewNop())
	return NewManager(ps.NewWorkspace)
}

func TestWorkspacePerChat(t *testing.T) {
	sm := newManager(t)

	a := sm.Workspace(1)
	assert.Same(t, a, sm.Workspace(1))
	assert.NotSame(t, a, sm.Workspace(2))

	require.NoError(t, a.State.SelectRole(model.RoleAdmin))
	assert.Equal(t, model.RoleNone, sm.Workspace(2).State.Role())
}

func TestDialogState(t *testing.T) {
	sm := newManager(t)

	assert.Equal(t, StateNone, sm.GetState(7))
	sm.SetState(7, StateEnteringEmail)
	assert.Equal(t, StateEnteringEmail, sm.GetState(7))

	sm.Update(7, func(d *ChatData) {
		d.Email = "a@b.com"
		d.Selection.DoctorID = 2
		d.Filter = model.PeriodMorning
		d.AdminDate = time.Now()
	})

	sm.ClearState(7)
	d := sm.Get(7)
	assert.Equal(t, StateNone, d.Dialog)
	assert.Empty(t, d.Email)
	assert.Zero(t, d.Selection.DoctorID)
	assert.Equal(t, model.PeriodAll, d.Filter)
	assert.True(t, d.AdminDate.IsZero())
	assert.NotNil(t, d.Workspace)
}

func TestResetStepClearsRecordsState(t *testing.T) {
	d := ChatData{UserQuery: "john", UserRole: model.RoleDoctor, NotePatientID: 3}
	d.ResetStep()

	assert.Empty(t, d.UserQuery)
	assert.Equal(t, model.RoleNone, d.UserRole)
	assert.Zero(t, d.NotePatientID)
}

func TestIdleChatsArePruned(t *testing.T) {
	sm := newManager(t)
	sm.pruneAt = 3

	clock := time.Date(2024, time.March, 18, 9, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return clock }

	// 1: только открыл бота; 2: вошёл; 3: вводит email
	sm.Workspace(1)
	ws := sm.Workspace(2)
	require.NoError(t, ws.State.SelectRole(model.RolePatient))
	_, err := ws.State.SignIn("p@example.com", "pw")
	require.NoError(t, err)
	sm.SetState(3, StateEnteringEmail)

	clock = clock.Add(chatIdleTTL + time.Minute)
	sm.Workspace(4)

	assert.Equal(t, 3, sm.Len())
	assert.Same(t, ws, sm.Workspace(2))
	assert.Equal(t, StateEnteringEmail, sm.GetState(3))
	assert.Equal(t, StateNone, sm.GetState(1))
}

func TestRecentChatsSurvivePrune(t *testing.T) {
	sm := newManager(t)
	sm.pruneAt = 2

	clock := time.Date(2024, time.March, 18, 9, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return clock }

	sm.Workspace(1)
	sm.Workspace(2)
	clock = clock.Add(time.Minute)
	sm.Workspace(3)

	assert.Equal(t, 3, sm.Len())
}
