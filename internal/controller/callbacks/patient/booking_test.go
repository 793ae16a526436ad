package patient

import (
	"testing"
	"time"

	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/Freeeeeet/medislot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewAt(t *testing.T, role model.Role, index int) service.View {
	t.Helper()
	step, err := portal.NewNavigator().Step(role, index)
	require.NoError(t, err)
	return service.View{Role: role, Authenticated: true, Step: step}
}

func TestBookingStepGuard(t *testing.T) {
	tests := []struct {
		name    string
		view    service.View
		allowed bool
	}{
		{"patient on booking", viewAt(t, model.RolePatient, 1), true},
		{"patient on records", viewAt(t, model.RolePatient, 2), false},
		{"admin on first step", viewAt(t, model.RoleAdmin, 1), false},
		{"doctor on first step", viewAt(t, model.RoleDoctor, 1), false},
		{"signed out", service.View{Role: model.RolePatient}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bookingStep(tt.view)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, service.ErrForbidden)
		})
	}
}

func TestWithDateDropsSlotOnlyForAnotherDay(t *testing.T) {
	day := time.Date(2024, time.March, 18, 0, 0, 0, 0, time.UTC)
	sel := model.BookingSelection{Date: day, DoctorID: 1, SlotID: 4}

	same := withDate(sel, day.Add(9*time.Hour))
	assert.Equal(t, int64(4), same.SlotID)

	next := withDate(sel, day.AddDate(0, 0, 1))
	assert.Zero(t, next.SlotID)
	assert.Equal(t, int64(1), next.DoctorID)
	assert.Equal(t, day.AddDate(0, 0, 1), next.Date)
}

func TestWithDoctorDropsSlot(t *testing.T) {
	sel := model.BookingSelection{DoctorID: 1, SlotID: 4}

	assert.Equal(t, int64(4), withDoctor(sel, 1).SlotID)

	other := withDoctor(sel, 2)
	assert.Zero(t, other.SlotID)
	assert.Equal(t, int64(2), other.DoctorID)
}

func TestSlotContextFromSelection(t *testing.T) {
	day := time.Date(2024, time.March, 18, 0, 0, 0, 0, time.UTC)
	sc := slotContext(model.BookingSelection{Date: day, DoctorID: 3, SlotID: 7})
	assert.Equal(t, service.SlotContext{DoctorID: 3, Date: day}, sc)
}
