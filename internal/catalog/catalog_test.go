package catalog

import (
	"testing"
	"time"

	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Doctors, 4)
	assert.Len(t, c.TimeSlots, 15)
	assert.Equal(t, "05:00 PM", c.DefaultNewSlot)

	d, ok := c.Doctor(2)
	require.True(t, ok)
	assert.Equal(t, "Dr. Michael Chen", d.Name)
	_, ok = c.Doctor(99)
	assert.False(t, ok)

	unavailable := 0
	for _, s := range c.TimeSlots {
		if !s.Available {
			unavailable++
		}
	}
	assert.Equal(t, 4, unavailable)

	require.Len(t, c.Users, 5)
	assert.Equal(t, model.UserInactive, c.Users[4].Status)
	p, ok := c.Patient(4)
	require.True(t, ok)
	assert.Equal(t, "Emily Davis", p.Name)

	assert.NotEmpty(t, c.Lines(model.RolePatient, "records"))
	assert.Empty(t, c.Lines(model.RolePatient, "nope"))
}

func TestSeedIsACopy(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	seed := c.Seed()
	seed[0].Available = !seed[0].Available
	assert.NotEqual(t, seed[0].Available, c.TimeSlots[0].Available)
}

func TestUserSeedIsACopy(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	seed := c.UserSeed()
	seed[0].Status = seed[0].Status.Toggled()
	assert.Equal(t, model.UserActive, c.Users[0].Status)
}

func TestDates(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	managed := c.ManagedDates()
	require.Len(t, managed, 5)
	assert.Equal(t, "2024-03-18", managed[0].Format(dateLayout))

	today := time.Date(2024, 3, 20, 15, 4, 0, 0, time.UTC)
	days := c.BookingDates(today)
	require.Len(t, days, 7)
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2024, 3, 26, 0, 0, 0, 0, time.UTC), days[6])
}

func TestParseRejectsBadData(t *testing.T) {
	tests := map[string]string{
		"no doctors":   "time_slots: []",
		"duplicate id": "doctors: [{id: 1, name: A}]\ntime_slots: [{id: 1, time: '09:00 AM', period: morning}, {id: 1, time: '10:00 AM', period: morning}]",
		"bad period":   "doctors: [{id: 1, name: A}]\ntime_slots: [{id: 1, time: '09:00 AM', period: night}]",
		"all period":   "doctors: [{id: 1, name: A}]\ntime_slots: [{id: 1, time: '09:00 AM', period: all}]",
		"bad date":     "doctors: [{id: 1, name: A}]\nadmin_dates: ['20/03/2024']",
		"not yaml":     "doctors: [",
		"user role":    "doctors: [{id: 1, name: A}]\nusers: [{id: 1, name: U, role: nurse, status: active}]",
		"user status":  "doctors: [{id: 1, name: A}]\nusers: [{id: 1, name: U, role: admin, status: banned}]",
		"dup patient":  "doctors: [{id: 1, name: A}]\npatients: [{id: 1, name: P}, {id: 1, name: Q}]",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Doctors, 4)

	_, err = Load("/does/not/exist.yaml")
	assert.Error(t, err)
}
