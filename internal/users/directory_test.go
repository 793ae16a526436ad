package users

import (
	"iter"
	"slices"
	"testing"

	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed() []model.User {
	return []model.User{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Role: model.RolePatient, Status: model.UserActive},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Role: model.RolePatient, Status: model.UserActive},
		{ID: 3, Name: "Dr. Sarah Johnson", Email: "sarah@medicare.com", Role: model.RoleDoctor, Status: model.UserActive},
		{ID: 4, Name: "Root", Email: "ops@medicare.com", Role: model.RoleAdmin, Status: model.UserInactive},
	}
}

func ids(seq iter.Seq[model.User]) []int64 {
	var out []int64
	for u := range seq {
		out = append(out, u.ID)
	}
	return out
}

func TestListFilter(t *testing.T) {
	d := NewDirectory(seed())

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{"everyone", Filter{}, []int64{1, 2, 3, 4}},
		{"by role", Filter{Role: model.RolePatient}, []int64{1, 2}},
		{"name is case-insensitive", Filter{Query: "JOHN"}, []int64{1, 3}},
		{"by email", Filter{Query: "medicare"}, []int64{3, 4}},
		{"query and role", Filter{Query: "medicare", Role: model.RoleAdmin}, []int64{4}},
		{"blank query", Filter{Query: "   "}, []int64{1, 2, 3, 4}},
		{"no match", Filter{Query: "nobody"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(d.List(tt.filter)))
		})
	}
}

func TestToggleTwiceRestoresStatus(t *testing.T) {
	d := NewDirectory(seed())

	u, err := d.Toggle(2)
	require.NoError(t, err)
	assert.Equal(t, model.UserInactive, u.Status)

	u, err = d.Toggle(2)
	require.NoError(t, err)
	assert.Equal(t, model.UserActive, u.Status)

	u, err = d.Toggle(4)
	require.NoError(t, err)
	assert.True(t, u.Active())
}

func TestToggleUnknownUser(t *testing.T) {
	d := NewDirectory(seed())

	_, err := d.Toggle(99)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = d.Get(99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResetDropsChanges(t *testing.T) {
	s := seed()
	d := NewDirectory(s)

	_, err := d.Toggle(1)
	require.NoError(t, err)
	assert.Equal(t, model.UserActive, s[0].Status, "seed must not be shared")

	d.Reset()
	u, err := d.Get(1)
	require.NoError(t, err)
	assert.Equal(t, model.UserActive, u.Status)
}

func TestListSeesLaterChanges(t *testing.T) {
	d := NewDirectory(seed())
	active := d.List(Filter{})

	_, err := d.Toggle(1)
	require.NoError(t, err)

	list := slices.Collect(active)
	assert.Equal(t, model.UserInactive, list[0].Status)
}
