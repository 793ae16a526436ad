package portal

import (
	"testing"
	"time"

	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState() *State {
	return NewState(WithSignInLatency(0))
}

func TestSelectRole(t *testing.T) {
	s := newTestState()

	for _, role := range model.Roles {
		require.NoError(t, s.SelectRole(role))
		assert.Equal(t, role, s.Role())
	}

	for _, bad := range []model.Role{model.RoleNone, "nurse", "Doctor"} {
		err := s.SelectRole(bad)
		assert.ErrorIs(t, err, ErrInvalidRole, "role %q", bad)
	}
	assert.Equal(t, model.RoleAdmin, s.Role(), "failed selection must not change the pending role")
}

func TestSignInCreatesSessionForSelectedRole(t *testing.T) {
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	s := NewState(WithSignInLatency(0), WithClock(func() time.Time { return now }))

	require.NoError(t, s.SelectRole(model.RoleDoctor))
	sess, err := s.SignIn("a@b.com", "x")
	require.NoError(t, err)

	assert.Equal(t, model.RoleDoctor, sess.Role)
	assert.Equal(t, "a", sess.Name)
	assert.Equal(t, "a@b.com", sess.Email)
	assert.Equal(t, now, sess.SignedInAt)
	assert.NotEmpty(t, sess.ID.String())
	assert.Equal(t, 1, s.CurrentStep())
	assert.True(t, s.Authenticated())

	got, ok := s.Session()
	require.True(t, ok)
	assert.Equal(t, sess, got)
}

func TestSignInRequiresFields(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.SelectRole(model.RolePatient))

	cases := []struct{ email, credential string }{
		{"", "secret"},
		{"a@b.com", ""},
		{"   ", "secret"},
		{"a@b.com", "  "},
	}
	for _, c := range cases {
		_, err := s.SignIn(c.email, c.credential)
		assert.ErrorIs(t, err, ErrAuthentication)
	}
	assert.False(t, s.Authenticated())
}

func TestSignInRequiresRole(t *testing.T) {
	s := newTestState()

	_, err := s.SignIn("a@b.com", "x")
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.NotErrorIs(t, err, ErrSessionActive)
	assert.False(t, s.Authenticated())
}

func TestRoleIsFixedWhileSignedIn(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.SelectRole(model.RolePatient))
	_, err := s.SignIn("p@example.com", "pw")
	require.NoError(t, err)

	err = s.SelectRole(model.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.ErrorIs(t, err, ErrSessionActive)
	assert.Equal(t, model.RolePatient, s.Role())
}

func TestSignInWaitsForLatency(t *testing.T) {
	s := NewState(WithSignInLatency(20 * time.Millisecond))
	require.NoError(t, s.SelectRole(model.RoleAdmin))

	start := time.Now()
	_, err := s.SignIn("admin@medislot.test", "pw")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestOverlappingSignInLastWins(t *testing.T) {
	s := NewState(WithSignInLatency(10 * time.Millisecond))
	require.NoError(t, s.SelectRole(model.RolePatient))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.SignIn("first@example.com", "pw")
	}()
	<-done
	_, err := s.SignIn("second@example.com", "pw")
	require.NoError(t, err)

	sess, ok := s.Session()
	require.True(t, ok)
	assert.Equal(t, "second@example.com", sess.Email)
}

func TestSignOutIsIdempotent(t *testing.T) {
	s := newTestState()
	s.SignOut()
	assert.False(t, s.Authenticated())
	assert.Equal(t, 1, s.CurrentStep())

	require.NoError(t, s.SelectRole(model.RoleDoctor))
	_, err := s.SignIn("d@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, s.setStep(3))

	s.SignOut()
	s.SignOut()
	assert.False(t, s.Authenticated())
	assert.Equal(t, 1, s.CurrentStep())
	assert.Equal(t, model.RoleNone, s.Role())
	_, ok := s.Session()
	assert.False(t, ok)
}

func TestSetStepRejectsNonPositive(t *testing.T) {
	s := newTestState()
	assert.ErrorIs(t, s.setStep(0), ErrInvalidStep)
	assert.ErrorIs(t, s.setStep(-2), ErrInvalidStep)
	assert.Equal(t, 1, s.CurrentStep())
	assert.Equal(t, TotalSteps, s.TotalSteps())
}
