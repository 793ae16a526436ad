package portal

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/google/uuid"
)

// DefaultSignInLatency mimics the round-trip of a real login request.
const DefaultSignInLatency = time.Second

// State is the single source of truth for who is acting, as what role and
// at which step. One State per portal session; nothing here is global.
//
// The mutex only keeps field access memory-safe when a transport delivers
// updates on several goroutines. Logical ordering is not enforced: two
// overlapping SignIn calls both succeed and the last one to resolve wins.
type State struct {
	mu      sync.RWMutex
	role    model.Role
	session *model.Session
	step    int

	latency time.Duration
	now     func() time.Time
	newID   func() uuid.UUID
}

type Option func(*State)

// WithSignInLatency overrides the simulated sign-in delay. Zero disables it.
func WithSignInLatency(d time.Duration) Option {
	return func(s *State) {
		if d >= 0 {
			s.latency = d
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		if now != nil {
			s.now = now
		}
	}
}

func NewState(opts ...Option) *State {
	s := &State{
		step:    1,
		latency: DefaultSignInLatency,
		now:     time.Now,
		newID:   uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectRole records the role the next sign-in will bind to.
// The role cannot change while a session is active.
func (s *State) SelectRole(role model.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		return fmt.Errorf("%w: bound to %s", ErrSessionActive, s.session.Role)
	}
	s.role = role
	return nil
}

// SignIn simulates a login round-trip and opens a session for the selected
// role. Any non-empty credential is accepted.
//
// The wait is not cancellable: a caller that gives up early still gets its
// session created once the delay elapses.
func (s *State) SignIn(email, credential string) (model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(credential) == "" {
		return model.Session{}, fmt.Errorf("%w: email and password are required", ErrAuthentication)
	}

	s.mu.RLock()
	role := s.role
	s.mu.RUnlock()
	if !role.Valid() {
		return model.Session{}, fmt.Errorf("%w: select a role before signing in", ErrInvalidRole)
	}

	if s.latency > 0 {
		time.Sleep(s.latency)
	}

	sess := &model.Session{
		ID:         s.newID(),
		Name:       displayName(email),
		Email:      email,
		Role:       role,
		SignedInAt: s.now(),
	}

	s.mu.Lock()
	s.session = sess
	s.step = 1
	s.mu.Unlock()

	return *sess, nil
}

// SignOut drops the session and the pending role and resets the step.
// Safe to call at any time.
func (s *State) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	s.role = model.RoleNone
	s.step = 1
}

// Session returns a copy of the active session.
func (s *State) Session() (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return model.Session{}, false
	}
	return *s.session, true
}

func (s *State) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// Role returns the session's role, or the pending role before sign-in.
func (s *State) Role() model.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session != nil {
		return s.session.Role
	}
	return s.role
}

func (s *State) CurrentStep() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.step
}

// TotalSteps is the same for every role.
func (s *State) TotalSteps() int {
	return TotalSteps
}

// setStep is reachable only through Navigator. Upper bounds are the
// navigator's business.
func (s *State) setStep(index int) error {
	if index <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidStep, index)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = index
	return nil
}

// position reads role and step under one lock so a transition never mixes
// the role of one session with the index of another.
func (s *State) position() (model.Role, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return model.RoleNone, s.step, false
	}
	return s.session.Role, s.step, true
}

func displayName(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
