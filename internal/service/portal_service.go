package service

import (
	"errors"
	"time"

	"github.com/Freeeeeet/medislot/internal/catalog"
	"github.com/Freeeeeet/medislot/internal/metrics"
	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/notes"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/Freeeeeet/medislot/internal/slots"
	"github.com/Freeeeeet/medislot/internal/users"
	"go.uber.org/zap"
)

// Workspace is everything one portal session owns: its state machine, the
// slot book, the admin's user directory and the doctor's notes. Nothing in
// it outlives the session.
type Workspace struct {
	State *portal.State
	Slots *slots.Book
	Users *users.Directory
	Notes *notes.Book
}

// reset drops everything the previous session changed.
func (ws *Workspace) reset() {
	ws.Slots.Reset()
	ws.Users.Reset()
	ws.Notes.Reset()
}

// Transition is the outcome of Advance.
type Transition struct {
	Step portal.Step
	// Completed is set when the terminal step was reached and the session
	// has already been torn down.
	Completed bool
}

// View is a read-only picture of a workspace for presentation layers.
type View struct {
	Role          model.Role
	Session       model.Session
	Authenticated bool
	Step          portal.Step
	Steps         []portal.Step
}

// At reports whether the view is signed in as role and sits on the step
// with the given key.
func (v View) At(role model.Role, stepKey string) bool {
	return v.Authenticated && v.Role == role && v.Step.Key == stepKey
}

type PortalService struct {
	catalog  *catalog.Catalog
	nav      *portal.Navigator
	latency  time.Duration
	recorder metrics.Recorder
	logger   *zap.Logger
}

func NewPortalService(
	cat *catalog.Catalog,
	nav *portal.Navigator,
	signInLatency time.Duration,
	recorder metrics.Recorder,
	logger *zap.Logger,
) *PortalService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &PortalService{
		catalog:  cat,
		nav:      nav,
		latency:  signInLatency,
		recorder: recorder,
		logger:   logger,
	}
}

// NewWorkspace starts an empty, signed-out workspace.
func (s *PortalService) NewWorkspace() *Workspace {
	return &Workspace{
		State: portal.NewState(portal.WithSignInLatency(s.latency)),
		Slots: slots.NewBook(s.catalog.Seed()),
		Users: users.NewDirectory(s.catalog.UserSeed()),
		Notes: notes.NewBook(),
	}
}

func (s *PortalService) Navigator() *portal.Navigator {
	return s.nav
}

// SelectRole records the role chosen on the role screen.
func (s *PortalService) SelectRole(ws *Workspace, role model.Role) error {
	if err := ws.State.SelectRole(role); err != nil {
		s.logger.Warn("Role selection rejected",
			zap.String("role", string(role)),
			zap.Error(err))
		return err
	}

	s.logger.Info("Role selected", zap.String("role", string(role)))
	return nil
}

// SignIn blocks for the simulated latency and opens the session.
func (s *PortalService) SignIn(ws *Workspace, email, password string) (model.Session, error) {
	role := ws.State.Role()

	sess, err := ws.State.SignIn(email, password)
	if err != nil {
		s.recorder.RecordSignIn(role.String(), "error")
		s.logger.Warn("Sign-in failed",
			zap.String("role", string(role)),
			zap.Error(err))
		return model.Session{}, err
	}

	// fresh session, fresh data
	ws.reset()

	s.recorder.RecordSignIn(sess.Role.String(), "ok")
	s.logger.Info("User signed in",
		zap.String("session_id", sess.ID.String()),
		zap.String("role", string(sess.Role)),
		zap.String("name", sess.Name))

	return sess, nil
}

// Advance moves to the next step. Reaching the terminal step tears the
// session down immediately.
func (s *PortalService) Advance(ws *Workspace) (Transition, error) {
	role := ws.State.Role()

	step, err := s.nav.Advance(ws.State)
	if err != nil {
		s.logRejected("advance", role, ws.State.CurrentStep(), err)
		return Transition{}, err
	}
	s.recorder.RecordTransition(role.String(), "advance")

	if step.Terminal {
		s.SignOut(ws)
		s.logger.Info("Workflow completed", zap.String("role", string(role)))
		return Transition{Step: step, Completed: true}, nil
	}

	s.logger.Debug("Step advanced",
		zap.String("role", string(role)),
		zap.Int("step", step.Index),
		zap.String("route", step.Route))

	return Transition{Step: step}, nil
}

// Retreat moves one step back.
func (s *PortalService) Retreat(ws *Workspace) (portal.Step, error) {
	role := ws.State.Role()

	step, err := s.nav.Retreat(ws.State)
	if err != nil {
		s.logRejected("retreat", role, ws.State.CurrentStep(), err)
		return portal.Step{}, err
	}
	s.recorder.RecordTransition(role.String(), "retreat")

	s.logger.Debug("Step retreated",
		zap.String("role", string(role)),
		zap.Int("step", step.Index))

	return step, nil
}

// SignOut ends the session from any step. Idempotent.
func (s *PortalService) SignOut(ws *Workspace) {
	sess, ok := ws.State.Session()
	ws.State.SignOut()
	ws.reset()

	if ok {
		s.logger.Info("User signed out",
			zap.String("session_id", sess.ID.String()),
			zap.String("role", string(sess.Role)))
	}
}

// Snapshot describes the workspace for rendering.
func (s *PortalService) Snapshot(ws *Workspace) View {
	v := View{Role: ws.State.Role()}

	sess, ok := ws.State.Session()
	if !ok {
		return v
	}
	v.Session = sess
	v.Authenticated = true

	// both lookups are keyed on the session's own role and cannot fail
	// for a live session
	v.Step, _ = s.nav.Current(ws.State)
	v.Steps, _ = s.nav.Steps(sess.Role)
	return v
}

// Lines is the static content of a step.
func (s *PortalService) Lines(step portal.Step) []string {
	return s.catalog.Lines(step.Role, step.Key)
}

func (s *PortalService) logRejected(op string, role model.Role, index int, err error) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("role", string(role)),
		zap.Int("step", index),
		zap.Error(err),
	}
	if errors.Is(err, portal.ErrAuthentication) {
		s.logger.Warn("Transition without session", fields...)
		return
	}
	s.logger.Info("Transition rejected", fields...)
}
