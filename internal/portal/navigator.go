package portal

import (
	"fmt"

	"github.com/Freeeeeet/medislot/internal/model"
)

// Navigator enforces strictly sequential movement through a role's
// workflow: one step forward or back, no skipping, no cycles. Every lookup
// is keyed on (role, index) so one role can never land on another role's
// step.
type Navigator struct{}

func NewNavigator() *Navigator {
	return &Navigator{}
}

// Next returns the index after index. Stepping from the last content step
// yields the terminal index; the caller must then tear the session down.
func (n *Navigator) Next(index int) (int, error) {
	switch {
	case index <= 0 || index > TotalSteps:
		return 0, fmt.Errorf("%w: %d", ErrInvalidStep, index)
	case index == TotalSteps:
		return 0, ErrWorkflowExhausted
	}
	return index + 1, nil
}

// Prev returns the index before index. The terminal step is absorbing and
// cannot be left backwards.
func (n *Navigator) Prev(index int) (int, error) {
	switch {
	case index > TotalSteps:
		return 0, fmt.Errorf("%w: %d", ErrInvalidStep, index)
	case index == TotalSteps:
		return 0, ErrWorkflowExhausted
	case index <= 1:
		return 0, ErrWorkflowBoundary
	}
	return index - 1, nil
}

// Step resolves (role, index) to its step.
func (n *Navigator) Step(role model.Role, index int) (Step, error) {
	seq, ok := sequence(role)
	if !ok {
		return Step{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if index < 1 || index > TotalSteps {
		return Step{}, fmt.Errorf("%w: %s step %d", ErrUnknownStep, role, index)
	}

	def := seq[index-1]
	return Step{
		Role:     role,
		Index:    index,
		Key:      def.key,
		Label:    def.label,
		Route:    def.route,
		Terminal: index == TotalSteps,
	}, nil
}

// StepName is the display label of (role, index).
func (n *Navigator) StepName(role model.Role, index int) (string, error) {
	step, err := n.Step(role, index)
	if err != nil {
		return "", err
	}
	return step.Label, nil
}

// Steps returns the role's whole sequence, e.g. for a progress indicator.
func (n *Navigator) Steps(role model.Role) ([]Step, error) {
	steps := make([]Step, 0, TotalSteps)
	for i := 1; i <= TotalSteps; i++ {
		step, err := n.Step(role, i)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Current is the step the session is on.
func (n *Navigator) Current(s *State) (Step, error) {
	role, index, ok := s.position()
	if !ok {
		return Step{}, fmt.Errorf("%w: no active session", ErrAuthentication)
	}
	return n.Step(role, index)
}

// Advance moves the session one step forward. When the returned step is
// terminal the caller is expected to call SignOut right away.
func (n *Navigator) Advance(s *State) (Step, error) {
	role, index, ok := s.position()
	if !ok {
		return Step{}, fmt.Errorf("%w: no active session", ErrAuthentication)
	}

	next, err := n.Next(index)
	if err != nil {
		return Step{}, err
	}
	step, err := n.Step(role, next)
	if err != nil {
		return Step{}, err
	}
	if err := s.setStep(next); err != nil {
		return Step{}, err
	}
	return step, nil
}

// Retreat moves the session one step back.
func (n *Navigator) Retreat(s *State) (Step, error) {
	role, index, ok := s.position()
	if !ok {
		return Step{}, fmt.Errorf("%w: no active session", ErrAuthentication)
	}

	prev, err := n.Prev(index)
	if err != nil {
		return Step{}, err
	}
	step, err := n.Step(role, prev)
	if err != nil {
		return Step{}, err
	}
	if err := s.setStep(prev); err != nil {
		return Step{}, err
	}
	return step, nil
}
