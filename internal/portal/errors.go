package portal

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRole       = errors.New("invalid role")
	ErrAuthentication    = errors.New("authentication failed")
	ErrInvalidStep       = errors.New("invalid step index")
	ErrWorkflowExhausted = errors.New("workflow already complete")
	ErrWorkflowBoundary  = errors.New("already at the first step")
	ErrUnknownStep       = errors.New("unknown step")
)

// ErrSessionActive is returned by SelectRole while a session is open.
// It still matches ErrInvalidRole.
var ErrSessionActive = fmt.Errorf("%w: session already active", ErrInvalidRole)
