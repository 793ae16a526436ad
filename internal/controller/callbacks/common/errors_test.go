package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/medislot/internal/notes"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/Freeeeeet/medislot/internal/service"
	"github.com/Freeeeeet/medislot/internal/slots"
	"github.com/Freeeeeet/medislot/internal/users"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{portal.ErrAuthentication, "sign in first"},
		{portal.ErrInvalidRole, "Choose a role"},
		{fmt.Errorf("%w: bound to admin", portal.ErrSessionActive), "already signed in"},
		{fmt.Errorf("advance: %w", portal.ErrWorkflowBoundary), "first step"},
		{portal.ErrWorkflowExhausted, "already complete"},
		{fmt.Errorf("toggle slot: %w", slots.ErrSlotNotFound), "not found"},
		{fmt.Errorf("confirm booking: %w", slots.ErrSlotUnavailable), "not available"},
		{slots.ErrInvalidSlotLabel, "05:00 PM"},
		{service.ErrIncompleteSelection, "Incomplete selection"},
		{service.ErrForbidden, "your role"},
		{fmt.Errorf("toggle user: %w", users.ErrUserNotFound), "User not found"},
		{fmt.Errorf("save note: %w", notes.ErrEmptyNote), "Empty note"},
		{service.ErrPatientNotFound, "Patient not found"},
		{errors.New("boom"), "Something went wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Contains(t, ErrorMessage(tt.err), tt.want)
		})
	}
}
