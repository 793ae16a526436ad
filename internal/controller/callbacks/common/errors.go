package common

import (
	"errors"

	"github.com/Freeeeeet/medislot/internal/notes"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/Freeeeeet/medislot/internal/service"
	"github.com/Freeeeeet/medislot/internal/slots"
	"github.com/Freeeeeet/medislot/internal/users"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

const msgUnknown = "❌ Something went wrong"

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, portal.ErrAuthentication):
		return "🔒 Please sign in first. Use /start"
	case errors.Is(err, portal.ErrSessionActive):
		return "⚠️ You are already signed in; log out to switch roles"
	case errors.Is(err, portal.ErrInvalidRole):
		return "❌ Choose a role before signing in"
	case errors.Is(err, portal.ErrWorkflowBoundary):
		return "⛔ You are already on the first step"
	case errors.Is(err, portal.ErrWorkflowExhausted):
		return "🏁 This workflow is already complete"
	case errors.Is(err, portal.ErrInvalidStep), errors.Is(err, portal.ErrUnknownStep):
		return "❌ That step does not exist"
	case errors.Is(err, slots.ErrSlotNotFound):
		return "❌ Time slot not found"
	case errors.Is(err, slots.ErrSlotUnavailable):
		return "⛔ This time slot is not available"
	case errors.Is(err, slots.ErrInvalidSlotLabel):
		return "❌ Use a time like 05:00 PM"
	case errors.Is(err, service.ErrIncompleteSelection):
		return "⚠️ Incomplete selection: pick a date, doctor and time slot"
	case errors.Is(err, service.ErrDoctorNotFound):
		return "❌ Doctor not found"
	case errors.Is(err, service.ErrPatientNotFound):
		return "❌ Patient not found"
	case errors.Is(err, users.ErrUserNotFound):
		return "❌ User not found"
	case errors.Is(err, notes.ErrEmptyNote):
		return "⚠️ Empty note: please write something before saving"
	case errors.Is(err, service.ErrForbidden):
		return "⛔ Not available for your role"
	case errors.Is(err, ErrNoMessage):
		return "❌ Could not process this message"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid data"
	default:
		return msgUnknown
	}
}
