package model

import (
	"time"

	"github.com/google/uuid"
)

// Session describes the signed-in actor of a portal session.
type Session struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"` // email local part
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	SignedInAt time.Time `json:"signed_in_at"`
}
