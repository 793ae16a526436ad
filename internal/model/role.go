package model

import "strings"

// Role selects which workflow a portal user walks through.
type Role string

const (
	RoleNone    Role = "" // not chosen yet
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Roles lists the selectable roles in display order.
var Roles = []Role{RolePatient, RoleDoctor, RoleAdmin}

// ParseRole converts user input ("Doctor", " admin ") into a Role.
// The second result is false for anything outside the enum.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Valid reports whether r is one of the three selectable roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// Title returns the capitalised role name used in headers.
func (r Role) Title() string {
	switch r {
	case RolePatient:
		return "Patient"
	case RoleDoctor:
		return "Doctor"
	case RoleAdmin:
		return "Admin"
	}
	return "Guest"
}

func (r Role) String() string {
	return string(r)
}
