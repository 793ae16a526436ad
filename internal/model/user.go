package model

// UserStatus is an account's standing on the admin "Manage Users" step.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// Toggled returns the opposite status.
func (s UserStatus) Toggled() UserStatus {
	if s == UserActive {
		return UserInactive
	}
	return UserActive
}

// User is a platform account as the admin sees it. The directory is demo
// data: editing it never affects who can sign in.
type User struct {
	ID       int64      `json:"id" yaml:"id"`
	Name     string     `json:"name" yaml:"name"`
	Email    string     `json:"email" yaml:"email"`
	Role     Role       `json:"role" yaml:"role"`
	Status   UserStatus `json:"status" yaml:"status"`
	JoinedOn string     `json:"joined_on" yaml:"joined_on"` // 2024-01-15
}

func (u User) Active() bool {
	return u.Status == UserActive
}
