package portal

import "github.com/Freeeeeet/medislot/internal/model"

// TotalSteps is the length of every role's workflow: four content steps
// followed by the terminal "complete" step.
const TotalSteps = 5

// ExitRoute is where every workflow ends up after teardown.
const ExitRoute = "/exit"

// Keys of the steps that carry interactive content.
const (
	KeyBookAppointment = "book"
	KeyManageSlots     = "slots"
	KeyManageUsers     = "users"
	KeyNotes           = "notes"
)

// Step is one stage of a role's workflow. Identity is (Role, Index).
type Step struct {
	Role     model.Role
	Index    int // 1..TotalSteps
	Key      string
	Label    string
	Route    string
	Terminal bool
}

type stepDef struct {
	key   string
	label string
	route string
}

var (
	patientSteps = [TotalSteps]stepDef{
		{KeyBookAppointment, "Book Appointment", "/patient/onboarding"},
		{"records", "Medical Records", "/patient/onboarding/records"},
		{"prescriptions", "Prescriptions", "/patient/onboarding/prescriptions"},
		{"notifications", "Notifications", "/patient/onboarding/notifications"},
		{"complete", "Complete", ExitRoute},
	}
	doctorSteps = [TotalSteps]stepDef{
		{"appointments", "View Appointments", "/doctor/onboarding"},
		{"patients", "Patient Data", "/doctor/onboarding/patients"},
		{"prescriptions", "Prescriptions", "/doctor/onboarding/prescriptions"},
		{KeyNotes, "Notes", "/doctor/onboarding/notes"},
		{"complete", "Complete", ExitRoute},
	}
	adminSteps = [TotalSteps]stepDef{
		{KeyManageUsers, "Manage Users", "/admin/onboarding"},
		{KeyManageSlots, "Manage Slots", "/admin/onboarding/slots"},
		{"reports", "Reports", "/admin/onboarding/reports"},
		{"analytics", "Analytics", "/admin/onboarding/analytics"},
		{"complete", "Complete", ExitRoute},
	}
)

// sequence is the single dispatch point from role to step table.
func sequence(role model.Role) (*[TotalSteps]stepDef, bool) {
	switch role {
	case model.RolePatient:
		return &patientSteps, true
	case model.RoleDoctor:
		return &doctorSteps, true
	case model.RoleAdmin:
		return &adminSteps, true
	}
	return nil, false
}
