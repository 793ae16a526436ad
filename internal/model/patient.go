package model

import "time"

type Patient struct {
	ID        int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Age       int    `json:"age" yaml:"age"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	LastVisit string `json:"last_visit" yaml:"last_visit"`
}

// Note is a doctor's visit note about one patient. Notes live only as
// long as the session that wrote them.
type Note struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patient_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
