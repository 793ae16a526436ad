package service

import "errors"

var (
	ErrIncompleteSelection = errors.New("select a date, doctor and time slot")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrForbidden           = errors.New("not allowed for this role")
	ErrPatientNotFound     = errors.New("patient not found")
)
