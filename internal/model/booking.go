package model

import "time"

// BookingSelection is the patient's in-progress choice on the booking step.
// Zero values mean "not chosen yet".
type BookingSelection struct {
	Date     time.Time `json:"date"`
	DoctorID int64     `json:"doctor_id"`
	SlotID   int64     `json:"slot_id"`
}

// Complete checks that date, doctor and slot are all chosen
func (s BookingSelection) Complete() bool {
	return !s.Date.IsZero() && s.DoctorID != 0 && s.SlotID != 0
}

// Booking is a confirmed selection. It lives only as long as the session.
type Booking struct {
	Date     time.Time `json:"date"`
	Doctor   Doctor    `json:"doctor"`
	Slot     TimeSlot  `json:"slot"`
	BookedBy string    `json:"booked_by"`
}
