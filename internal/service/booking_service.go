package service

import (
	"fmt"
	"slices"
	"time"

	"github.com/Freeeeeet/medislot/internal/catalog"
	"github.com/Freeeeeet/medislot/internal/metrics"
	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/Freeeeeet/medislot/internal/slots"
	"go.uber.org/zap"
)

// SlotContext addresses one doctor's slots on one day.
type SlotContext struct {
	DoctorID int64
	Date     time.Time
}

type BookingService struct {
	catalog  *catalog.Catalog
	recorder metrics.Recorder
	logger   *zap.Logger
}

func NewBookingService(cat *catalog.Catalog, recorder metrics.Recorder, logger *zap.Logger) *BookingService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &BookingService{
		catalog:  cat,
		recorder: recorder,
		logger:   logger,
	}
}

func (s *BookingService) Doctors() []model.Doctor {
	return s.catalog.Doctors
}

func (s *BookingService) Doctor(id int64) (model.Doctor, error) {
	d, ok := s.catalog.Doctor(id)
	if !ok {
		return model.Doctor{}, fmt.Errorf("%w: %d", ErrDoctorNotFound, id)
	}
	return d, nil
}

// BookingDates are the days a patient can pick, starting today.
func (s *BookingService) BookingDates(today time.Time) []time.Time {
	return s.catalog.BookingDates(today)
}

// ManagedDates are the days shown on the admin slot screen.
func (s *BookingService) ManagedDates() []time.Time {
	return s.catalog.ManagedDates()
}

// DefaultNewSlot is the label used when an admin adds a slot without one.
func (s *BookingService) DefaultNewSlot() string {
	return s.catalog.DefaultNewSlot
}

// Slots lists the context's slots that pass filter, in insertion order.
func (s *BookingService) Slots(ws *Workspace, sc SlotContext, filter model.Period) ([]model.TimeSlot, error) {
	reg, err := s.registry(ws, sc)
	if err != nil {
		return nil, err
	}
	return slices.Collect(reg.List(filter)), nil
}

// Toggle flips a slot between available and blocked. Admin only.
func (s *BookingService) Toggle(ws *Workspace, sc SlotContext, slotID int64) (model.TimeSlot, error) {
	reg, err := s.managed(ws, sc)
	if err != nil {
		return model.TimeSlot{}, err
	}

	slot, err := reg.Toggle(slotID)
	if err != nil {
		s.recorder.RecordSlotMutation("toggle", "error")
		return model.TimeSlot{}, fmt.Errorf("toggle slot: %w", err)
	}
	s.recorder.RecordSlotMutation("toggle", "ok")

	s.logger.Info("Slot availability changed",
		zap.Int64("doctor_id", sc.DoctorID),
		zap.Int64("slot_id", slot.ID),
		zap.Bool("available", slot.Available))

	return slot, nil
}

// Add creates an available slot. An empty label falls back to the
// catalog default. Admin only.
func (s *BookingService) Add(ws *Workspace, sc SlotContext, label string) (model.TimeSlot, error) {
	reg, err := s.managed(ws, sc)
	if err != nil {
		return model.TimeSlot{}, err
	}

	if label == "" {
		label = s.catalog.DefaultNewSlot
	}

	slot, err := reg.Add(label)
	if err != nil {
		s.recorder.RecordSlotMutation("add", "error")
		return model.TimeSlot{}, fmt.Errorf("add slot: %w", err)
	}
	s.recorder.RecordSlotMutation("add", "ok")

	s.logger.Info("Slot added",
		zap.Int64("doctor_id", sc.DoctorID),
		zap.Int64("slot_id", slot.ID),
		zap.String("time", slot.Time))

	return slot, nil
}

// Remove deletes a slot. Admin only.
func (s *BookingService) Remove(ws *Workspace, sc SlotContext, slotID int64) error {
	reg, err := s.managed(ws, sc)
	if err != nil {
		return err
	}

	if err := reg.Remove(slotID); err != nil {
		s.recorder.RecordSlotMutation("remove", "error")
		return fmt.Errorf("remove slot: %w", err)
	}
	s.recorder.RecordSlotMutation("remove", "ok")

	s.logger.Info("Slot removed",
		zap.Int64("doctor_id", sc.DoctorID),
		zap.Int64("slot_id", slotID))

	return nil
}

// Select checks that a patient may pick the slot right now.
func (s *BookingService) Select(ws *Workspace, sc SlotContext, slotID int64) (model.TimeSlot, error) {
	reg, err := s.booking(ws, sc)
	if err != nil {
		return model.TimeSlot{}, err
	}
	return reg.Select(slotID)
}

// Confirm turns a complete selection into a booking. The slot must still be
// available at confirmation time; nothing is reserved afterwards.
func (s *BookingService) Confirm(ws *Workspace, sel model.BookingSelection) (model.Booking, error) {
	if !sel.Complete() {
		s.recorder.RecordBooking("incomplete")
		return model.Booking{}, ErrIncompleteSelection
	}

	sc := SlotContext{DoctorID: sel.DoctorID, Date: sel.Date}
	reg, err := s.booking(ws, sc)
	if err != nil {
		s.recorder.RecordBooking("error")
		return model.Booking{}, err
	}

	slot, err := reg.Select(sel.SlotID)
	if err != nil {
		s.recorder.RecordBooking("unavailable")
		return model.Booking{}, fmt.Errorf("confirm booking: %w", err)
	}

	doctor, _ := s.catalog.Doctor(sel.DoctorID) // checked by booking()
	sess, _ := ws.State.Session()

	s.recorder.RecordBooking("ok")
	s.logger.Info("Appointment booked",
		zap.String("session_id", sess.ID.String()),
		zap.Int64("doctor_id", doctor.ID),
		zap.Int64("slot_id", slot.ID),
		zap.String("date", sel.Date.Format("2006-01-02")))

	return model.Booking{
		Date:     sel.Date,
		Doctor:   doctor,
		Slot:     slot,
		BookedBy: sess.Name,
	}, nil
}

// booking resolves the registry for a patient session.
func (s *BookingService) booking(ws *Workspace, sc SlotContext) (*slots.Registry, error) {
	if err := requireRole(ws, model.RolePatient); err != nil {
		return nil, err
	}
	return s.registry(ws, sc)
}

// managed resolves the registry for an admin session.
func (s *BookingService) managed(ws *Workspace, sc SlotContext) (*slots.Registry, error) {
	if err := requireRole(ws, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.registry(ws, sc)
}

func (s *BookingService) registry(ws *Workspace, sc SlotContext) (*slots.Registry, error) {
	if _, ok := s.catalog.Doctor(sc.DoctorID); !ok {
		return nil, fmt.Errorf("%w: %d", ErrDoctorNotFound, sc.DoctorID)
	}
	if sc.Date.IsZero() {
		return nil, ErrIncompleteSelection
	}
	return ws.Slots.For(sc.DoctorID, sc.Date), nil
}

func requireRole(ws *Workspace, role model.Role) error {
	sess, ok := ws.State.Session()
	if !ok {
		return fmt.Errorf("%w: no active session", portal.ErrAuthentication)
	}
	if sess.Role != role {
		return fmt.Errorf("%w: %s", ErrForbidden, sess.Role)
	}
	return nil
}
