package service

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/medislot/internal/catalog"
	"github.com/Freeeeeet/medislot/internal/metrics"
	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/notes"
	"go.uber.org/zap"
)

// NoteService backs the doctor "Notes" step.
type NoteService struct {
	catalog  *catalog.Catalog
	recorder metrics.Recorder
	logger   *zap.Logger
}

func NewNoteService(cat *catalog.Catalog, recorder metrics.Recorder, logger *zap.Logger) *NoteService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &NoteService{
		catalog:  cat,
		recorder: recorder,
		logger:   logger,
	}
}

func (s *NoteService) Patients() []model.Patient {
	return s.catalog.Patients
}

func (s *NoteService) Patient(id int64) (model.Patient, error) {
	p, ok := s.catalog.Patient(id)
	if !ok {
		return model.Patient{}, fmt.Errorf("%w: %d", ErrPatientNotFound, id)
	}
	return p, nil
}

// Notes lists what this session wrote about a patient. Doctor only.
func (s *NoteService) Notes(ws *Workspace, patientID int64) ([]model.Note, error) {
	if err := requireRole(ws, model.RoleDoctor); err != nil {
		return nil, err
	}
	if _, err := s.Patient(patientID); err != nil {
		return nil, err
	}
	return ws.Notes.For(patientID), nil
}

// Save adds a note to the patient's record. Doctor only.
func (s *NoteService) Save(ws *Workspace, patientID int64, body string) (model.Note, error) {
	if err := requireRole(ws, model.RoleDoctor); err != nil {
		return model.Note{}, err
	}
	if _, err := s.Patient(patientID); err != nil {
		return model.Note{}, err
	}

	n, err := ws.Notes.Add(patientID, body)
	if err != nil {
		result := "error"
		if errors.Is(err, notes.ErrEmptyNote) {
			result = "empty"
		}
		s.recorder.RecordNote(result)
		return model.Note{}, fmt.Errorf("save note: %w", err)
	}
	s.recorder.RecordNote("ok")

	// the body itself is never logged
	s.logger.Info("Note saved",
		zap.Int64("patient_id", patientID),
		zap.Int64("note_id", n.ID),
		zap.Int("length", len(n.Body)))

	return n, nil
}
