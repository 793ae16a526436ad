// Package notes keeps the visit notes a doctor writes during one session.
package notes

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/medislot/internal/model"
)

// Book stores notes per patient in the order they were written.
type Book struct {
	mu     sync.RWMutex
	notes  []model.Note
	lastID int64
	now    func() time.Time
}

type Option func(*Book)

// WithClock replaces time.Now for note timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Book) {
		if now != nil {
			b.now = now
		}
	}
}

func NewBook(opts ...Option) *Book {
	b := &Book{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add saves a note for patientID. Blank bodies are rejected with
// ErrEmptyNote; surrounding whitespace is trimmed.
func (b *Book) Add(patientID int64, body string) (model.Note, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return model.Note{}, fmt.Errorf("%w: patient %d", ErrEmptyNote, patientID)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastID++
	n := model.Note{
		ID:        b.lastID,
		PatientID: patientID,
		Body:      body,
		CreatedAt: b.now(),
	}
	b.notes = append(b.notes, n)
	return n, nil
}

// For returns the notes of one patient, oldest first.
func (b *Book) For(patientID int64) []model.Note {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []model.Note
	for _, n := range b.notes {
		if n.PatientID == patientID {
			out = append(out, n)
		}
	}
	return out
}

func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.notes)
}

// Reset drops every note.
func (b *Book) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notes = nil
	b.lastID = 0
}
