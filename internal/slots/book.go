package slots

import (
	"sync"
	"time"

	"github.com/Freeeeeet/medislot/internal/model"
)

// dateLayout keys a context by calendar day.
const dateLayout = "2006-01-02"

type contextKey struct {
	doctorID int64
	date     string
}

// Book hands out one Registry per doctor/date context, seeding each on
// first use. A Book belongs to one portal session and is dropped with it.
type Book struct {
	mu         sync.Mutex
	seed       []model.TimeSlot
	registries map[contextKey]*Registry
}

func NewBook(seed []model.TimeSlot) *Book {
	return &Book{
		seed:       seed,
		registries: make(map[contextKey]*Registry),
	}
}

// For returns the registry of doctorID on date, creating it from the seed.
func (b *Book) For(doctorID int64, date time.Time) *Registry {
	key := contextKey{doctorID: doctorID, date: date.Format(dateLayout)}

	b.mu.Lock()
	defer b.mu.Unlock()

	r, ok := b.registries[key]
	if !ok {
		r = NewRegistry(b.seed)
		b.registries[key] = r
	}
	return r
}

// Reset drops every context; the next For starts from the seed again.
func (b *Book) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.registries = make(map[contextKey]*Registry)
}
