package slots

import (
	"fmt"
	"iter"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/medislot/internal/model"
)

// labelLayout is the display format of slot times, e.g. "02:30 PM".
const labelLayout = "03:04 PM"

// Registry holds the time slots of one doctor/date context.
type Registry struct {
	mu     sync.RWMutex
	slots  []model.TimeSlot // insertion order
	lastID int64            // highest id ever issued, survives deletions
}

// NewRegistry copies seed into a fresh registry. Seed ids must be unique.
func NewRegistry(seed []model.TimeSlot) *Registry {
	r := &Registry{slots: make([]model.TimeSlot, 0, len(seed))}
	for _, s := range seed {
		r.slots = append(r.slots, s)
		if s.ID > r.lastID {
			r.lastID = s.ID
		}
	}
	return r
}

// List yields the slots matching filter in insertion order. The sequence
// reads a snapshot taken on each iteration, so it can be ranged over again
// and reflects mutations made in between.
func (r *Registry) List(filter model.Period) iter.Seq[model.TimeSlot] {
	return func(yield func(model.TimeSlot) bool) {
		for _, s := range r.snapshot() {
			if !filter.Matches(s.Period) {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}

func (r *Registry) Get(id int64) (model.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.TimeSlot{}, fmt.Errorf("%w: %d", ErrSlotNotFound, id)
	}
	return r.slots[i], nil
}

// Toggle flips the availability flag and returns the updated slot.
// The registry does not notify anyone; callers re-query.
func (r *Registry) Toggle(id int64) (model.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.TimeSlot{}, fmt.Errorf("%w: %d", ErrSlotNotFound, id)
	}
	r.slots[i].Available = !r.slots[i].Available
	return r.slots[i], nil
}

// Add appends an available slot. Its id is one above the highest id this
// registry has ever issued, so ids are never reused but may have gaps.
func (r *Registry) Add(label string) (model.TimeSlot, error) {
	label = strings.TrimSpace(label)
	period, err := PeriodOf(label)
	if err != nil {
		return model.TimeSlot{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	slot := model.TimeSlot{
		ID:        r.lastID,
		Time:      label,
		Period:    period,
		Available: true,
	}
	r.slots = append(r.slots, slot)
	return slot, nil
}

// Remove deletes the slot. Other ids are untouched.
func (r *Registry) Remove(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrSlotNotFound, id)
	}
	r.slots = append(r.slots[:i], r.slots[i+1:]...)
	return nil
}

// Select checks that the slot can be picked right now. Nothing is reserved:
// another caller may select the same slot.
func (r *Registry) Select(id int64) (model.TimeSlot, error) {
	slot, err := r.Get(id)
	if err != nil {
		return model.TimeSlot{}, err
	}
	if !slot.Available {
		return model.TimeSlot{}, fmt.Errorf("%w: %s", ErrSlotUnavailable, slot.Time)
	}
	return slot, nil
}

func (r *Registry) snapshot() []model.TimeSlot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.TimeSlot, len(r.slots))
	copy(out, r.slots)
	return out
}

func (r *Registry) indexOf(id int64) int {
	for i := range r.slots {
		if r.slots[i].ID == id {
			return i
		}
	}
	return -1
}

// PeriodOf classifies a "03:04 PM" label: before noon is morning, before
// 17:00 afternoon, the rest evening.
func PeriodOf(label string) (model.Period, error) {
	t, err := time.Parse(labelLayout, strings.ToUpper(strings.TrimSpace(label)))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlotLabel, label)
	}

	switch h := t.Hour(); {
	case h < 12:
		return model.PeriodMorning, nil
	case h < 17:
		return model.PeriodAfternoon, nil
	default:
		return model.PeriodEvening, nil
	}
}
