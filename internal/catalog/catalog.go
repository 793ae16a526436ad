// Package catalog loads the static demo data the portal is seeded with:
// doctors, bookable time slots and the content lines of each step.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/medislot/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

const dateLayout = "2006-01-02"

type Catalog struct {
	Doctors           []model.Doctor      `yaml:"doctors"`
	AdminDates        []string            `yaml:"admin_dates"`
	BookingWindowDays int                 `yaml:"booking_window_days"`
	TimeSlots         []model.TimeSlot    `yaml:"time_slots"`
	DefaultNewSlot    string              `yaml:"default_new_slot"`
	Users             []model.User        `yaml:"users"`
	Patients          []model.Patient     `yaml:"patients"`
	Content           map[string][]string `yaml:"content"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultSeed)
}

// Load reads a catalog from path, falling back to the embedded one when
// path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Doctors) == 0 {
		return fmt.Errorf("catalog: no doctors")
	}

	seen := make(map[int64]bool, len(c.TimeSlots))
	for _, s := range c.TimeSlots {
		if seen[s.ID] {
			return fmt.Errorf("catalog: duplicate slot id %d", s.ID)
		}
		seen[s.ID] = true
		if s.Period == model.PeriodAll {
			return fmt.Errorf("catalog: slot %d uses filter-only period %q", s.ID, s.Period)
		}
		if _, ok := model.ParsePeriod(string(s.Period)); !ok {
			return fmt.Errorf("catalog: slot %d has unknown period %q", s.ID, s.Period)
		}
	}

	users := make(map[int64]bool, len(c.Users))
	for _, u := range c.Users {
		if users[u.ID] {
			return fmt.Errorf("catalog: duplicate user id %d", u.ID)
		}
		users[u.ID] = true
		if !u.Role.Valid() {
			return fmt.Errorf("catalog: user %d has unknown role %q", u.ID, u.Role)
		}
		if u.Status != model.UserActive && u.Status != model.UserInactive {
			return fmt.Errorf("catalog: user %d has unknown status %q", u.ID, u.Status)
		}
	}

	patients := make(map[int64]bool, len(c.Patients))
	for _, p := range c.Patients {
		if patients[p.ID] {
			return fmt.Errorf("catalog: duplicate patient id %d", p.ID)
		}
		patients[p.ID] = true
	}

	for _, d := range c.AdminDates {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return fmt.Errorf("catalog: bad admin date %q: %w", d, err)
		}
	}
	if c.BookingWindowDays <= 0 {
		c.BookingWindowDays = 7
	}
	if c.DefaultNewSlot == "" {
		c.DefaultNewSlot = "05:00 PM"
	}
	return nil
}

// Doctor looks a doctor up by id.
func (c *Catalog) Doctor(id int64) (model.Doctor, bool) {
	for _, d := range c.Doctors {
		if d.ID == id {
			return d, true
		}
	}
	return model.Doctor{}, false
}

// Patient looks a patient up by id.
func (c *Catalog) Patient(id int64) (model.Patient, bool) {
	for _, p := range c.Patients {
		if p.ID == id {
			return p, true
		}
	}
	return model.Patient{}, false
}

// UserSeed returns a copy of the user directory seed.
func (c *Catalog) UserSeed() []model.User {
	out := make([]model.User, len(c.Users))
	copy(out, c.Users)
	return out
}

// Seed returns a copy of the slot seed.
func (c *Catalog) Seed() []model.TimeSlot {
	out := make([]model.TimeSlot, len(c.TimeSlots))
	copy(out, c.TimeSlots)
	return out
}

// ManagedDates parses the admin date strip.
func (c *Catalog) ManagedDates() []time.Time {
	out := make([]time.Time, 0, len(c.AdminDates))
	for _, d := range c.AdminDates {
		t, _ := time.Parse(dateLayout, d) // validated on load
		out = append(out, t)
	}
	return out
}

// BookingDates lists the days a patient can book starting from today.
func (c *Catalog) BookingDates(today time.Time) []time.Time {
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, today.Location())

	out := make([]time.Time, 0, c.BookingWindowDays)
	for i := 0; i < c.BookingWindowDays; i++ {
		out = append(out, start.AddDate(0, 0, i))
	}
	return out
}

// Lines returns the content of a step, keyed "<role>.<step key>".
func (c *Catalog) Lines(role model.Role, stepKey string) []string {
	return c.Content[string(role)+"."+stepKey]
}
