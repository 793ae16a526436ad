// Package users is the in-memory account directory behind the admin
// "Manage Users" step.
package users

import (
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/Freeeeeet/medislot/internal/model"
)

// Filter narrows the directory listing. Query matches name or email,
// case-insensitive; an empty Role matches every role.
type Filter struct {
	Query string
	Role  model.Role
}

func (f Filter) matches(u model.User) bool {
	if f.Role != model.RoleNone && u.Role != f.Role {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Email), q)
}

// Directory holds one session's copy of the account list.
type Directory struct {
	mu    sync.RWMutex
	seed  []model.User
	users []model.User
}

func NewDirectory(seed []model.User) *Directory {
	d := &Directory{seed: seed}
	d.Reset()
	return d
}

// List yields the users passing f in seed order. Like slots.Registry.List
// it reads a fresh snapshot on every iteration.
func (d *Directory) List(f Filter) iter.Seq[model.User] {
	return func(yield func(model.User) bool) {
		for _, u := range d.snapshot() {
			if !f.matches(u) {
				continue
			}
			if !yield(u) {
				return
			}
		}
	}
}

func (d *Directory) Get(id int64) (model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i := d.indexOf(id)
	if i < 0 {
		return model.User{}, fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}
	return d.users[i], nil
}

// Toggle switches the user between active and inactive.
func (d *Directory) Toggle(id int64) (model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(id)
	if i < 0 {
		return model.User{}, fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}
	d.users[i].Status = d.users[i].Status.Toggled()
	return d.users[i], nil
}

// Reset restores the seed, dropping every status change.
func (d *Directory) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.users = make([]model.User, len(d.seed))
	copy(d.users, d.seed)
}

func (d *Directory) snapshot() []model.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]model.User, len(d.users))
	copy(out, d.users)
	return out
}

func (d *Directory) indexOf(id int64) int {
	for i := range d.users {
		if d.users[i].ID == id {
			return i
		}
	}
	return -1
}
