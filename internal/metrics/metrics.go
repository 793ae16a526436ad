// Package metrics exposes portal counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the service layer reports to.
type Recorder interface {
	RecordSignIn(role, result string)
	RecordTransition(role, direction string)
	RecordSlotMutation(op, result string)
	RecordBooking(result string)
	RecordUserStatusChange(result string)
	RecordNote(result string)
}

type Collector struct {
	signIns     *prometheus.CounterVec
	transitions *prometheus.CounterVec
	slotOps     *prometheus.CounterVec
	bookings    *prometheus.CounterVec
	userStatus  *prometheus.CounterVec
	notes       *prometheus.CounterVec
}

// NewCollector creates the counters and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medislot_signins_total",
			Help: "Sign-in attempts by role and result.",
		}, []string{"role", "result"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medislot_step_transitions_total",
			Help: "Workflow step transitions by role and direction.",
		}, []string{"role", "direction"}),
		slotOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medislot_slot_mutations_total",
			Help: "Slot registry operations by kind and result.",
		}, []string{"op", "result"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medislot_bookings_total",
			Help: "Booking confirmations by result.",
		}, []string{"result"}),
		userStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medislot_user_status_changes_total",
			Help: "Admin user activation toggles by result.",
		}, []string{"result"}),
		notes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medislot_notes_total",
			Help: "Doctor visit notes by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(c.signIns, c.transitions, c.slotOps, c.bookings, c.userStatus, c.notes)
	return c
}

func (c *Collector) RecordSignIn(role, result string) {
	c.signIns.WithLabelValues(role, result).Inc()
}

func (c *Collector) RecordTransition(role, direction string) {
	c.transitions.WithLabelValues(role, direction).Inc()
}

func (c *Collector) RecordSlotMutation(op, result string) {
	c.slotOps.WithLabelValues(op, result).Inc()
}

func (c *Collector) RecordBooking(result string) {
	c.bookings.WithLabelValues(result).Inc()
}

func (c *Collector) RecordUserStatusChange(result string) {
	c.userStatus.WithLabelValues(result).Inc()
}

func (c *Collector) RecordNote(result string) {
	c.notes.WithLabelValues(result).Inc()
}

// Nop discards everything. Handy for tests and the TUI.
type Nop struct{}

func (Nop) RecordSignIn(string, string)       {}
func (Nop) RecordTransition(string, string)   {}
func (Nop) RecordSlotMutation(string, string) {}
func (Nop) RecordBooking(string)              {}
func (Nop) RecordUserStatusChange(string)     {}
func (Nop) RecordNote(string)                 {}

// Handler serves the registry in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
