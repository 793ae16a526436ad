package service

import (
	"time"

	"github.com/Freeeeeet/medislot/internal/catalog"
	"github.com/Freeeeeet/medislot/internal/metrics"
	"github.com/Freeeeeet/medislot/internal/portal"
	"go.uber.org/zap"
)

// Services is what a presentation layer talks to.
type Services struct {
	Portal  *PortalService
	Booking *BookingService
	Users   *UserService
	Notes   *NoteService
}

// NewServices wires every service over one catalog and one recorder.
func NewServices(cat *catalog.Catalog, signInLatency time.Duration, recorder metrics.Recorder, logger *zap.Logger) Services {
	return Services{
		Portal:  NewPortalService(cat, portal.NewNavigator(), signInLatency, recorder, logger),
		Booking: NewBookingService(cat, recorder, logger),
		Users:   NewUserService(recorder, logger),
		Notes:   NewNoteService(cat, recorder, logger),
	}
}
