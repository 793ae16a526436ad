package handlers

import (
	"time"

	"github.com/Freeeeeet/medislot/internal/controller/state"
	"github.com/Freeeeeet/medislot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	portalService  *service.PortalService
	bookingService *service.BookingService
	userService    *service.UserService
	noteService    *service.NoteService
	stateManager   *state.Manager
	logger         *zap.Logger
	now            func() time.Time
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	services service.Services,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		portalService:  services.Portal,
		bookingService: services.Booking,
		userService:    services.Users,
		noteService:    services.Notes,
		stateManager:   stateManager,
		logger:         logger,
		now:            time.Now,
	}
}

func (h *Handlers) services() service.Services {
	return service.Services{
		Portal:  h.portalService,
		Booking: h.bookingService,
		Users:   h.userService,
		Notes:   h.noteService,
	}
}
