package callbacktypes

import (
	"time"

	"github.com/Freeeeeet/medislot/internal/controller/state"
	"github.com/Freeeeeet/medislot/internal/service"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	PortalService  *service.PortalService
	BookingService *service.BookingService
	UserService    *service.UserService
	NoteService    *service.NoteService
	StateManager   *state.Manager
	Logger         *zap.Logger

	// Now задаёт "сегодня" для выбора даты записи
	Now func() time.Time
}

// Services собирает сервисы обратно для общих функций отрисовки
func (h *Handler) Services() service.Services {
	return service.Services{
		Portal:  h.PortalService,
		Booking: h.BookingService,
		Users:   h.UserService,
		Notes:   h.NoteService,
	}
}
