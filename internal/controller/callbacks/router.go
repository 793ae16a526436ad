package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/medislot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/doctor"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/patient"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Main Callback Router
// ========================
// Callback data formats live in common/keyboard/callbacks.go

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	// ===== Common Navigation =====
	case strings.HasPrefix(data, keyboard.RolePrefix):
		common.HandleSelectRole(ctx, b, callback, h)
	case data == keyboard.CallbackNext:
		common.HandleNext(ctx, b, callback, h)
	case data == keyboard.CallbackBack:
		common.HandleBack(ctx, b, callback, h)
	case data == keyboard.CallbackLogout:
		common.HandleLogout(ctx, b, callback, h)
	case data == keyboard.CallbackNoop:
		common.HandleNoop(ctx, b, callback, h)

	// ===== Patient: Booking =====
	case strings.HasPrefix(data, keyboard.BookDatePrefix):
		patient.HandleSelectDate(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.BookDoctorPrefix):
		patient.HandleSelectDoctor(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.BookPeriodPrefix):
		patient.HandleSelectPeriod(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.BookSlotPrefix):
		patient.HandleSelectSlot(ctx, b, callback, h)
	case data == keyboard.BookConfirm:
		patient.HandleConfirm(ctx, b, callback, h)

	// ===== Admin: Slot Management =====
	case strings.HasPrefix(data, keyboard.SlotsDoctorPrefix):
		admin.HandleSelectDoctor(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.SlotsDatePrefix):
		admin.HandleSelectDate(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.SlotsTogglePrefix):
		admin.HandleToggle(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.SlotsRemovePrefix):
		admin.HandleRemove(ctx, b, callback, h)
	case data == keyboard.SlotsAdd:
		admin.HandleAdd(ctx, b, callback, h)
	case data == keyboard.SlotsAddCustom:
		admin.HandleAddCustom(ctx, b, callback, h)

	// ===== Admin: User Management =====
	case strings.HasPrefix(data, keyboard.UsersRolePrefix):
		admin.HandleUserRole(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.UsersTogglePrefix):
		admin.HandleToggleUser(ctx, b, callback, h)
	case data == keyboard.UsersSearch:
		admin.HandleSearchUsers(ctx, b, callback, h)
	case data == keyboard.UsersClearSearch:
		admin.HandleClearSearch(ctx, b, callback, h)

	// ===== Doctor: Patient Notes =====
	case strings.HasPrefix(data, keyboard.NotesPatientPrefix):
		doctor.HandleSelectPatient(ctx, b, callback, h)
	case data == keyboard.NotesAdd:
		doctor.HandleAddNote(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback data", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Unknown action")
	}
}
