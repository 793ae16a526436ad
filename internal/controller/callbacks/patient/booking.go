package patient

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/medislot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/medislot/internal/controller/state"
	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/Freeeeeet/medislot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Patient: Book Appointment step
// ========================

// HandleSelectDate выбирает дату приёма
func HandleSelectDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withBookingStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		date, err := common.ParseDateFromCallback(callback.Data, keyboard.BookDatePrefix)
		if err != nil {
			common.HandleError(hc, err, "select_date")
			return
		}

		hc.UpdateChat(func(d *state.ChatData) { d.Selection = withDate(d.Selection, date) })
		hc.Render()
		hc.Answer("")
	})
}

// HandleSelectDoctor выбирает врача
func HandleSelectDoctor(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withBookingStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		doctorID, err := common.ParseIDFromCallback(callback.Data, keyboard.BookDoctorPrefix)
		if err != nil {
			common.HandleError(hc, err, "select_doctor")
			return
		}

		doctor, err := h.BookingService.Doctor(doctorID)
		if err != nil {
			common.HandleError(hc, err, "select_doctor")
			return
		}

		hc.UpdateChat(func(d *state.ChatData) { d.Selection = withDoctor(d.Selection, doctor.ID) })
		hc.Render()
		hc.Answer(doctor.Name)
	})
}

// HandleSelectPeriod меняет фильтр слотов
func HandleSelectPeriod(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withBookingStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		period, ok := model.ParsePeriod(strings.TrimPrefix(callback.Data, keyboard.BookPeriodPrefix))
		if !ok {
			common.HandleError(hc, common.ErrInvalidFormat, "select_period")
			return
		}

		hc.UpdateChat(func(d *state.ChatData) {
			d.Filter = period
		})
		hc.Render()
		hc.Answer("")
	})
}

// HandleSelectSlot выбирает время; занятый слот выбрать нельзя
func HandleSelectSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withBookingStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slotID, err := common.ParseIDFromCallback(callback.Data, keyboard.BookSlotPrefix)
		if err != nil {
			common.HandleError(hc, err, "select_slot")
			return
		}

		slot, err := h.BookingService.Select(hc.Workspace, slotContext(hc.Chat().Selection), slotID)
		if err != nil {
			common.HandleError(hc, err, "select_slot")
			return
		}

		hc.UpdateChat(func(d *state.ChatData) {
			d.Selection.SlotID = slot.ID
		})
		hc.Render()
		hc.Answer(slot.Time)
	})
}

// HandleConfirm подтверждает запись и переходит к следующему шагу
func HandleConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withBookingStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		booking, err := h.BookingService.Confirm(hc.Workspace, hc.Chat().Selection)
		if err != nil {
			common.HandleError(hc, err, "confirm_booking")
			return
		}

		h.Logger.Info("Booking confirmed in chat",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("slot_id", booking.Slot.ID))

		common.Advance(hc, common.BookingSummary(booking))
	})
}

// withDate меняет дату; выбранный слот относится к старой дате и сбрасывается
func withDate(sel model.BookingSelection, date time.Time) model.BookingSelection {
	if !formatting.SameDay(sel.Date, date) {
		sel.SlotID = 0
	}
	sel.Date = date
	return sel
}

// withDoctor меняет врача; у другого врача свои слоты
func withDoctor(sel model.BookingSelection, doctorID int64) model.BookingSelection {
	if sel.DoctorID != doctorID {
		sel.SlotID = 0
	}
	sel.DoctorID = doctorID
	return sel
}

func slotContext(sel model.BookingSelection) service.SlotContext {
	return service.SlotContext{DoctorID: sel.DoctorID, Date: sel.Date}
}

// bookingStep разрешает действия только на шаге записи пациента
func bookingStep(v service.View) error {
	return common.RequireStep(v, model.RolePatient, portal.KeyBookAppointment)
}

// withBookingStep пропускает callback только на шаге записи пациента.
// Кнопки со старых сообщений после перехода на другой шаг отклоняются.
func withBookingStep(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*common.HandlerContext),
) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := bookingStep(h.PortalService.Snapshot(hc.Workspace)); err != nil {
			common.HandleError(hc, err, "booking_step")
			return
		}
		handler(hc)
	})
}
