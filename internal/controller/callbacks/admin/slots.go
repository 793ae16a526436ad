package admin

import (
	"context"

	"github.com/Freeeeeet/medislot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/medislot/internal/controller/state"
	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/Freeeeeet/medislot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Admin: Manage Slots step
// ========================

// HandleSelectDoctor переключает врача, чьи слоты редактируются
func HandleSelectDoctor(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withSlotsStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		doctorID, err := common.ParseIDFromCallback(callback.Data, keyboard.SlotsDoctorPrefix)
		if err != nil {
			common.HandleError(hc, err, "admin_select_doctor")
			return
		}
		doctor, err := h.BookingService.Doctor(doctorID)
		if err != nil {
			common.HandleError(hc, err, "admin_select_doctor")
			return
		}

		hc.UpdateChat(func(d *state.ChatData) { d.AdminDoctorID = doctor.ID })
		hc.Render()
		hc.Answer(doctor.Name)
	})
}

// HandleSelectDate переключает дату
func HandleSelectDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withSlotsStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		date, err := common.ParseDateFromCallback(callback.Data, keyboard.SlotsDatePrefix)
		if err != nil {
			common.HandleError(hc, err, "admin_select_date")
			return
		}

		hc.UpdateChat(func(d *state.ChatData) { d.AdminDate = date })
		hc.Render()
		hc.Answer("")
	})
}

// HandleToggle меняет доступность слота
func HandleToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withSlotsStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slotID, err := common.ParseIDFromCallback(callback.Data, keyboard.SlotsTogglePrefix)
		if err != nil {
			common.HandleError(hc, err, "toggle_slot")
			return
		}

		slot, err := h.BookingService.Toggle(hc.Workspace, slotContext(hc), slotID)
		if err != nil {
			common.HandleError(hc, err, "toggle_slot")
			return
		}

		hc.Render()
		if slot.Available {
			hc.Answer("🟢 " + slot.Time + " available")
		} else {
			hc.Answer("🔴 " + slot.Time + " blocked")
		}
	})
}

// HandleRemove удаляет слот
func HandleRemove(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withSlotsStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slotID, err := common.ParseIDFromCallback(callback.Data, keyboard.SlotsRemovePrefix)
		if err != nil {
			common.HandleError(hc, err, "remove_slot")
			return
		}

		if err := h.BookingService.Remove(hc.Workspace, slotContext(hc), slotID); err != nil {
			common.HandleError(hc, err, "remove_slot")
			return
		}

		hc.Render()
		hc.Answer("🗑 Removed")
	})
}

// HandleAdd добавляет слот со временем по умолчанию
func HandleAdd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withSlotsStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slot, err := h.BookingService.Add(hc.Workspace, slotContext(hc), "")
		if err != nil {
			common.HandleError(hc, err, "add_slot")
			return
		}

		hc.Render()
		hc.Answer("➕ " + slot.Time)
	})
}

// HandleAddCustom просит ввести время нового слота текстом
func HandleAddCustom(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withSlotsStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.UpdateChat(func(d *state.ChatData) {
			d.Dialog = state.StateEnteringSlotTime
			if hc.Message != nil {
				d.ScreenMessageID = hc.Message.ID
			}
		})

		if err := hc.SendMessage(
			"🕐 Send the time of the new slot, e.g. <code>"+h.BookingService.DefaultNewSlot()+"</code>\n\n/cancel to go back.",
			nil,
		); err != nil {
			common.HandleError(hc, err, "add_custom_slot")
			return
		}
		hc.Answer("")
	})
}

func slotContext(hc *common.HandlerContext) service.SlotContext {
	return common.AdminContext(hc.Handler.BookingService, hc.Chat())
}

func slotsStep(v service.View) error {
	return common.RequireStep(v, model.RoleAdmin, portal.KeyManageSlots)
}

// withSlotsStep пропускает callback только на шаге управления слотами
func withSlotsStep(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*common.HandlerContext),
) {
	withStep(ctx, b, callback, h, slotsStep, "slots_step", handler)
}

// withStep пропускает callback, только если check разрешает текущий шаг
func withStep(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	check func(service.View) error,
	operation string,
	handler func(*common.HandlerContext),
) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := check(h.PortalService.Snapshot(hc.Workspace)); err != nil {
			common.HandleError(hc, err, operation)
			return
		}
		handler(hc)
	})
}
