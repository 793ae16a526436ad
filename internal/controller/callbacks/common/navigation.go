package common

import (
	"context"
	"strings"

	"github.com/Freeeeeet/medislot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/medislot/internal/controller/state"
	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Common Navigation Handlers
// ========================
// Role selection, step transitions and logout shared by all roles

// HandleSelectRole запоминает роль и начинает диалог входа
func HandleSelectRole(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := NewHandlerContext(ctx, b, callback, h)

	role, ok := model.ParseRole(strings.TrimPrefix(callback.Data, keyboard.RolePrefix))
	if !ok {
		HandleError(hc, ErrInvalidFormat, "select_role")
		return
	}

	if err := h.PortalService.SelectRole(hc.Workspace, role); err != nil {
		HandleError(hc, err, "select_role")
		return
	}

	hc.UpdateChat(func(d *state.ChatData) {
		d.Dialog = state.StateEnteringEmail
		d.Email = ""
		if hc.Message != nil {
			d.ScreenMessageID = hc.Message.ID
		}
	})

	if err := hc.EditMessage(BuildLoginPrompt(role), nil); err != nil {
		h.Logger.Error("Failed to show login prompt", zap.Error(err))
	}
	hc.Answer(role.Title())
}

// HandleNext переходит к следующему шагу; на терминальном шаге сессия закрывается
func HandleNext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithSession(ctx, b, callback, h, func(hc *HandlerContext) {
		Advance(hc, "")
	})
}

// HandleBack возвращает на предыдущий шаг
func HandleBack(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithSession(ctx, b, callback, h, func(hc *HandlerContext) {
		if _, err := h.PortalService.Retreat(hc.Workspace); err != nil {
			HandleError(hc, err, "retreat")
			return
		}

		hc.ClearState()
		hc.Render()
		hc.Answer("")
	})
}

// HandleLogout закрывает сессию с любого шага. Повторный выход безопасен.
func HandleLogout(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := NewHandlerContext(ctx, b, callback, h)

	h.PortalService.SignOut(hc.Workspace)
	hc.ClearState()

	text, kb := BuildRoleScreen()
	if err := hc.EditMessage("👋 You have been signed out.\n\n"+text, kb); err != nil {
		h.Logger.Error("Failed to show role screen", zap.Error(err))
	}
	hc.Answer("Signed out")
}

// HandleNoop подтверждает нажатие на кнопку-подпись
func HandleNoop(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, _ *callbacktypes.Handler) {
	AnswerCallback(ctx, b, callback.ID, "")
}

// Advance переводит сессию на следующий шаг и перерисовывает экран.
// Непустой notice показывается alert'ом уже на новом шаге.
func Advance(hc *HandlerContext, notice string) {
	tr, err := hc.Handler.PortalService.Advance(hc.Workspace)
	if err != nil {
		HandleError(hc, err, "advance")
		return
	}
	hc.ClearState()

	if tr.Completed {
		if err := hc.EditMessage(BuildCompletedScreen(tr.Step.Role), nil); err != nil {
			hc.Handler.Logger.Error("Failed to show completion", zap.Error(err))
		}
		hc.Answer("🏁 Done")
		return
	}

	hc.Render()
	if notice != "" {
		hc.AnswerAlert(notice)
		return
	}
	hc.Answer("")
}
