package common

import (
	"context"
	"errors"

	"github.com/Freeeeeet/medislot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithSession создаёт HandlerContext и проверяет, что в чате открыта сессия.
// Без сессии отвечает пользователю и показывает выбор роли.
func WithSession(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if !hc.Workspace.State.Authenticated() {
		h.Logger.Info("Callback without session",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("data", callback.Data))
		hc.AnswerAlert(ErrorMessage(portal.ErrAuthentication))
		text, kb := BuildRoleScreen()
		_ = hc.EditMessage(text, kb)
		return
	}

	handler(hc)
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю.
// Ожидаемые отказы домена логируются на уровне Info.
func HandleError(hc *HandlerContext, err error, operation string) {
	fields := []zap.Field{
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err),
	}
	if errors.Is(err, ErrNoMessage) || ErrorMessage(err) == msgUnknown {
		hc.Handler.Logger.Error("Operation failed", fields...)
	} else {
		hc.Handler.Logger.Info("Operation rejected", fields...)
	}
	hc.AnswerAlert(ErrorMessage(err))
}
