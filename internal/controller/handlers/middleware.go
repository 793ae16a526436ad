package handlers

import (
	"context"
	"errors"

	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/medislot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

var errTooLong = errors.New("input too long")

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет HTML сообщение и возвращает его ID (0 при ошибке)
func (h *Handlers) sendMessage(
	ctx context.Context,
	b *bot.Bot,
	chatID int64,
	text string,
	keyboard *models.InlineKeyboardMarkup,
) int {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	msg, err := b.SendMessage(ctx, params)
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return 0
	}
	return msg.ID
}

// sendScreen отправляет страницу текущего шага (или выбор роли без сессии)
func (h *Handlers) sendScreen(ctx context.Context, b *bot.Bot, chatID, telegramID int64, prefix string) {
	text, kb, err := h.buildScreen(telegramID)
	if err != nil {
		h.logger.Error("Failed to build step screen",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if id := h.sendMessage(ctx, b, chatID, prefix+text, kb); id != 0 {
		h.stateManager.Update(telegramID, func(d *state.ChatData) { d.ScreenMessageID = id })
	}
}

// editScreen заменяет сообщение messageID страницей текущего шага
func (h *Handlers) editScreen(ctx context.Context, b *bot.Bot, chatID, telegramID int64, messageID int) {
	text, kb, err := h.buildScreen(telegramID)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	if err != nil && !common.IsMessageNotModifiedError(err) {
		h.logger.Warn("Failed to edit screen, sending a new one",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		h.sendScreen(ctx, b, chatID, telegramID, "")
		return
	}
	h.stateManager.Update(telegramID, func(d *state.ChatData) { d.ScreenMessageID = messageID })
}

func (h *Handlers) buildScreen(telegramID int64) (string, *models.InlineKeyboardMarkup, error) {
	chat := h.stateManager.Get(telegramID)
	screen, err := common.LoadStepScreen(h.services(), chat.Workspace, chat, h.now())
	if err != nil {
		return "", nil, err
	}
	text, kb := common.BuildStepScreen(screen)
	return text, kb, nil
}

// deleteMessage удаляет сообщение пользователя; ошибка только логируется
func (h *Handlers) deleteMessage(ctx context.Context, b *bot.Bot, chatID int64, messageID int) {
	if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	}); err != nil {
		h.logger.Debug("Failed to delete message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err))
	}
}
