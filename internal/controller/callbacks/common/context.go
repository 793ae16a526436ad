package common

import (
	"context"
	"time"

	"github.com/Freeeeeet/medislot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/medislot/internal/controller/state"
	"github.com/Freeeeeet/medislot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlerContext содержит общие данные для обработки callback
// Это избавляет от дублирования кода получения сессии, сообщения и т.д.
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	Workspace  *service.Workspace
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		Workspace:  h.StateManager.Workspace(callback.From.ID),
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// Chat возвращает копию данных чата
func (hc *HandlerContext) Chat() state.ChatData {
	return hc.Handler.StateManager.Get(hc.TelegramID)
}

// UpdateChat изменяет данные чата
func (hc *HandlerContext) UpdateChat(fn func(*state.ChatData)) state.ChatData {
	return hc.Handler.StateManager.Update(hc.TelegramID, fn)
}

// ClearState очищает диалог и данные шага
func (hc *HandlerContext) ClearState() {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
}

// SetState устанавливает состояние диалога
func (hc *HandlerContext) SetState(s state.DialogState) {
	hc.Handler.StateManager.SetState(hc.TelegramID, s)
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	params := &bot.EditMessageTextParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, err := hc.Bot.EditMessageText(hc.Ctx, params)

	// Игнорируем ошибку "message is not modified" - это не настоящая ошибка
	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}

// SendMessage отправляет новое сообщение
func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	params := &bot.SendMessageParams{
		ChatID:    hc.ChatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, err := hc.Bot.SendMessage(hc.Ctx, params)
	return err
}

// Today возвращает "сегодня" для выбора даты записи
func (hc *HandlerContext) Today() time.Time {
	if hc.Handler.Now != nil {
		return hc.Handler.Now()
	}
	return time.Now()
}

// Render перерисовывает страницу текущего шага в том же сообщении
func (hc *HandlerContext) Render() {
	screen, err := LoadStepScreen(hc.Handler.Services(), hc.Workspace, hc.Chat(), hc.Today())
	if err != nil {
		HandleError(hc, err, "load_step_screen")
		return
	}

	text, kb := BuildStepScreen(screen)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to render step",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
	}
}
