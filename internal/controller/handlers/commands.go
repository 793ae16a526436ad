package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/medislot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	ws := h.stateManager.Workspace(telegramID)

	// Начатый, но не завершённый вход отменяется
	if !ws.State.Authenticated() {
		h.portalService.SignOut(ws)
		h.stateManager.ClearState(telegramID)
	}

	h.logger.Info("Start command",
		zap.Int64("telegram_id", telegramID),
		zap.Bool("authenticated", ws.State.Authenticated()))

	welcome := fmt.Sprintf("👋 Hi, %s!\n\n", formatting.Sanitize(update.Message.From.FirstName))
	h.sendScreen(ctx, b, chatID, telegramID, welcome)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 <b>MediSlot help</b>\n\n" +
		"Pick a role, sign in with any email and password, then walk through the five steps of your workflow.\n\n" +
		"🧑 <b>Patient</b>: book an appointment, records, prescriptions, notifications\n" +
		"🩺 <b>Doctor</b>: appointments, patient data, prescriptions, notes\n" +
		"🛠 <b>Admin</b>: users, slot management, reports, analytics\n\n" +
		"On the <b>Users</b> step an admin can search, filter by role and activate or deactivate accounts. " +
		"On the <b>Notes</b> step a doctor writes notes for a patient.\n\n" +
		"/start - Show the current step or choose a role\n" +
		"/logout - Sign out from any step\n" +
		"/cancel - Cancel the current input\n" +
		"/help - Show this help\n\n" +
		"<i>Nothing is stored: signing out discards everything.</i>"

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего ввода
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	switch h.stateManager.GetState(telegramID) {
	case state.StateNone:
		h.sendError(ctx, b, chatID, "❌ Nothing to cancel.")
		return

	case state.StateEnteringEmail, state.StateEnteringPassword:
		// вход не завершён: выбранная роль сбрасывается
		h.portalService.SignOut(h.stateManager.Workspace(telegramID))
		h.stateManager.ClearState(telegramID)

	case state.StateEnteringSlotTime, state.StateEnteringUserSearch, state.StateEnteringNote:
		// выбранные врач, дата, фильтры и пациент остаются
		h.stateManager.SetState(telegramID, state.StateNone)
	}

	h.sendScreen(ctx, b, chatID, telegramID, "✅ Cancelled.\n\n")
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	h.portalService.SignOut(h.stateManager.Workspace(telegramID))
	h.stateManager.ClearState(telegramID)

	h.sendScreen(ctx, b, update.Message.Chat.ID, telegramID, "👋 You have been signed out.\n\n")
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	// текст не логируется: здесь может быть пароль
	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		h.sendError(ctx, b, update.Message.Chat.ID, "Use the buttons above, or /start to show the current step.")
	case state.StateEnteringEmail:
		h.handleEmailStep(ctx, b, update)
	case state.StateEnteringPassword:
		h.handlePasswordStep(ctx, b, update)
	case state.StateEnteringSlotTime:
		h.handleSlotTimeStep(ctx, b, update)
	case state.StateEnteringUserSearch:
		h.handleUserSearchStep(ctx, b, update)
	case state.StateEnteringNote:
		h.handleNoteStep(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
