package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/medislot/internal/controller/state"
	"github.com/Freeeeeet/medislot/internal/notes"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// readInput обрезает пробелы и проверяет длину. Пустая строка допустима:
// её отклоняет сам вход с ErrAuthentication.
func readInput(text string, maxLen int) (string, error) {
	s := strings.TrimSpace(text)
	if len([]rune(s)) > maxLen {
		return "", fmt.Errorf("%w: max %d characters", errTooLong, maxLen)
	}
	return s, nil
}

// handleEmailStep обрабатывает ввод email
func (h *Handlers) handleEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	email, err := readInput(update.Message.Text, EmailMaxLength)
	if err != nil {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Email is too long. Max %d characters.\n\nTry again:", EmailMaxLength))
		return
	}

	h.stateManager.Update(telegramID, func(d *state.ChatData) {
		d.Email = email
		d.Dialog = state.StateEnteringPassword
	})

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"📧 %s\n\n🔑 Enter your password:\n\n<i>The message will be deleted right away.</i>",
		formatting.Sanitize(email),
	), nil)
}

// handlePasswordStep обрабатывает ввод пароля и выполняет вход
func (h *Handlers) handlePasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	// пароль не должен оставаться в истории чата
	h.deleteMessage(ctx, b, chatID, update.Message.ID)

	password, err := readInput(update.Message.Text, PasswordMaxLength)
	if err != nil {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Password is too long. Max %d characters.\n\nTry again:", PasswordMaxLength))
		return
	}

	chat := h.stateManager.Get(telegramID)

	pendingID := h.sendMessage(ctx, b, chatID, "⏳ Signing in…", nil)

	// блокирует на время задержки входа; отменить нельзя
	sess, err := h.portalService.SignIn(chat.Workspace, chat.Email, password)
	if err != nil {
		h.handleSignInError(ctx, b, chatID, telegramID, pendingID, err)
		return
	}

	h.stateManager.ClearState(telegramID)

	h.logger.Info("Chat signed in",
		zap.Int64("telegram_id", telegramID),
		zap.String("session_id", sess.ID.String()))

	if pendingID != 0 {
		h.editScreen(ctx, b, chatID, telegramID, pendingID)
		return
	}
	h.sendScreen(ctx, b, chatID, telegramID, "")
}

func (h *Handlers) handleSignInError(ctx context.Context, b *bot.Bot, chatID, telegramID int64, pendingID int, err error) {
	if pendingID != 0 {
		h.deleteMessage(ctx, b, chatID, pendingID)
	}

	if errors.Is(err, portal.ErrAuthentication) {
		// начинаем ввод заново с той же ролью
		h.stateManager.Update(telegramID, func(d *state.ChatData) {
			d.Email = ""
			d.Dialog = state.StateEnteringEmail
		})
		role := h.stateManager.Workspace(telegramID).State.Role()
		h.sendMessage(ctx, b, chatID,
			"❌ Email and password are required.\n\n"+common.BuildLoginPrompt(role), nil)
		return
	}

	// роль потеряна (например, /logout во время входа)
	h.stateManager.ClearState(telegramID)
	h.sendScreen(ctx, b, chatID, telegramID, common.ErrorMessage(err)+"\n\n")
}

// handleSlotTimeStep добавляет слот с введённым временем
func (h *Handlers) handleSlotTimeStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	label, err := readInput(update.Message.Text, SlotLabelMaxLength)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Use a time like "+h.bookingService.DefaultNewSlot())
		return
	}

	chat := h.stateManager.Get(telegramID)
	sc := common.AdminContext(h.bookingService, chat)

	slot, err := h.bookingService.Add(chat.Workspace, sc, label)
	if err != nil {
		// неверное время: состояние сохраняется, можно попробовать снова
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nTry again or /cancel:")
		return
	}

	h.stateManager.SetState(telegramID, state.StateNone)
	h.sendScreen(ctx, b, chatID, telegramID, fmt.Sprintf("➕ Added %s\n\n", slot.Time))
}

// handleUserSearchStep сохраняет строку поиска; пустая строка сбрасывает поиск
func (h *Handlers) handleUserSearchStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	query, err := readInput(update.Message.Text, UserQueryMaxLength)
	if err != nil {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Search is too long. Max %d characters.\n\nTry again or /cancel:", UserQueryMaxLength))
		return
	}

	h.stateManager.Update(telegramID, func(d *state.ChatData) {
		d.UserQuery = query
		d.Dialog = state.StateNone
	})
	h.sendScreen(ctx, b, chatID, telegramID, "")
}

// handleNoteStep сохраняет заметку для открытого пациента
func (h *Handlers) handleNoteStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	body, err := readInput(update.Message.Text, NoteMaxLength)
	if err != nil {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Note is too long. Max %d characters.\n\nTry again or /cancel:", NoteMaxLength))
		return
	}

	chat := h.stateManager.Get(telegramID)
	patientID := common.NotesPatient(h.noteService, chat)

	if _, err := h.noteService.Save(chat.Workspace, patientID, body); err != nil {
		if errors.Is(err, notes.ErrEmptyNote) {
			// состояние сохраняется, можно написать заметку заново
			h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nTry again or /cancel:")
			return
		}
		h.stateManager.SetState(telegramID, state.StateNone)
		h.sendScreen(ctx, b, chatID, telegramID, common.ErrorMessage(err)+"\n\n")
		return
	}

	h.stateManager.SetState(telegramID, state.StateNone)
	h.sendScreen(ctx, b, chatID, telegramID, "📝 Note saved\n\n")
}
