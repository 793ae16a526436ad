package admin

import (
	"context"
	"strings"

	"github.com/Freeeeeet/medislot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/medislot/internal/controller/callbacks/common"
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
// Admin: Manage Users step
// ========================

// HandleUserRole меняет фильтр справочника по роли
func HandleUserRole(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withUsersStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		role, err := parseRoleFilter(strings.TrimPrefix(callback.Data, keyboard.UsersRolePrefix))
		if err != nil {
			common.HandleError(hc, err, "users_role")
			return
		}

		hc.UpdateChat(func(d *state.ChatData) { d.UserRole = role })
		hc.Render()
		hc.Answer("")
	})
}

// HandleToggleUser активирует или деактивирует пользователя
func HandleToggleUser(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withUsersStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		userID, err := common.ParseIDFromCallback(callback.Data, keyboard.UsersTogglePrefix)
		if err != nil {
			common.HandleError(hc, err, "toggle_user")
			return
		}

		user, err := h.UserService.ToggleStatus(hc.Workspace, userID)
		if err != nil {
			common.HandleError(hc, err, "toggle_user")
			return
		}

		h.Logger.Debug("User toggled from chat",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("user_id", user.ID))

		hc.Render()
		if user.Active() {
			hc.Answer("🟢 " + user.Name + " activated")
		} else {
			hc.Answer("⚪ " + user.Name + " deactivated")
		}
	})
}

// HandleSearchUsers просит ввести строку поиска текстом
func HandleSearchUsers(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withUsersStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.UpdateChat(func(d *state.ChatData) {
			d.Dialog = state.StateEnteringUserSearch
			if hc.Message != nil {
				d.ScreenMessageID = hc.Message.ID
			}
		})

		if err := hc.SendMessage(
			"🔍 Send a name or email to search for.\n\n/cancel to go back.",
			nil,
		); err != nil {
			common.HandleError(hc, err, "search_users")
			return
		}
		hc.Answer("")
	})
}

// HandleClearSearch сбрасывает строку поиска
func HandleClearSearch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withUsersStep(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.UpdateChat(func(d *state.ChatData) { d.UserQuery = "" })
		hc.Render()
		hc.Answer("")
	})
}

// parseRoleFilter: "all" означает все роли
func parseRoleFilter(s string) (model.Role, error) {
	if s == keyboard.UsersRoleAll {
		return model.RoleNone, nil
	}
	role, ok := model.ParseRole(s)
	if !ok {
		return model.RoleNone, common.ErrInvalidFormat
	}
	return role, nil
}

func usersStep(v service.View) error {
	return common.RequireStep(v, model.RoleAdmin, portal.KeyManageUsers)
}

// withUsersStep пропускает callback только на шаге управления пользователями
func withUsersStep(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*common.HandlerContext),
) {
	withStep(ctx, b, callback, h, usersStep, "users_step", handler)
}
