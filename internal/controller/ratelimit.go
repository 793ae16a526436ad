package controller

import (
	"context"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// простаивающие лимитеры удаляются, когда таблица превышает pruneThreshold
const (
	limiterIdleTTL = 10 * time.Minute
	pruneThreshold = 1024
)

// chatLimiter хранит лимитер чата и время последнего обращения
type chatLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter ограничивает частоту обновлений от каждого чата
type RateLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu    sync.Mutex
	chats map[int64]*chatLimiter

	logger *zap.Logger
}

// NewRateLimiter создаёт лимитер: perSecond обновлений в секунду, burst подряд
func NewRateLimiter(perSecond float64, burst int, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limit:  rate.Limit(perSecond),
		burst:  burst,
		now:    time.Now,
		chats:  make(map[int64]*chatLimiter),
		logger: logger,
	}
}

// Allow сообщает, укладывается ли ещё один апдейт от chatID в лимит
func (rl *RateLimiter) Allow(chatID int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cl, ok := rl.chats[chatID]
	if !ok {
		if len(rl.chats) >= pruneThreshold {
			rl.prune(now)
		}
		cl = &chatLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.chats[chatID] = cl
	}
	cl.lastAccess = now

	return cl.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) prune(now time.Time) {
	for id, cl := range rl.chats {
		if now.Sub(cl.lastAccess) > limiterIdleTTL {
			delete(rl.chats, id)
		}
	}
}

// Middleware отбрасывает обновления сверх лимита. На нажатие кнопки
// отвечаем, чтобы у пользователя не висели "часики".
func (rl *RateLimiter) Middleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID, ok := updateChatID(update)
		if !ok || rl.Allow(chatID) {
			next(ctx, b, update)
			return
		}

		rl.logger.Warn("Update throttled", zap.Int64("chat_id", chatID))

		if update.CallbackQuery != nil {
			b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
				CallbackQueryID: update.CallbackQuery.ID,
				Text:            "⏳ Too many requests, slow down",
			})
		}
	}
}

// updateChatID определяет, от кого пришло обновление. Ключ тот же, что у
// state.Manager: ID пользователя Telegram.
func updateChatID(update *models.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, true
	case update.Message != nil:
		return update.Message.Chat.ID, true
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID, true
	}
	return 0, false
}
