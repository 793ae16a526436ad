package controller

import (
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRateLimiterPerChat(t *testing.T) {
	now := time.Date(2024, time.March, 18, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2, zap.NewNop())
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow(1))
	assert.True(t, rl.Allow(1))
	assert.False(t, rl.Allow(1), "burst exhausted")

	// другой чат не затронут
	assert.True(t, rl.Allow(2))

	now = now.Add(time.Second)
	assert.True(t, rl.Allow(1), "one token refilled")
	assert.False(t, rl.Allow(1))
}

func TestRateLimiterPrune(t *testing.T) {
	now := time.Date(2024, time.March, 18, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1, zap.NewNop())
	rl.now = func() time.Time { return now }

	for id := range int64(pruneThreshold) {
		rl.Allow(id)
	}
	assert.Len(t, rl.chats, pruneThreshold)

	now = now.Add(limiterIdleTTL + time.Minute)
	rl.Allow(-1)
	assert.Len(t, rl.chats, 1)
}

func TestUpdateChatID(t *testing.T) {
	id, ok := updateChatID(&models.Update{Message: &models.Message{
		From: &models.User{ID: 5},
		Chat: models.Chat{ID: 42},
	}})
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)

	id, ok = updateChatID(&models.Update{Message: &models.Message{Chat: models.Chat{ID: 42}}})
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	id, ok = updateChatID(&models.Update{CallbackQuery: &models.CallbackQuery{From: models.User{ID: 7}}})
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	_, ok = updateChatID(&models.Update{})
	assert.False(t, ok)
}
