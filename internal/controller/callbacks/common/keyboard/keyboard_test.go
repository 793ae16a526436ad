package keyboard

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
)

func TestGrid(t *testing.T) {
	var buttons []models.InlineKeyboardButton
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		buttons = append(buttons, Button(s, s))
	}

	kb := NewBuilder().Grid(buttons, 2).Build()

	if assert.Len(t, kb.InlineKeyboard, 3) {
		assert.Len(t, kb.InlineKeyboard[0], 2)
		assert.Len(t, kb.InlineKeyboard[2], 1)
		assert.Equal(t, "e", kb.InlineKeyboard[2][0].CallbackData)
	}
}

func TestRowSkipsEmpty(t *testing.T) {
	kb := NewBuilder().Row().Row(Label("x")).Build()
	assert.Len(t, kb.InlineKeyboard, 1)
}

func TestAddNavigation(t *testing.T) {
	first := NewBuilder().AddNavigation(false, "Medical Records", false).Build()
	if assert.Len(t, first.InlineKeyboard, 2) {
		assert.Len(t, first.InlineKeyboard[0], 1)
		assert.Equal(t, CallbackNext, first.InlineKeyboard[0][0].CallbackData)
		assert.Contains(t, first.InlineKeyboard[0][0].Text, "Medical Records")
		assert.Equal(t, CallbackLogout, first.InlineKeyboard[1][0].CallbackData)
	}

	last := NewBuilder().AddNavigation(true, "Complete", true).Build()
	if assert.Len(t, last.InlineKeyboard[0], 2) {
		assert.Equal(t, CallbackBack, last.InlineKeyboard[0][0].CallbackData)
		assert.Equal(t, "🏁 Finish", last.InlineKeyboard[0][1].Text)
	}
}
