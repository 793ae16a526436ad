package notes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var visit = time.Date(2024, time.March, 20, 11, 45, 0, 0, time.UTC)

func newTestBook() *Book {
	return NewBook(WithClock(func() time.Time { return visit }))
}

func TestAddAndListPerPatient(t *testing.T) {
	b := newTestBook()

	first, err := b.Add(1, "  Blood pressure normal ")
	require.NoError(t, err)
	assert.Equal(t, "Blood pressure normal", first.Body)
	assert.Equal(t, visit, first.CreatedAt)

	_, err = b.Add(2, "Follow up in two weeks")
	require.NoError(t, err)
	second, err := b.Add(1, "Prescribed rest")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	list := b.For(1)
	require.Len(t, list, 2)
	assert.Equal(t, "Blood pressure normal", list[0].Body)
	assert.Equal(t, "Prescribed rest", list[1].Body)

	assert.Len(t, b.For(2), 1)
	assert.Empty(t, b.For(3))
}

func TestEmptyNoteRejected(t *testing.T) {
	b := newTestBook()

	for _, body := range []string{"", "   ", "\n\t"} {
		_, err := b.Add(1, body)
		assert.ErrorIs(t, err, ErrEmptyNote, "body %q", body)
	}
	assert.Zero(t, b.Len())
}

func TestResetDropsNotes(t *testing.T) {
	b := newTestBook()
	_, err := b.Add(1, "note")
	require.NoError(t, err)

	b.Reset()
	assert.Zero(t, b.Len())
	assert.Empty(t, b.For(1))
}
