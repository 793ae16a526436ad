package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/portal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress(t *testing.T) {
	steps, err := portal.NewNavigator().Steps(model.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, "🔵 ─ ⚪ ─ ⚪ ─ ⚪ ─ ⚪", Progress(steps, 1))
	assert.Equal(t, "✅ ─ ✅ ─ 🔵 ─ ⚪ ─ ⚪", Progress(steps, 3))
	assert.Equal(t, "Step 3 of 5", StepCounter(3, 5))
}

func TestCallbackDateRoundTrip(t *testing.T) {
	d := time.Date(2024, time.March, 18, 0, 0, 0, 0, time.UTC)

	parsed, err := ParseCallbackDate(FormatCallbackDate(d))
	require.NoError(t, err)
	assert.True(t, d.Equal(parsed))

	_, err = ParseCallbackDate("18.03.2024")
	assert.Error(t, err)
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2024, time.March, 20, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "Mar 20, 09:05", FormatDateTime(ts))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.March, 18, 9, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 18, 23, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.AddDate(0, 0, 1)))
	assert.False(t, SameDay(a, time.Time{}))
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jane@clinic.org", "jane@clinic.org"},
		{"<b>jane</b>", "jane"},
		{"<script>alert(1)</script>x", "x"},
		{"a < b", "a &lt; b"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}
