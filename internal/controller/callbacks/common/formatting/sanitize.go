package formatting

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Sanitize убирает разметку из пользовательского текста перед отправкой
// с ParseModeHTML. Оставшийся текст экранирован.
func Sanitize(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
