package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/medislot/internal/portal"
)

// Progress рисует индикатор шагов: пройденные, текущий и оставшиеся.
//
//	✅ ─ ✅ ─ 🔵 ─ ⚪ ─ ⚪
func Progress(steps []portal.Step, current int) string {
	marks := make([]string, 0, len(steps))
	for _, s := range steps {
		switch {
		case s.Index < current:
			marks = append(marks, "✅")
		case s.Index == current:
			marks = append(marks, "🔵")
		default:
			marks = append(marks, "⚪")
		}
	}
	return strings.Join(marks, " ─ ")
}

// StepCounter возвращает "Step 2 of 5"
func StepCounter(current, total int) string {
	return fmt.Sprintf("Step %d of %d", current, total)
}
