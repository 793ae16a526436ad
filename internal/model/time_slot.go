package model

type Period string

const (
	PeriodAll       Period = "all" // filter only
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// Periods lists the filter options in display order.
var Periods = []Period{PeriodAll, PeriodMorning, PeriodAfternoon, PeriodEvening}

// ParsePeriod returns the period filter for s; false for unknown values.
func ParsePeriod(s string) (Period, bool) {
	switch p := Period(s); p {
	case PeriodAll, PeriodMorning, PeriodAfternoon, PeriodEvening:
		return p, true
	}
	return "", false
}

// Matches reports whether a slot in period slot passes filter p.
func (p Period) Matches(slot Period) bool {
	return p == PeriodAll || p == slot
}

type TimeSlot struct {
	ID        int64  `json:"id" yaml:"id"`
	Time      string `json:"time" yaml:"time"` // "09:30 AM"
	Period    Period `json:"period" yaml:"period"`
	Available bool   `json:"available" yaml:"available"`
}
