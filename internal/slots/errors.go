package slots

import "errors"

var (
	ErrSlotNotFound     = errors.New("slot not found")
	ErrSlotUnavailable  = errors.New("slot is not available")
	ErrInvalidSlotLabel = errors.New("invalid slot time label")
)
