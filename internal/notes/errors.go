package notes

import "errors"

var ErrEmptyNote = errors.New("empty note")
