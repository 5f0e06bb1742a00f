package quiz

import "errors"

var (
	ErrNotFound         = errors.New("quiz not found")
	ErrResponseNotFound = errors.New("response not found")
	ErrNotPublished     = errors.New("quiz not published")
	ErrBadAccessCode    = errors.New("access code mismatch")
	ErrAlreadyResponded = errors.New("already responded")
)
