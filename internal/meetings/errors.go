package meetings

import "errors"

var (
	// ErrNotFound indicates the meeting does not exist.
	ErrNotFound = errors.New("meeting not found")
	// ErrInvalidInput indicates the request was malformed.
	ErrInvalidInput = errors.New("invalid input")
)
