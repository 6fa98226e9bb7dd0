package usecase

import "errors"

// Source failure taxonomy. The resolution pipeline demotes the first three to
// a fallthrough to the next source; ErrSourceSkipped marks a source that was
// never attempted (missing credential or unmapped league) and falls through
// silently.
var (
	ErrTransport     = errors.New("transport failure")
	ErrParse         = errors.New("malformed payload")
	ErrEmptyResult   = errors.New("empty result")
	ErrSourceSkipped = errors.New("source not configured")

	ErrInvalidInput = errors.New("invalid input")

	// ErrExhausted means every source fell through, which the chain's
	// always-succeeding terminal source makes impossible outside of a
	// wiring bug.
	ErrExhausted = errors.New("all sources exhausted")
)
