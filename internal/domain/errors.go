package domain

import "errors"

// Sentinel errors shared across the core. Callers match them with errors.Is;
// sites that raise them wrap with fmt.Errorf("%w: ...") for context.
var (
	// ErrInvalidInput marks a missing or malformed required field. Rejected
	// at the boundary, before any model call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrModelUnavailable marks a classifier capability that could not
	// produce output. A single failed capability degrades its field; the
	// whole call fails only when every requested analysis fails.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrUnknownCategory marks a label outside the fixed taxonomy. Logged
	// and defaulted to the "Other" group when predicted; fatal only when a
	// caller tries to store it as a site preference.
	ErrUnknownCategory = errors.New("unknown category")
)
