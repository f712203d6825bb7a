package decks

import "errors"

var (
	// ErrNotFound covers unknown users, unknown decks and cards, and decks the
	// caller is not allowed to see. Callers cannot tell these apart.
	ErrNotFound = errors.New("not found")

	ErrValidation = errors.New("invalid request")

	// ErrUnauthenticated is returned for writes without a caller while auth is enabled.
	ErrUnauthenticated = errors.New("authentication required")
)
