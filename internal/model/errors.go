package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches the query.
	ErrNotFound = errors.New("not found")

	// ErrInvalidToken covers malformed tokens, bad signatures and bad
	// origin bindings. Callers must not be able to tell which.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned only after the signature has verified.
	ErrExpiredToken = errors.New("expired token")

	// ErrConflict is returned by stores when an insert trips a uniqueness
	// constraint. The call site translates it to the matching domain
	// conflict; it is the authoritative signal for grant/ban races.
	ErrConflict = errors.New("unique constraint violation")
)
