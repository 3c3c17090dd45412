// Package common defines shared constants and sentinel errors used across
// DeckPilot client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTokenExpired = errors.New("token expired")
	ErrNotLoggedIn  = errors.New("not logged in")

	// Resource errors.
	ErrNotFound = errors.New("not found")

	// Local state errors.
	ErrNoCurrentProject = errors.New("no current project")
	ErrNoLocalState     = errors.New("local state unavailable")

	// Validation errors.
	ErrValidation = errors.New("validation error")

	// Task lifecycle errors.
	ErrTaskFailed      = errors.New("task failed")
	ErrStillProcessing = errors.New("still processing, check back later")
)
