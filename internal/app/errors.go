package service

import "errors"

// Sentinel errors returned by Service operations. The HTTP layer maps them
// to client-facing messages with errors.Is.
var (
	ErrMissingSavedAt = errors.New("_savedAt is required")
	ErrMissingFields  = errors.New("missing required fields")
	ErrScoreNotNumber = errors.New("score must be a number")
	ErrEmptyUsername  = errors.New("username cannot be empty")
	ErrInvalidRecord  = errors.New("record must be a JSON object")
)
