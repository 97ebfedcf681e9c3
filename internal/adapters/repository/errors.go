package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
	ErrEmptyUser    = errors.New("empty username")
)
