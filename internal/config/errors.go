package config

import "errors"

// ErrInvalidConfig reports a value that fails validation; ErrLoadConfig
// reports an unreadable SCOUT_CONFIG file or malformed SCOUT_* variable.
var (
	ErrInvalidConfig = errors.New("invalid scoutboard config")
	ErrLoadConfig    = errors.New("cannot load scoutboard config")
)
