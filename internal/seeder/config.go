// Package seeder generates scouting records and leaderboard scores, pushes
// them through a running scoutboard API and checks the read endpoints
// against what was sent.
package seeder

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid seeder config")

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL    string        `validate:"required,url"`
	Records    int           `validate:"gte=0"`
	Scores     int           `validate:"gte=0"`
	Users      int           `validate:"gt=0"`
	Workers    int           `validate:"gt=0"`
	Timeout    time.Duration `validate:"gt=0"`
	Seed       uint64
	Reset      bool   // clear both collections before seeding
	OutputFile string // where to write the generated payloads; empty skips
	// BoardCapacity and BoardLimit mirror the server's leaderboard settings.
	BoardCapacity int `validate:"gt=0"`
	BoardLimit    int `validate:"gt=0,ltefield=BoardCapacity"`
}

// NewConfig returns a Config with defaults suited to a local server.
func NewConfig() *Config {
	return &Config{
		BaseURL:       "http://localhost:5000",
		Records:       200,
		Scores:        500,
		Users:         40,
		Workers:       8,
		Timeout:       10 * time.Second,
		Seed:          uint64(time.Now().UnixNano()),
		Reset:         true,
		BoardCapacity: 100,
		BoardLimit:    50,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Stats holds run statistics.
type Stats struct {
	RecordsSubmitted   int
	RecordsFailed      int
	ScoresSubmitted    int
	ScoresRejected     int
	ScoresFailed       int
	RankingsRetrieved  int
	LeaderboardEntries int
	Duration           time.Duration
}
