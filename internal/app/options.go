package service

import (
	"time"

	repository "github.com/okian/scoutboard/internal/adapters/repository"
	"github.com/okian/scoutboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLeaderboardCapacity sets how many entries the leaderboard retains.
func WithLeaderboardCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithLeaderboardLimit sets how many entries a leaderboard read returns.
func WithLeaderboardLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithClock replaces the time source used for _savedAt and score timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithRecordStore injects the scouting record store.
func WithRecordStore(store repository.RecordStore) Option {
	return func(s *Service) {
		if store != nil {
			s.records = store
		}
	}
}

// WithBoardStore injects the leaderboard store. WithLeaderboardCapacity
// has no effect on an injected store.
func WithBoardStore(store repository.BoardStore) Option {
	return func(s *Service) {
		if store != nil {
			s.board = store
		}
	}
}
