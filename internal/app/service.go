// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	repository "github.com/okian/scoutboard/internal/adapters/repository"
	"github.com/okian/scoutboard/internal/domain/model"
	"github.com/okian/scoutboard/internal/domain/scoring"
	"github.com/okian/scoutboard/internal/domain/types"
	"github.com/okian/scoutboard/pkg/logger"
	"github.com/okian/scoutboard/pkg/metrics"
)

// Default leaderboard configuration.
const (
	defaultLeaderboardCapacity = 100
	defaultLeaderboardLimit    = 50
)

// Service implements the API dependencies for scouting records and the
// game leaderboard. Each instance owns its own stores.
type Service struct {
	mu sync.RWMutex

	// Core components
	records repository.RecordStore
	board   repository.BoardStore

	// Configuration
	capacity int
	limit    int
	clock    func() time.Time

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		capacity: defaultLeaderboardCapacity,
		limit:    defaultLeaderboardLimit,
		clock:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.records == nil {
		s.records = repository.NewMemoryRecords()
	}
	if s.board == nil {
		s.board = repository.NewMemoryBoard(repository.WithCapacity(s.capacity))
	}
	s.capacity = s.board.Capacity()
	if s.limit > s.capacity {
		s.limit = s.capacity
	}

	return s
}

// Start marks the service as running.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.started = true
	s.startedAt = s.clock()
	s.logger.Info(ctx, "scoutboard service started",
		logger.Int("leaderboardCapacity", s.capacity),
		logger.Int("leaderboardLimit", s.limit),
	)
	return nil
}

// Stop marks the service as stopped. Stored data is kept.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "scoutboard service stopped")
}

// log returns the configured logger, falling back to the global one when
// the service is used without Start.
func (s *Service) log() logger.Logger {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	if l == nil {
		return logger.Get()
	}
	return l
}

// Submit stores a scouting record, stamping _savedAt when the key is absent.
// A present _savedAt is kept as sent, even when null.
func (s *Service) Submit(ctx context.Context, rec model.Record) error {
	if rec == nil {
		return ErrInvalidRecord
	}
	if _, ok := rec.Lookup(model.KeySavedAt); !ok {
		rec[model.KeySavedAt] = scoring.FormatTimestamp(s.clock())
	}

	if err := s.records.Append(ctx, rec); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	metrics.RecordSubmitted()

	s.log().Debug(ctx, "record submitted", logger.Any("savedAt", rec[model.KeySavedAt]))
	return nil
}

// Rankings returns a projection of every stored record ordered by
// avgScore descending.
func (s *Service) Rankings(ctx context.Context) []types.Ranking {
	start := time.Now()
	out := scoring.Rank(s.records.All(ctx))
	metrics.RecordRankingComputed(metrics.Since(start))
	return out
}

// Delete removes every record whose _savedAt equals savedAt and reports how
// many were removed. Zero matches is not an error.
func (s *Service) Delete(ctx context.Context, savedAt any) (int, error) {
	if savedAt == nil {
		return 0, ErrMissingSavedAt
	}

	n := s.records.DeleteWhere(ctx, model.KeySavedAt, savedAt)
	metrics.RecordsDeleted(n)

	s.log().Debug(ctx, "records deleted", logger.Any("savedAt", savedAt), logger.Int("removed", n))
	return n, nil
}

// Clear removes every scouting record.
func (s *Service) Clear(ctx context.Context) {
	s.records.Clear(ctx)
	metrics.RecordsCleared()
	s.log().Info(ctx, "scouting history cleared")
}

// SubmitScore records a leaderboard score. The score is validated before the
// username. The returned entry carries the trimmed username and the
// truncated score whether or not the board changed.
func (s *Service) SubmitScore(ctx context.Context, username, score any) (model.Entry, error) {
	value, err := scoring.ToScore(score)
	if err != nil {
		metrics.RecordScoreSubmission(metrics.OutcomeRejected)
		return model.Entry{}, fmt.Errorf("%w: %w", ErrScoreNotNumber, err)
	}

	name, _ := username.(string)
	name = strings.TrimSpace(name)
	if name == "" {
		metrics.RecordScoreSubmission(metrics.OutcomeRejected)
		return model.Entry{}, ErrEmptyUsername
	}

	entry := model.Entry{
		Username:  name,
		Score:     value,
		Timestamp: scoring.FormatTimestamp(s.clock()),
	}
	outcome, err := s.board.Submit(ctx, entry)
	if err != nil {
		metrics.RecordScoreSubmission(metrics.OutcomeRejected)
		return model.Entry{}, fmt.Errorf("submit score: %w", err)
	}
	metrics.RecordScoreSubmission(outcome.String())

	s.log().Debug(ctx, "score submitted",
		logger.String("username", name),
		logger.Int("score", int(value)),
		logger.String("outcome", outcome.String()),
	)
	return entry, nil
}

// Leaderboard returns the best entries, capped at the configured limit.
func (s *Service) Leaderboard(ctx context.Context) ([]model.Entry, error) {
	entries, err := s.board.Top(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	return entries, nil
}

// ClearLeaderboard removes every leaderboard entry.
func (s *Service) ClearLeaderboard(ctx context.Context) {
	s.board.Clear(ctx)
	metrics.LeaderboardCleared()
	s.log().Info(ctx, "leaderboard cleared")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	records := s.records.Count(ctx)
	entries := s.board.Count(ctx)

	stats := map[string]any{
		"started":             s.started,
		"records":             records,
		"leaderboardEntries":  entries,
		"leaderboardCapacity": s.capacity,
		"leaderboardLimit":    s.limit,
	}
	if s.started {
		stats["uptimeSeconds"] = int64(s.clock().Sub(s.startedAt).Seconds())
	}

	metrics.UpdateRecordsTotal(records)
	metrics.UpdateLeaderboardSize(entries)

	return stats
}
