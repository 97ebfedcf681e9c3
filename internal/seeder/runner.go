package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/scoutboard/internal/domain/model"
	"github.com/okian/scoutboard/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Run executes a complete seeding pass against cfg.BaseURL.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.Get().Named("seeder")
	start := time.Now()
	stats := &Stats{}
	client := NewClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting seeding run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("records", cfg.Records),
		logger.Int("scores", cfg.Scores),
		logger.Int("users", cfg.Users),
		logger.Int("workers", cfg.Workers),
	)

	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	if cfg.Reset {
		for _, path := range []string{"/clear", "/leaderboard/clear"} {
			if _, _, err := client.Post(ctx, path, nil); err != nil {
				return nil, fmt.Errorf("reset %s: %w", path, err)
			}
		}
	}

	gen := NewGenerator(cfg.Seed)
	records := gen.Records(cfg.Records)
	scores := gen.Scores(cfg.Scores, cfg.Users)

	if err := submitAll(ctx, client, cfg.Workers, records, scores, stats); err != nil {
		return nil, err
	}

	rankings, err := client.Rankings(ctx)
	if err != nil {
		return nil, fmt.Errorf("ranking retrieval failed: %w", err)
	}
	stats.RankingsRetrieved = len(rankings)

	board, err := client.Leaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("leaderboard retrieval failed: %w", err)
	}
	stats.LeaderboardEntries = len(board)

	if err := VerifyRankings(rankings, records); err != nil {
		return stats, err
	}
	if cfg.Reset {
		if err := VerifyLeaderboard(board, ExpectedBest(scores), cfg.BoardCapacity, cfg.BoardLimit); err != nil {
			return stats, err
		}
	}

	if cfg.OutputFile != "" {
		if err := savePayloads(cfg.OutputFile, records, scores); err != nil {
			log.Warn(ctx, "failed to save generated payloads", logger.Error(err))
		}
	}

	stats.Duration = time.Since(start)
	log.Info(ctx, "seeding run completed",
		logger.Int("recordsSubmitted", stats.RecordsSubmitted),
		logger.Int("recordsFailed", stats.RecordsFailed),
		logger.Int("scoresSubmitted", stats.ScoresSubmitted),
		logger.Int("scoresRejected", stats.ScoresRejected),
		logger.Int("scoresFailed", stats.ScoresFailed),
		logger.Int("rankingsRetrieved", stats.RankingsRetrieved),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.Duration("duration", stats.Duration),
	)
	return stats, nil
}

// submitAll posts every payload with at most workers requests in flight.
// Transport failures are counted, not fatal, so one flaky request does not
// abort the run; only context cancellation stops it.
func submitAll(ctx context.Context, client *Client, workers int, records []model.Record, scores []ScoreSubmission, stats *Stats) error {
	var recOK, recFail, scoreOK, scoreRejected, scoreFail atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, rec := range records {
		g.Go(func() error {
			status, _, err := client.Post(gctx, "/submit", rec)
			switch {
			case gctx.Err() != nil:
				return gctx.Err()
			case err != nil || status != http.StatusOK:
				recFail.Add(1)
			default:
				recOK.Add(1)
			}
			return nil
		})
	}
	for _, s := range scores {
		g.Go(func() error {
			status, _, err := client.Post(gctx, "/leaderboard/submit", s)
			switch {
			case gctx.Err() != nil:
				return gctx.Err()
			case err != nil:
				scoreFail.Add(1)
			case status == http.StatusBadRequest:
				scoreRejected.Add(1)
			case status == http.StatusOK:
				scoreOK.Add(1)
			default:
				scoreFail.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("submission interrupted: %w", err)
	}

	stats.RecordsSubmitted = int(recOK.Load())
	stats.RecordsFailed = int(recFail.Load())
	stats.ScoresSubmitted = int(scoreOK.Load())
	stats.ScoresRejected = int(scoreRejected.Load())
	stats.ScoresFailed = int(scoreFail.Load())
	return nil
}

type payloadFile struct {
	Records []model.Record    `json:"records"`
	Scores  []ScoreSubmission `json:"scores"`
}

// savePayloads writes the generated payloads as one JSON document.
func savePayloads(filename string, records []model.Record, scores []ScoreSubmission) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(payloadFile{Records: records, Scores: scores}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal payloads: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write payloads: %w", err)
	}
	return nil
}
