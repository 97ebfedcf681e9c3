package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/scoutboard/internal/seeder"
	"github.com/okian/scoutboard/pkg/logger"
)

const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	defaultRunTimeout       = 10 * time.Minute
)

func main() {
	defaults := seeder.NewConfig()
	cfg := *defaults

	flag.StringVar(&cfg.BaseURL, "url", defaults.BaseURL, "Base URL of the service")
	flag.IntVar(&cfg.Records, "records", defaults.Records, "Number of scouting records to submit")
	flag.IntVar(&cfg.Scores, "scores", defaults.Scores, "Number of leaderboard scores to submit")
	flag.IntVar(&cfg.Users, "users", defaults.Users, "Number of distinct leaderboard usernames")
	flag.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*defaultWorkerMultiplier, "Maximum concurrent requests")
	flag.DurationVar(&cfg.Timeout, "timeout", defaults.Timeout, "HTTP request timeout")
	flag.Uint64Var(&cfg.Seed, "seed", defaults.Seed, "Random seed for payload generation")
	flag.BoolVar(&cfg.Reset, "reset", defaults.Reset, "Clear records and leaderboard before seeding")
	flag.StringVar(&cfg.OutputFile, "output", "", "Write generated payloads to this JSON file")
	flag.IntVar(&cfg.BoardCapacity, "capacity", defaults.BoardCapacity, "Server leaderboard capacity")
	flag.IntVar(&cfg.BoardLimit, "limit", defaults.BoardLimit, "Server leaderboard read limit")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	if _, err := seeder.Run(ctx, &cfg); err != nil {
		logger.Get().Error(ctx, "seeding failed", logger.Error(err))
		os.Exit(1)
	}
}
