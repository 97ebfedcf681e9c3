package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/scoutboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":5000")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Debug, convey.ShouldBeFalse)
			convey.So(cfg.LeaderboardCapacity, convey.ShouldEqual, 100)
			convey.So(cfg.LeaderboardLimit, convey.ShouldEqual, 50)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":5000")
				convey.So(cfg.LeaderboardCapacity, convey.ShouldEqual, 100)
				convey.So(cfg.LeaderboardLimit, convey.ShouldEqual, 50)
				convey.So(cfg.EffectiveLogLevel(), convey.ShouldEqual, "info")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SCOUT_ADDR", "127.0.0.1:8080")
			_ = os.Setenv("SCOUT_DEBUG", "true")
			_ = os.Setenv("SCOUT_LEADERBOARD_CAPACITY", "20")
			_ = os.Setenv("SCOUT_LEADERBOARD_LIMIT", "10")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, "127.0.0.1:8080")
				convey.So(cfg.Debug, convey.ShouldBeTrue)
				convey.So(cfg.EffectiveLogLevel(), convey.ShouldEqual, "debug")
				convey.So(cfg.LeaderboardCapacity, convey.ShouldEqual, 20)
				convey.So(cfg.LeaderboardLimit, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with a YAML file and env overrides", func() {
			tmpFile := createTempConfigFile(`
# scouting service
addr: ":9090"
log_level: warn
leaderboard_capacity: 30
leaderboard_limit: 15
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("SCOUT_CONFIG", tmpFile)
			_ = os.Setenv("SCOUT_LEADERBOARD_LIMIT", "5")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env should win over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.LeaderboardCapacity, convey.ShouldEqual, 30)
				convey.So(cfg.LeaderboardLimit, convey.ShouldEqual, 5)
				convey.So(cfg.MetricsIntervalMS, convey.ShouldEqual, 10_000)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "scoutboard")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("SCOUT_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SCOUT_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("SCOUT_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			})
		})

		convey.Convey("When the read limit exceeds the capacity", func() {
			_ = os.Setenv("SCOUT_LEADERBOARD_CAPACITY", "10")
			_ = os.Setenv("SCOUT_LEADERBOARD_LIMIT", "50")

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation should fail", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the log level is unknown", func() {
			_ = os.Setenv("SCOUT_LOG_LEVEL", "loud")

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation should fail", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the metrics names are overridden", func() {
			_ = os.Setenv("SCOUT_METRICS_NAMESPACE", "pit_crew")
			_ = os.Setenv("SCOUT_METRICS_SUBSYSTEM", "http")

			cfg, err := config.Load(ctx)

			convey.Convey("Then they should be applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "pit_crew")
				convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "http")
			})
		})

		convey.Convey("When a metrics name is not a valid Prometheus fragment", func() {
			_ = os.Setenv("SCOUT_METRICS_NAMESPACE", "scout-board")

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation should fail", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("SCOUT_LEADERBOARD_CAPACITY", "lots")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, envVar := range []string{
		"SCOUT_CONFIG",
		"SCOUT_ADDR",
		"SCOUT_DEBUG",
		"SCOUT_LOG_LEVEL",
		"SCOUT_LEADERBOARD_CAPACITY",
		"SCOUT_LEADERBOARD_LIMIT",
		"SCOUT_METRICS_INTERVAL_MS",
		"SCOUT_METRICS_NAMESPACE",
		"SCOUT_METRICS_SUBSYSTEM",
	} {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "scoutboard-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
