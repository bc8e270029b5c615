package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/weekendbets/internal/app"
	"github.com/riskibarqy/weekendbets/internal/config"
	"github.com/riskibarqy/weekendbets/internal/domain/partition"
	"github.com/riskibarqy/weekendbets/internal/observability"
	"github.com/riskibarqy/weekendbets/internal/platform/logging"
)

// withApp loads configuration, wires the application and runs fn until it
// returns or the process receives SIGINT/SIGTERM.
func withApp(opts *rootOptions, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.LoadWithFile(configPath(opts))
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat).With(
		"service", cfg.ServiceName,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("shutdown uptrace failed", "error", err)
		}
	}()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("close app resources failed", "error", err)
		}
	}()

	return fn(ctx, a)
}

func configPath(opts *rootOptions) string {
	if path := strings.TrimSpace(opts.configFile); path != "" {
		return path
	}
	return os.Getenv("PIPELINE_CONFIG_FILE")
}

// runDay resolves the --date flag in loc, falling back to now.
func runDay(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.In(loc), nil
	}
	day, err := partition.ParseDate(raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc), nil
}

func writeJSON(w io.Writer, v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
