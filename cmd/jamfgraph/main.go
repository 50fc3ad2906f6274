// Command jamfgraph runs one ingestion pass against a Jamf Pro instance and
// writes the resulting entity-relationship graph to job state.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/zero-day-ai/jamfgraph/config"
	"github.com/zero-day-ai/jamfgraph/convert"
	"github.com/zero-day-ai/jamfgraph/ingest"
	"github.com/zero-day-ai/jamfgraph/jamf"
	"github.com/zero-day-ai/jamfgraph/state"
)

func main() {
	configPath := flag.String("config", "jamfgraph.yaml", "path to the configuration file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(*configPath, logger); err != nil {
		logger.Error("ingestion failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := jamf.NewRESTClient(jamf.Options{
		Host:     cfg.Jamf.Host,
		Username: cfg.Jamf.Username,
		Password: cfg.Jamf.Password,
		Timeout:  cfg.Jamf.GetRequestTimeout(),
	})
	if err != nil {
		return err
	}

	var jobState state.JobState
	if cfg.Redis.URL != "" {
		redisState, err := state.NewRedisJobState(state.RedisOptions{
			URL:       cfg.Redis.URL,
			Namespace: cfg.Redis.Namespace,
		})
		if err != nil {
			return fmt.Errorf("connect job state: %w", err)
		}
		defer redisState.Close()
		jobState = redisState
		logger.Info("using Redis job state", "namespace", cfg.Redis.Namespace)
	} else {
		jobState = state.NewMemoryJobState()
		logger.Warn("no redis.url configured, using in-memory job state")
	}

	tp := ingest.NewTracerProvider(logger)
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	runner, err := ingest.NewRunner(ingest.DefaultSteps(),
		ingest.WithLogger(logger),
		ingest.WithTracerProvider(tp))
	if err != nil {
		return err
	}

	return runner.Run(ctx, &ingest.Context{
		Client:  client,
		State:   jobState,
		Account: convert.Account{ID: cfg.Account.ID, Name: cfg.Account.Name},
	})
}
