package cmd

import (
	"context"
	"fmt"

	"storage-kit/core/config"
	"storage-kit/core/logger"
	"storage-kit/core/policy"
	"storage-kit/core/queue"
	"storage-kit/core/storage"
	"storage-kit/core/telemetry"
	"storage-kit/feature/blob"
	queuefeature "storage-kit/feature/queue"

	"go.uber.org/zap"
)

// Version is reported on traces.
var Version = "dev"

// services is everything a command needs, built from configuration.
type services struct {
	cfg      *config.Config
	logger   *zap.Logger
	policy   policy.Policy
	blobs    *blob.Feature
	queues   *queuefeature.Feature
	shutdown func(context.Context) error
}

func newServices(ctx context.Context) (*services, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return buildServices(ctx, cfg)
}

func buildServices(ctx context.Context, cfg *config.Config) (*services, error) {
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	pol, err := cfg.Policy.Policy()
	if err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	acct, err := cfg.Storage.Account()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewClient(cfg.Storage, acct, pol)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	queues, err := queue.NewClient(cfg.Queue, acct, pol)
	if err != nil {
		return nil, fmt.Errorf("failed to create queue client: %w", err)
	}

	shutdown, err := telemetry.Init(ctx, cfg.Telemetry, Version)
	if err != nil {
		return nil, fmt.Errorf("failed to init telemetry: %w", err)
	}

	logg.Debug("Services ready",
		zap.Stringer("account", acct),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("queue_driver", cfg.Queue.Driver),
	)

	return &services{
		cfg:      cfg,
		logger:   logg,
		policy:   pol,
		blobs:    blob.NewFeature(store, pol, logg),
		queues:   queuefeature.NewFeature(queues, pol, logg),
		shutdown: shutdown,
	}, nil
}

// Close flushes traces and logs.
func (s *services) Close(ctx context.Context) {
	if err := s.shutdown(ctx); err != nil {
		s.logger.Warn("Telemetry shutdown failed", zap.Error(err))
	}
	_ = s.logger.Sync()
}
