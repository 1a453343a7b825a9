// Package bootstrap provides dependency initialization for corpusprep.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/maauso/corpusprep/internal/audio"
	"github.com/maauso/corpusprep/internal/config"
	"github.com/maauso/corpusprep/internal/corpus"
	"github.com/maauso/corpusprep/internal/formats"
	"github.com/maauso/corpusprep/internal/prepare"
	"github.com/maauso/corpusprep/internal/storage"
)

// Dependencies holds all initialized dependencies for a run.
type Dependencies struct {
	Registry       *corpus.Registry
	Loader         *corpus.Loader
	Storage        storage.Storage
	PrepareService *prepare.Service
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	registry, err := NewRegistry(cfg, logger)
	if err != nil {
		return nil, err
	}

	store, err := initStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	loader := corpus.NewLoader(registry, logger, loaderOptions(cfg)...)
	svc := prepare.NewService(loader, store, logger)

	return &Dependencies{
		Registry:       registry,
		Loader:         loader,
		Storage:        store,
		PrepareService: svc,
	}, nil
}

// NewRegistry builds the format registry from configuration.
func NewRegistry(cfg *config.Config, logger *slog.Logger) (*corpus.Registry, error) {
	policy, err := formats.ParseShortClipPolicy(cfg.ShortClipPolicy)
	if err != nil {
		return nil, fmt.Errorf("short clip policy: %w", err)
	}

	registry, err := formats.NewRegistry(formats.Options{
		Prober:          audio.NewProber(cfg.FFprobePath),
		MinClipSec:      cfg.MinClipSec,
		ShortClipPolicy: policy,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create format registry: %w", err)
	}
	return registry, nil
}

func loaderOptions(cfg *config.Config) []corpus.LoaderOption {
	opts := []corpus.LoaderOption{
		corpus.WithSplitter(corpus.HeadSplitter{
			MaxSize: cfg.EvalSplitMax,
			Ratio:   cfg.EvalSplitRatio,
		}),
	}
	if cfg.ShuffleSeed != 0 {
		opts = append(opts, corpus.WithSeed(cfg.ShuffleSeed))
	}
	return opts
}

// initStorage creates the appropriate storage backend based on configuration.
func initStorage(cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Prefix:          cfg.S3Prefix,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Storage(cfg.OutputDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Info("S3 storage configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
			slog.String("prefix", cfg.S3Prefix),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStorage(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	logger.Info("local storage configured",
		slog.String("output_dir", cfg.OutputDir),
	)
	return localStore, nil
}
