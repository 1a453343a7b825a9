// Package prepare provides the PrepareService use case: load every configured
// dataset, split it into training and evaluation lists, and persist both as
// cache-format manifests.
package prepare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/maauso/corpusprep/internal/corpus"
	"github.com/maauso/corpusprep/internal/formats"
	"github.com/maauso/corpusprep/internal/prepare/runid"
	"github.com/maauso/corpusprep/internal/storage"
)

// Manifest file names written for every run.
const (
	TrainManifest = "train.txt"
	EvalManifest  = "eval.txt"
)

// ErrNoDatasets is returned when a run is started without descriptors.
var ErrNoDatasets = errors.New("no datasets configured")

// CorpusLoader loads descriptors into training and evaluation lists.
type CorpusLoader interface {
	Load(ctx context.Context, descriptors []corpus.Descriptor) (train, eval []corpus.Record, err error)
}

// Input contains the parameters of one run.
type Input struct {
	// Descriptors lists the datasets to load, in order.
	Descriptors []corpus.Descriptor
	// RunID names the output directory. Generated when empty.
	RunID string
	// PushToS3 uploads both manifests after writing them locally.
	PushToS3 bool
}

// Output describes the manifests produced by a run.
type Output struct {
	RunID      string
	TrainPath  string
	EvalPath   string
	TrainCount int
	EvalCount  int
	// TrainURL and EvalURL are set when the manifests were pushed to S3.
	TrainURL string
	EvalURL  string
}

// Service orchestrates a preparation run.
type Service struct {
	loader CorpusLoader
	store  storage.Storage
	logger *slog.Logger
}

// NewService creates a new Service.
func NewService(loader CorpusLoader, store storage.Storage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		loader: loader,
		store:  store,
		logger: logger,
	}
}

// Run loads the datasets and writes the train and eval manifests.
// Nothing is written if loading fails.
func (s *Service) Run(ctx context.Context, in Input) (*Output, error) {
	if len(in.Descriptors) == 0 {
		return nil, ErrNoDatasets
	}

	out := &Output{RunID: in.RunID}
	if out.RunID == "" {
		out.RunID = runid.Generate()
	}
	logger := s.logger.With(slog.String("run_id", out.RunID))

	logger.Info("loading datasets", slog.Int("datasets", len(in.Descriptors)))
	train, eval, err := s.loader.Load(ctx, in.Descriptors)
	if err != nil {
		logger.Error("failed to load datasets", slog.String("error", err.Error()))
		return nil, fmt.Errorf("load datasets: %w", err)
	}
	out.TrainCount = len(train)
	out.EvalCount = len(eval)

	out.TrainPath, err = s.save(ctx, out.RunID+"/"+TrainManifest, train)
	if err != nil {
		return nil, err
	}
	out.EvalPath, err = s.save(ctx, out.RunID+"/"+EvalManifest, eval)
	if err != nil {
		if rmErr := s.store.Remove(ctx, []string{out.TrainPath}); rmErr != nil {
			logger.Warn("failed to remove partial output",
				slog.String("path", out.TrainPath),
				slog.String("error", rmErr.Error()),
			)
		}
		return nil, err
	}

	logger.Info("manifests written",
		slog.String("train_path", out.TrainPath),
		slog.String("eval_path", out.EvalPath),
		slog.Int("train", out.TrainCount),
		slog.Int("eval", out.EvalCount),
	)

	if !in.PushToS3 {
		return out, nil
	}

	if out.TrainURL, err = s.upload(ctx, out.TrainPath, out.RunID+"/"+TrainManifest); err != nil {
		return nil, err
	}
	if out.EvalURL, err = s.upload(ctx, out.EvalPath, out.RunID+"/"+EvalManifest); err != nil {
		return nil, err
	}
	logger.Info("manifests uploaded",
		slog.String("train_url", out.TrainURL),
		slog.String("eval_url", out.EvalURL),
	)
	return out, nil
}

func (s *Service) save(ctx context.Context, name string, records []corpus.Record) (string, error) {
	var buf bytes.Buffer
	if err := formats.WriteCache(&buf, records); err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	path, err := s.store.Save(ctx, name, &buf)
	if err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	return path, nil
}

func (s *Service) upload(ctx context.Context, path, key string) (string, error) {
	rc, err := s.store.Open(ctx, path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer rc.Close()

	url, err := s.store.UploadToS3(ctx, key, rc)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return url, nil
}
