// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Static errors for configuration validation.
var (
	// ErrDatasetsFileRequired is returned when DATASETS_FILE is not set.
	ErrDatasetsFileRequired = errors.New("config: DATASETS_FILE is required")
	// ErrInvalidEvalSplit is returned when the eval split settings are out of range.
	ErrInvalidEvalSplit = errors.New("config: EVAL_SPLIT_RATIO must be in [0, 1] and EVAL_SPLIT_MAX must not be negative")
	// ErrInvalidMinClip is returned when MIN_CLIP_SEC is not positive.
	// The filter is turned off with SHORT_CLIP_POLICY=keep instead.
	ErrInvalidMinClip = errors.New("config: MIN_CLIP_SEC must be positive (use SHORT_CLIP_POLICY=keep to disable the filter)")
	// ErrInvalidShortClipPolicy is returned when SHORT_CLIP_POLICY is not drop, keep or fail.
	ErrInvalidShortClipPolicy = errors.New("config: SHORT_CLIP_POLICY must be one of drop, keep, fail")
)

// Config holds all configuration for the application.
type Config struct {
	// Input settings
	DatasetsFile string `env:"DATASETS_FILE, required" json:"datasets_file"`

	// Output settings
	OutputDir string `env:"OUTPUT_DIR, default=/tmp/corpusprep" json:"output_dir"`

	// Split settings
	EvalSplitMax   int     `env:"EVAL_SPLIT_MAX, default=500" json:"eval_split_max"`
	EvalSplitRatio float64 `env:"EVAL_SPLIT_RATIO, default=0.01" json:"eval_split_ratio"`
	ShuffleSeed    uint64  `env:"SHUFFLE_SEED, default=0" json:"shuffle_seed"` // 0 means random

	// Short clip filter settings
	MinClipSec      float64 `env:"MIN_CLIP_SEC, default=0.6" json:"min_clip_sec"`
	ShortClipPolicy string  `env:"SHORT_CLIP_POLICY, default=drop" json:"short_clip_policy"`
	FFprobePath     string  `env:"FFPROBE_PATH, default=ffprobe" json:"ffprobe_path"`

	// Optional S3 settings
	S3Bucket           string `env:"S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"S3_REGION" json:"s3_region,omitempty"`
	S3Prefix           string `env:"S3_PREFIX, default=corpus" json:"s3_prefix,omitempty"`
	S3Endpoint         string `env:"S3_ENDPOINT" json:"s3_endpoint,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// S3Enabled returns true if S3 configuration is provided.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// Load reads configuration from environment variables using go-envconfig.
// If envFile names an existing file, its variables are loaded first; variables
// already set in the environment take precedence.
func Load(envFile string) (*Config, error) {
	return LoadWithOverrides(envFile, nil)
}

// LoadWithOverrides is Load with explicit values (typically command line
// flags) that take precedence over the environment.
func LoadWithOverrides(envFile string, overrides map[string]string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	lookuper := envconfig.OsLookuper()
	if len(overrides) > 0 {
		lookuper = envconfig.MultiLookuper(envconfig.MapLookuper(overrides), lookuper)
	}

	cfg := &Config{}
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		// Map envconfig errors to our domain errors for required fields
		if strings.Contains(err.Error(), "DATASETS_FILE") {
			return nil, ErrDatasetsFileRequired
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DatasetsFile == "" {
		return ErrDatasetsFileRequired
	}
	if c.EvalSplitRatio < 0 || c.EvalSplitRatio > 1 || c.EvalSplitMax < 0 {
		return ErrInvalidEvalSplit
	}
	if c.MinClipSec <= 0 {
		return ErrInvalidMinClip
	}
	switch strings.ToLower(c.ShortClipPolicy) {
	case "drop", "keep", "fail":
	default:
		return ErrInvalidShortClipPolicy
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{DatasetsFile: %s, OutputDir: %s, EvalSplitMax: %d, EvalSplitRatio: %g, MinClipSec: %g, ShortClipPolicy: %s, S3Bucket: %s, S3Region: %s, LogFormat: %s, LogLevel: %s}",
		c.DatasetsFile,
		c.OutputDir,
		c.EvalSplitMax,
		c.EvalSplitRatio,
		c.MinClipSec,
		c.ShortClipPolicy,
		c.S3Bucket,
		c.S3Region,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
