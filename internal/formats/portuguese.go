package formats

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/maauso/corpusprep/internal/audio"
	"github.com/maauso/corpusprep/internal/corpus"
)

// ShortClipPolicy decides what happens to clips below the minimum duration.
type ShortClipPolicy string

const (
	// ShortClipDrop skips the row and logs it.
	ShortClipDrop ShortClipPolicy = "drop"
	// ShortClipKeep keeps the row.
	ShortClipKeep ShortClipPolicy = "keep"
	// ShortClipFail aborts the parse with corpus.ErrShortClip.
	ShortClipFail ShortClipPolicy = "fail"
)

// DefaultMinClipSec is the default minimum clip duration in seconds.
const DefaultMinClipSec = 0.6

// IsValid returns true if the policy is one of the known policies.
func (p ShortClipPolicy) IsValid() bool {
	return p == ShortClipDrop || p == ShortClipKeep || p == ShortClipFail
}

// ParseShortClipPolicy parses a policy name case-insensitively.
func ParseShortClipPolicy(s string) (ShortClipPolicy, error) {
	p := ShortClipPolicy(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown short clip policy %q", s)
	}
	return p, nil
}

// TTSPortuguese reads the TTS-Portuguese corpus manifest, where "==" and "|"
// both separate "<relative wav path>" from "<text>".
type TTSPortuguese struct {
	prober     audio.Prober
	minClipSec float64
	policy     ShortClipPolicy
	logger     *slog.Logger
}

// NewTTSPortuguese creates a TTS-Portuguese parser that probes every clip
// with prober and applies policy to clips shorter than minClipSec.
// A nil prober defaults to audio.NewProber("").
func NewTTSPortuguese(prober audio.Prober, minClipSec float64, policy ShortClipPolicy, logger *slog.Logger) *TTSPortuguese {
	if prober == nil {
		prober = audio.NewProber("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if policy == "" {
		policy = ShortClipDrop
	}
	return &TTSPortuguese{
		prober:     prober,
		minClipSec: minClipSec,
		policy:     policy,
		logger:     logger,
	}
}

// Parse implements corpus.Parser.
func (p *TTSPortuguese) Parse(ctx context.Context, root, manifest string) ([]corpus.Record, error) {
	var records []corpus.Record
	err := eachLine(ctx, root, manifest, func(path string, lineNo int, line string) error {
		cols, err := splitColumns(path, lineNo, strings.ReplaceAll(line, "==", "|"), "|", 2)
		if err != nil {
			return err
		}
		wavPath := filepath.Join(root, cols[0])

		if p.policy != ShortClipKeep {
			dur, err := p.prober.Duration(ctx, wavPath)
			if err != nil {
				return fmt.Errorf("probe %s: %w", wavPath, err)
			}
			if dur < p.minClipSec {
				if p.policy == ShortClipFail {
					return fmt.Errorf("%w: %s is %.3fs, minimum %.3fs", corpus.ErrShortClip, wavPath, dur, p.minClipSec)
				}
				p.logger.Warn("ignored short clip",
					slog.String("file", strings.TrimSuffix(filepath.Base(wavPath), ".wav")),
					slog.Float64("duration_sec", dur),
					slog.Float64("min_sec", p.minClipSec),
				)
				return nil
			}
		}

		rec, err := newRecord(path, lineNo, cols[1], wavPath)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
