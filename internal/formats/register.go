package formats

import (
	"fmt"
	"log/slog"

	"github.com/maauso/corpusprep/internal/audio"
	"github.com/maauso/corpusprep/internal/corpus"
)

// Options configures the parsers that need collaborators.
type Options struct {
	// Prober measures clip durations for the TTS-Portuguese short-clip filter.
	Prober audio.Prober
	// MinClipSec is the TTS-Portuguese minimum clip duration.
	// Zero or negative selects the default of 0.6 seconds.
	MinClipSec float64
	// ShortClipPolicy decides what happens to short TTS-Portuguese clips.
	// Default: drop.
	ShortClipPolicy ShortClipPolicy
	Logger          *slog.Logger
}

// Register adds a parser for every supported format to reg.
func Register(reg *corpus.Registry, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Prober == nil {
		opts.Prober = audio.NewProber("")
	}
	if opts.MinClipSec <= 0 {
		opts.MinClipSec = DefaultMinClipSec
	}
	if opts.ShortClipPolicy != "" && !opts.ShortClipPolicy.IsValid() {
		return fmt.Errorf("register formats: unknown short clip policy %q", opts.ShortClipPolicy)
	}

	parsers := map[corpus.Format]corpus.Parser{
		corpus.FormatCache:         corpus.ParserFunc(ParseCache),
		corpus.FormatTWEB:          corpus.ParserFunc(ParseTWEB),
		corpus.FormatMAILabs:       NewMAILabs(opts.Logger),
		corpus.FormatLJSpeech:      corpus.ParserFunc(ParseLJSpeech),
		corpus.FormatTTSPortuguese: NewTTSPortuguese(opts.Prober, opts.MinClipSec, opts.ShortClipPolicy, opts.Logger),
		corpus.FormatNancy:         corpus.ParserFunc(ParseNancy),
		corpus.FormatCommonVoice:   NewCommonVoice(opts.Logger),
	}
	for _, f := range corpus.Formats() {
		if err := reg.Register(f, parsers[f]); err != nil {
			return fmt.Errorf("register formats: %w", err)
		}
	}
	return nil
}

// NewRegistry returns a registry with every supported format registered.
func NewRegistry(opts Options) (*corpus.Registry, error) {
	reg := corpus.NewRegistry()
	if err := Register(reg, opts); err != nil {
		return nil, err
	}
	return reg, nil
}
