// Package audio provides duration probes for audio files referenced by
// corpus manifests.
package audio

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// ErrInvalidAudio is returned when a file cannot be read as audio.
var ErrInvalidAudio = errors.New("invalid audio file")

// Prober reports the duration of an audio file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, path string) (float64, error)

// Duration calls f.
func (f ProberFunc) Duration(ctx context.Context, path string) (float64, error) {
	return f(ctx, path)
}

// ExtProber dispatches on the file extension: .wav files are read natively,
// anything else goes through the fallback prober.
type ExtProber struct {
	WAV      Prober
	Fallback Prober
}

// NewProber returns an ExtProber using WAVProber for .wav files and ffprobe
// at ffprobePath for everything else.
func NewProber(ffprobePath string) *ExtProber {
	return &ExtProber{
		WAV:      WAVProber{},
		Fallback: NewFFprobeProber(ffprobePath),
	}
}

// Duration implements Prober.
func (p *ExtProber) Duration(ctx context.Context, path string) (float64, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") && p.WAV != nil {
		return p.WAV.Duration(ctx, path)
	}
	return p.Fallback.Duration(ctx, path)
}

// Verify interface implementation at compile time.
var (
	_ Prober = (*ExtProber)(nil)
	_ Prober = WAVProber{}
	_ Prober = (*FFprobeProber)(nil)
)
