package audio

import (
	"context"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// WAVProber reads the duration from a RIFF/WAVE file's fmt and data chunk
// headers without decoding samples.
type WAVProber struct{}

// Duration implements Prober. The length is the data chunk size over the
// byte rate; metadata chunks such as LIST/INFO do not count.
func (WAVProber) Duration(ctx context.Context, path string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("probe cancelled: %w", err)
	}

	f, err := os.Open(path) // #nosec G304 - path comes from a dataset manifest
	if err != nil {
		return 0, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidAudio, path)
	}
	if err := dec.FwdToPCM(); err != nil {
		return 0, fmt.Errorf("%w: %s: find data chunk: %w", ErrInvalidAudio, path, err)
	}

	bytesPerSec := float64(dec.SampleRate) * float64(dec.NumChans) * float64(dec.BitDepth/8)
	if bytesPerSec == 0 {
		return 0, fmt.Errorf("%w: %s: zero byte rate", ErrInvalidAudio, path)
	}
	return float64(dec.PCMSize) / bytesPerSec, nil
}
