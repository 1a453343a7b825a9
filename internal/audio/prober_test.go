package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkFFprobe skips test if ffprobe is not available.
func checkFFprobe(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not found in PATH, skipping test")
	}
}

// createTestWAV writes a silent 16 kHz mono 16-bit WAV file of the given length.
func createTestWAV(t *testing.T, path string, durationSec float64) {
	t.Helper()

	const sampleRate = 16000
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, int(durationSec*sampleRate)),
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func TestWAVProber_Duration(t *testing.T) {
	dir := t.TempDir()
	tests := []float64{0.59, 0.61, 2.5}

	for _, want := range tests {
		path := filepath.Join(dir, "clip.wav")
		createTestWAV(t, path, want)

		got, err := WAVProber{}.Duration(context.Background(), path)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 0.001)
	}
}

// writeWAVWithMetadata writes a 16 kHz mono 16-bit WAV file whose fmt and
// data chunks are separated by a LIST/INFO chunk and a JUNK chunk, the way
// ffmpeg and sox tag their output.
func writeWAVWithMetadata(t *testing.T, path string, samples, junkBytes int) {
	t.Helper()

	var body bytes.Buffer
	le := binary.LittleEndian
	chunk := func(id string, payload []byte) {
		body.WriteString(id)
		require.NoError(t, binary.Write(&body, le, uint32(len(payload))))
		body.Write(payload)
	}

	var fmtChunk bytes.Buffer
	for _, v := range []any{uint16(1), uint16(1), uint32(16000), uint32(32000), uint16(2), uint16(16)} {
		require.NoError(t, binary.Write(&fmtChunk, le, v))
	}
	chunk("fmt ", fmtChunk.Bytes())

	var list bytes.Buffer
	list.WriteString("INFO")
	list.WriteString("ISFT")
	require.NoError(t, binary.Write(&list, le, uint32(14)))
	list.WriteString("Lavf58.76.100\x00")
	chunk("LIST", list.Bytes())

	chunk("JUNK", make([]byte, junkBytes))
	chunk("data", make([]byte, samples*2))

	var file bytes.Buffer
	file.WriteString("RIFF")
	require.NoError(t, binary.Write(&file, le, uint32(4+body.Len())))
	file.WriteString("WAVE")
	file.Write(body.Bytes())
	require.NoError(t, os.WriteFile(path, file.Bytes(), 0o644))
}

func TestWAVProber_IgnoresMetadataChunks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagged.wav")
	// 0.5995 s of audio behind 4 KB of metadata.
	writeWAVWithMetadata(t, path, 9592, 4096)

	got, err := WAVProber{}.Duration(context.Background(), path)
	require.NoError(t, err)
	assert.InDelta(t, 0.5995, got, 0.001)
	assert.Less(t, got, 0.6)
}

func TestWAVProber_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wave file"), 0o644))

	_, err := WAVProber{}.Duration(context.Background(), path)
	assert.ErrorIs(t, err, ErrInvalidAudio)
}

func TestWAVProber_MissingFile(t *testing.T) {
	_, err := WAVProber{}.Duration(context.Background(), filepath.Join(t.TempDir(), "absent.wav"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWAVProber_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WAVProber{}.Duration(ctx, "clip.wav")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtProber_Dispatch(t *testing.T) {
	var calls []string
	fake := func(name string, sec float64) Prober {
		return ProberFunc(func(_ context.Context, path string) (float64, error) {
			calls = append(calls, name+":"+filepath.Base(path))
			return sec, nil
		})
	}
	p := &ExtProber{WAV: fake("wav", 1), Fallback: fake("fallback", 2)}

	d, err := p.Duration(context.Background(), "/data/a.wav")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d, 1e-9)

	d, err = p.Duration(context.Background(), "/data/B.WAV")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d, 1e-9)

	d, err = p.Duration(context.Background(), "/data/c.mp3")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, d, 1e-9)

	assert.Equal(t, []string{"wav:a.wav", "wav:B.WAV", "fallback:c.mp3"}, calls)
}

func TestExtProber_NoWAVProber(t *testing.T) {
	p := &ExtProber{Fallback: ProberFunc(func(context.Context, string) (float64, error) {
		return 4, nil
	})}

	d, err := p.Duration(context.Background(), "a.wav")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, d, 1e-9)
}

func TestNewProber(t *testing.T) {
	p := NewProber("")
	assert.IsType(t, WAVProber{}, p.WAV)
	require.IsType(t, &FFprobeProber{}, p.Fallback)
	assert.Equal(t, "ffprobe", p.Fallback.(*FFprobeProber).ffprobePath)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr error
	}{
		{"plain", "3.141000\n", 3.141, nil},
		{"integer", "12", 12, nil},
		{"empty", "", 0, ErrInvalidAudio},
		{"not available", "N/A\n", 0, ErrInvalidAudio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDuration(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := parseDuration("three")
	assert.Error(t, err)
}

func TestFFprobeProber_Duration(t *testing.T) {
	checkFFprobe(t)

	path := filepath.Join(t.TempDir(), "clip.wav")
	createTestWAV(t, path, 1.5)

	got, err := NewFFprobeProber("").Duration(context.Background(), path)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got, 0.01)
}

func TestFFprobeProber_MissingBinary(t *testing.T) {
	p := NewFFprobeProber(filepath.Join(t.TempDir(), "no-such-ffprobe"))

	_, err := p.Duration(context.Background(), "clip.mp3")
	assert.ErrorIs(t, err, ErrFFprobeExecution)
}
