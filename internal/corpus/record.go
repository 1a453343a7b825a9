// Package corpus provides the canonical speech-corpus record, the format
// registry that maps dataset layouts to parsers, and the loader that merges
// every configured dataset into training and evaluation lists.
package corpus

import "context"

// Record is one transcript paired with its audio file.
// Feature fields are only populated by formats that carry precomputed
// features (the cache format).
type Record struct {
	// Text is the transcript. Never empty.
	Text string
	// AudioPath is the path to the audio file. Its existence is not checked
	// unless the format filters on it.
	AudioPath string

	// MelPath is the name of the precomputed mel spectrogram file.
	MelPath string
	// LinearPath is the name of the precomputed linear spectrogram file.
	LinearPath string
	// AudioLength is the audio length in samples.
	AudioLength int64
	// MelLength is the mel spectrogram length in frames.
	MelLength int64
}

// Descriptor names the format, root path and manifests of one dataset.
type Descriptor struct {
	Name          string `json:"name" yaml:"name" validate:"required"`
	Path          string `json:"path" yaml:"path" validate:"required"`
	MetaFileTrain string `json:"meta_file_train" yaml:"meta_file_train" validate:"required"`
	// MetaFileVal is optional. When empty the evaluation list is carved out
	// of the training list by the loader's Splitter.
	MetaFileVal string `json:"meta_file_val,omitempty" yaml:"meta_file_val,omitempty"`
}

// HasValidation reports whether the descriptor names its own validation manifest.
func (d Descriptor) HasValidation() bool {
	return d.MetaFileVal != ""
}

// Parser turns one dataset manifest into records.
// Implementations must not keep state between calls. The manifest path is
// relative to root.
type Parser interface {
	Parse(ctx context.Context, root, manifest string) ([]Record, error)
}

// ParserFunc adapts a plain function to the Parser interface.
type ParserFunc func(ctx context.Context, root, manifest string) ([]Record, error)

// Parse calls f.
func (f ParserFunc) Parse(ctx context.Context, root, manifest string) ([]Record, error) {
	return f(ctx, root, manifest)
}
