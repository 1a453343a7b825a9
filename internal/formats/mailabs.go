package formats

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/maauso/corpusprep/internal/corpus"
)

// MAILabs reads M-AILABS metadata files. The manifest argument is a
// comma-separated list of metadata paths; each one's audio lives in a wavs/
// directory next to it. Rows whose wav file is missing are skipped.
type MAILabs struct {
	logger *slog.Logger
}

// NewMAILabs creates a MAILabs parser.
func NewMAILabs(logger *slog.Logger) *MAILabs {
	if logger == nil {
		logger = slog.Default()
	}
	return &MAILabs{logger: logger}
}

// Parse implements corpus.Parser.
func (p *MAILabs) Parse(ctx context.Context, root, manifests string) ([]corpus.Record, error) {
	list := splitManifestList(manifests)
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no manifest named in %q", corpus.ErrManifestNotFound, manifests)
	}

	var records []corpus.Record
	for _, manifest := range list {
		p.logger.Info("reading manifest", slog.String("format", string(corpus.FormatMAILabs)), slog.String("manifest", manifest))

		wavDir := filepath.Join(root, filepath.Dir(manifest), "wavs")
		skipped := 0
		err := eachLine(ctx, root, manifest, func(path string, lineNo int, line string) error {
			cols, err := splitColumns(path, lineNo, line, "|", 2)
			if err != nil {
				return err
			}
			wavPath := filepath.Join(wavDir, cols[0]+".wav")
			if !isFile(wavPath) {
				skipped++
				return nil
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
		if skipped > 0 {
			p.logger.Debug("skipped rows without audio",
				slog.String("manifest", manifest),
				slog.Int("skipped", skipped),
			)
		}
	}
	return records, nil
}

// splitManifestList splits "a/metadata.csv, b/metadata.csv" into trimmed,
// non-empty paths.
func splitManifestList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
