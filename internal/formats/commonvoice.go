package formats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/maauso/corpusprep/internal/corpus"
)

// CommonVoice reads a Common Voice TSV release file
// (client_id, path, sentence, ...). Only rows whose audio path names an
// .mp3 clip are kept, which also drops the header row. Quotes follow the
// lenient rules of tsvReader, so a sentence like `"Ja", sagte er.` never
// spills into the next row.
type CommonVoice struct {
	logger *slog.Logger
}

// NewCommonVoice creates a CommonVoice parser.
func NewCommonVoice(logger *slog.Logger) *CommonVoice {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommonVoice{logger: logger}
}

// Parse implements corpus.Parser.
func (p *CommonVoice) Parse(ctx context.Context, root, manifest string) ([]corpus.Record, error) {
	f, path, err := openManifest(root, manifest)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := newTSVReader(f)

	var records []corpus.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("parse cancelled: %w", err)
		}
		row, lineNo, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read manifest %s: %w", path, err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) < 3 {
			return nil, rowError(path, lineNo, "expected at least 3 tab-separated columns, got %d", len(row))
		}

		audioPath := filepath.Join(root, row[1])
		if !strings.Contains(audioPath, ".mp3") {
			continue
		}
		rec, err := newRecord(path, lineNo, row[2], audioPath)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if len(records) > 0 {
		p.logger.Debug("first record",
			slog.String("text", records[0].Text),
			slog.String("audio_path", records[0].AudioPath),
		)
	}
	return records, nil
}
