// Package formats implements one corpus.Parser per supported dataset layout
// and registers them into a corpus.Registry.
package formats

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/maauso/corpusprep/internal/corpus"
)

// maxLineBytes bounds a single manifest line.
const maxLineBytes = 1 << 20

// openManifest opens root/manifest. A missing file maps to corpus.ErrManifestNotFound.
func openManifest(root, manifest string) (*os.File, string, error) {
	path := filepath.Join(root, manifest)
	f, err := os.Open(path) // #nosec G304 - manifest paths come from the dataset config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, path, fmt.Errorf("%w: %s", corpus.ErrManifestNotFound, path)
		}
		return nil, path, fmt.Errorf("open manifest: %w", err)
	}
	return f, path, nil
}

// eachLine reads root/manifest to completion and calls fn for every
// non-blank line with its 1-based line number. The trailing line break is
// removed; everything else is passed through untouched.
func eachLine(ctx context.Context, root, manifest string, fn func(path string, lineNo int, line string) error) error {
	f, path, err := openManifest(root, manifest)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("parse cancelled: %w", err)
		}
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(path, lineNo, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read manifest %s: %w", path, err)
	}
	return nil
}

// splitColumns splits line on sep and fails with a RowError when fewer than
// minCols columns come out.
func splitColumns(path string, lineNo int, line, sep string, minCols int) ([]string, error) {
	cols := strings.Split(line, sep)
	if len(cols) < minCols {
		return nil, rowError(path, lineNo, "expected at least %d columns separated by %q, got %d", minCols, sep, len(cols))
	}
	return cols, nil
}

func rowError(path string, lineNo int, format string, args ...any) error {
	return &corpus.RowError{Path: path, Line: lineNo, Reason: fmt.Sprintf(format, args...)}
}

// newRecord builds a record, rejecting empty transcripts.
func newRecord(path string, lineNo int, text, audioPath string) (corpus.Record, error) {
	if strings.TrimSpace(text) == "" {
		return corpus.Record{}, rowError(path, lineNo, "empty transcript")
	}
	return corpus.Record{Text: text, AudioPath: audioPath}, nil
}
