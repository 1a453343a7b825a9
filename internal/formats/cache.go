package formats

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/maauso/corpusprep/internal/corpus"
)

// cacheSep separates the fields of a cache manifest line.
const cacheSep = "| "

// cacheColumns is text, wav path, mel name, linear name, wav length, mel length.
const cacheColumns = 6

// ErrUnencodable is returned when a record cannot be written in the cache format.
var ErrUnencodable = errors.New("record cannot be encoded in cache format")

// ParseCache reads a manifest written by the feature extraction stage.
// Paths are taken from the rows as-is.
func ParseCache(ctx context.Context, root, manifest string) ([]corpus.Record, error) {
	var records []corpus.Record
	err := eachLine(ctx, root, manifest, func(path string, lineNo int, line string) error {
		cols := strings.Split(line, cacheSep)
		if len(cols) != cacheColumns {
			return rowError(path, lineNo, "expected %d columns separated by %q, got %d", cacheColumns, cacheSep, len(cols))
		}

		rec, err := newRecord(path, lineNo, cols[0], cols[1])
		if err != nil {
			return err
		}
		rec.MelPath = cols[2]
		rec.LinearPath = cols[3]
		if rec.AudioLength, err = parseLength(cols[4]); err != nil {
			return rowError(path, lineNo, "wav length: %v", err)
		}
		if rec.MelLength, err = parseLength(cols[5]); err != nil {
			return rowError(path, lineNo, "mel length: %v", err)
		}

		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func parseLength(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// WriteCache writes records in the cache format, one line per record.
func WriteCache(w io.Writer, records []corpus.Record) error {
	bw := bufio.NewWriter(w)
	for i, rec := range records {
		if err := checkEncodable(rec); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		fields := []string{
			rec.Text,
			rec.AudioPath,
			rec.MelPath,
			rec.LinearPath,
			strconv.FormatInt(rec.AudioLength, 10),
			strconv.FormatInt(rec.MelLength, 10),
		}
		if _, err := bw.WriteString(strings.Join(fields, cacheSep) + "\n"); err != nil {
			return fmt.Errorf("write cache manifest: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write cache manifest: %w", err)
	}
	return nil
}

func checkEncodable(rec corpus.Record) error {
	if strings.TrimSpace(rec.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrUnencodable)
	}
	fields := []struct{ name, value string }{
		{"text", rec.Text},
		{"audio path", rec.AudioPath},
		{"mel path", rec.MelPath},
		{"linear path", rec.LinearPath},
	}
	for _, f := range fields {
		if strings.Contains(f.value, cacheSep) || strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("%w: %s contains a separator or line break", ErrUnencodable, f.name)
		}
	}
	return nil
}
