package formats

import (
	"context"
	"path/filepath"

	"github.com/maauso/corpusprep/internal/corpus"
)

// ParseLJSpeech reads an LJ Speech metadata file: "<id>|<text>|<normalized text>".
// The raw transcript (second column) is used; audio lives at root/wavs/<id>.wav.
func ParseLJSpeech(ctx context.Context, root, manifest string) ([]corpus.Record, error) {
	var records []corpus.Record
	err := eachLine(ctx, root, manifest, func(path string, lineNo int, line string) error {
		cols, err := splitColumns(path, lineNo, line, "|", 2)
		if err != nil {
			return err
		}
		rec, err := newRecord(path, lineNo, cols[1], filepath.Join(root, "wavs", cols[0]+".wav"))
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
