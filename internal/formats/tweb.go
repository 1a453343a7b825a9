package formats

import (
	"context"
	"path/filepath"

	"github.com/maauso/corpusprep/internal/corpus"
)

// ParseTWEB reads The World English Bible manifest: "<id>\t<text>".
// Audio lives at root/<id>.wav.
func ParseTWEB(ctx context.Context, root, manifest string) ([]corpus.Record, error) {
	var records []corpus.Record
	err := eachLine(ctx, root, manifest, func(path string, lineNo int, line string) error {
		cols, err := splitColumns(path, lineNo, line, "\t", 2)
		if err != nil {
			return err
		}
		rec, err := newRecord(path, lineNo, cols[1], filepath.Join(root, cols[0]+".wav"))
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
