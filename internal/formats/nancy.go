package formats

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/maauso/corpusprep/internal/corpus"
)

// ParseNancy reads the Blizzard Nancy prompt list, one
// `( nancy00001 "Prompt text." )` entry per line. The utterance id is the
// second whitespace token and audio lives at root/wavn/<id>.wav.
//
// The transcript keeps the corpus' historical trimming: everything between the
// first and last double quote, minus the character right before the closing
// quote (the final punctuation mark).
func ParseNancy(ctx context.Context, root, manifest string) ([]corpus.Record, error) {
	var records []corpus.Record
	err := eachLine(ctx, root, manifest, func(path string, lineNo int, line string) error {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return rowError(path, lineNo, "expected an utterance id as second token")
		}
		id := fields[1]

		first := strings.Index(line, `"`)
		last := strings.LastIndex(line, `"`)
		if first < 0 || last <= first {
			return rowError(path, lineNo, "expected a quoted transcript")
		}
		text := ""
		if last-1 > first+1 {
			text = line[first+1 : last-1]
		}

		rec, err := newRecord(path, lineNo, text, filepath.Join(root, "wavn", id+".wav"))
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
