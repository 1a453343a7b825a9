package formats

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

type tsvState int

const (
	tsvStartRecord tsvState = iota
	tsvStartField
	tsvInField
	tsvInQuoted
	tsvQuoteInQuoted
)

// tsvReader reads tab-separated records with lenient double-quote handling:
// a quote opens a quoted field only at the start of a field, "" inside a
// quoted field is a literal quote, and text after a closing quote is appended
// to the field up to the next tab or line break. Quotes elsewhere are literal.
// Blank lines produce no record.
type tsvReader struct {
	r    *bufio.Reader
	line int
}

func newTSVReader(r io.Reader) *tsvReader {
	return &tsvReader{r: bufio.NewReader(r), line: 1}
}

// Read returns the next record and the 1-based line it starts on.
// It returns io.EOF when no records remain.
func (t *tsvReader) Read() ([]string, int, error) {
	var (
		fields []string
		field  strings.Builder
		state  = tsvStartRecord
		start  = t.line
	)
	saveField := func() {
		fields = append(fields, field.String())
		field.Reset()
	}

	for {
		c, _, err := t.r.ReadRune()
		if errors.Is(err, io.EOF) {
			switch state {
			case tsvStartRecord:
				return nil, 0, io.EOF
			case tsvStartField, tsvInField, tsvInQuoted, tsvQuoteInQuoted:
				saveField()
			}
			return fields, start, nil
		}
		if err != nil {
			return nil, 0, err
		}

		if c == '\r' {
			// \r\n and a bare \r both end a line.
			if next, _, err := t.r.ReadRune(); err == nil && next != '\n' {
				_ = t.r.UnreadRune()
			}
			c = '\n'
		}
		if c == '\n' {
			t.line++
		}

		switch state {
		case tsvStartRecord:
			if c == '\n' {
				start = t.line
				continue
			}
			state = tsvStartField
			fallthrough
		case tsvStartField:
			switch c {
			case '\n':
				saveField()
				return fields, start, nil
			case '"':
				state = tsvInQuoted
			case '\t':
				saveField()
			default:
				field.WriteRune(c)
				state = tsvInField
			}
		case tsvInField:
			switch c {
			case '\n':
				saveField()
				return fields, start, nil
			case '\t':
				saveField()
				state = tsvStartField
			default:
				field.WriteRune(c)
			}
		case tsvInQuoted:
			if c == '"' {
				state = tsvQuoteInQuoted
			} else {
				field.WriteRune(c)
			}
		case tsvQuoteInQuoted:
			switch c {
			case '"':
				field.WriteRune('"')
				state = tsvInQuoted
			case '\t':
				saveField()
				state = tsvStartField
			case '\n':
				saveField()
				return fields, start, nil
			default:
				field.WriteRune(c)
				state = tsvInField
			}
		}
	}
}
