package corpus

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func numbered(n int) []Record {
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{Text: fmt.Sprintf("text %d", i), AudioPath: fmt.Sprintf("/wavs/%04d.wav", i)}
	}
	return records
}

func TestHeadSplitter_Size(t *testing.T) {
	tests := []struct {
		name     string
		splitter HeadSplitter
		n        int
		want     int
	}{
		{"default tiny corpus", NewHeadSplitter(), 50, 0},
		{"default one percent", NewHeadSplitter(), 13100, 131},
		{"default capped", NewHeadSplitter(), 100000, 500},
		{"uncapped", HeadSplitter{Ratio: 0.5}, 10, 5},
		{"full ratio", HeadSplitter{Ratio: 1}, 10, 10},
		{"zero ratio", HeadSplitter{MaxSize: 10}, 10, 0},
		{"empty input", NewHeadSplitter(), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.splitter.Size(tt.n))
		})
	}
}

func TestHeadSplitter_Split(t *testing.T) {
	input := numbered(20)
	s := HeadSplitter{MaxSize: 3, Ratio: 0.5}

	heldOut, remainder := s.Split(input)

	assert.Len(t, heldOut, 3)
	assert.Len(t, remainder, 17)
	// Order is preserved: the held-out subset is the head of the input.
	assert.Equal(t, input[:3], heldOut)
	assert.Equal(t, input[3:], remainder)

	// Appending to heldOut must not clobber remainder.
	heldOut = append(heldOut, Record{Text: "extra"})
	assert.Equal(t, "text 3", remainder[0].Text)
	assert.Len(t, heldOut, 4)
}
