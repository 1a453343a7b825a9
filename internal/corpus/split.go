package corpus

// Splitter carves a held-out subset out of an already shuffled list.
// Implementations must partition the input without overlap and must not
// reorder it.
type Splitter interface {
	Split(records []Record) (heldOut, remainder []Record)
}

// Default HeadSplitter policy.
const (
	DefaultEvalSplitMax   = 500
	DefaultEvalSplitRatio = 0.01
)

// HeadSplitter holds out the first min(MaxSize, floor(len*Ratio)) records.
type HeadSplitter struct {
	// MaxSize caps the held-out subset. Zero or negative means no cap.
	MaxSize int
	// Ratio is the held-out fraction of the input, in [0, 1].
	Ratio float64
}

// NewHeadSplitter returns a HeadSplitter with the default policy.
func NewHeadSplitter() HeadSplitter {
	return HeadSplitter{MaxSize: DefaultEvalSplitMax, Ratio: DefaultEvalSplitRatio}
}

// Size returns the held-out size for an input of n records.
func (s HeadSplitter) Size(n int) int {
	size := int(float64(n) * s.Ratio)
	if s.MaxSize > 0 && size > s.MaxSize {
		size = s.MaxSize
	}
	if size < 0 {
		return 0
	}
	if size > n {
		return n
	}
	return size
}

// Split implements Splitter. The returned slices do not share capacity, so
// appending to heldOut never overwrites remainder.
func (s HeadSplitter) Split(records []Record) ([]Record, []Record) {
	n := s.Size(len(records))
	return records[:n:n], records[n:]
}

var _ Splitter = HeadSplitter{}
