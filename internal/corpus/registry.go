package corpus

import (
	"fmt"
	"sort"
)

// Registry maps formats to parsers.
// A Registry is built once by the caller and passed to a Loader; it is not
// safe for Register to race with Resolve.
type Registry struct {
	parsers map[Format]Parser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[Format]Parser)}
}

// Register binds a parser to a format.
// It returns ErrInvalidFormat for formats outside the supported set and
// ErrDuplicateFormat if the format already has a parser.
func (r *Registry) Register(f Format, p Parser) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, f)
	}
	if p == nil {
		return fmt.Errorf("register %s: nil parser", f)
	}
	if _, ok := r.parsers[f]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFormat, f)
	}
	r.parsers[f] = p
	return nil
}

// Resolve returns the parser registered for name.
// The lookup is case-insensitive. ErrUnknownFormat is returned when the name
// is not a supported format or has no parser registered.
func (r *Registry) Resolve(name string) (Parser, error) {
	f, err := ParseFormat(name)
	if err != nil {
		return nil, err
	}
	p, ok := r.parsers[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q has no registered parser", ErrUnknownFormat, name)
	}
	return p, nil
}

// Formats returns the registered formats in sorted order.
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.parsers))
	for f := range r.parsers {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
