package corpus

import (
	"errors"
	"fmt"
)

// Static errors for corpus loading.
var (
	// ErrUnknownFormat is returned when a descriptor names a format with no registered parser.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrInvalidFormat is returned when registering a parser under a format outside the enumeration.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrDuplicateFormat is returned when a format is registered twice.
	ErrDuplicateFormat = errors.New("format already registered")
	// ErrManifestNotFound is returned when a manifest file does not exist.
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrMalformedRow is returned when a manifest line does not match its format.
	ErrMalformedRow = errors.New("malformed row")
	// ErrShortClip is returned when a clip is shorter than the configured
	// minimum and the short-clip policy is fail.
	ErrShortClip = errors.New("clip too short")
)

// RowError describes a manifest line that could not be parsed.
type RowError struct {
	Path   string
	Line   int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %s", e.Path, e.Line, ErrMalformedRow, e.Reason)
}

// Unwrap returns ErrMalformedRow.
func (e *RowError) Unwrap() error {
	return ErrMalformedRow
}
