package flpfile

import (
	"fmt"
)

// ParseError describes a malformed FLP stream: a magic mismatch, a
// declared length that disagrees with the actual bytes, or a truncated
// payload. It aborts the whole decode; no partial File is returned.
type ParseError struct {
	Message string

	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (offset=%d)", e.Message, e.Offset)
}
