package timeline

import (
	"fmt"
	"strings"
)

// InvalidRecordShapeError reports a timeline object whose top-level key set is
// not exactly one of the two recognized keys. Keys holds the offending keys in
// sorted order.
type InvalidRecordShapeError struct {
	Keys []string
}

func (e *InvalidRecordShapeError) Error() string {
	switch len(e.Keys) {
	case 0:
		return "invalid timeline object: no top-level key"
	case 1:
		return fmt.Sprintf("invalid timeline object: unrecognized key %q", e.Keys[0])
	default:
		return fmt.Sprintf("invalid timeline object: expected exactly one top-level key, got %d (%s)",
			len(e.Keys), strings.Join(e.Keys, ", "))
	}
}
