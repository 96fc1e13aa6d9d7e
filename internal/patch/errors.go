package patch

import (
	"errors"
	"fmt"
)

// ErrorKind is a coarse-grained categorization for patch errors.
type ErrorKind string

const (
	KindIO      ErrorKind = "io"
	KindJournal ErrorKind = "journal"
)

// OpError wraps an underlying error with the operation, kind and target key.
type OpError struct {
	Op   string
	Kind ErrorKind
	Key  string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Key != "" {
		base += fmt.Sprintf(" (key=%s)", e.Key)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err carries an OpError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
