package scheduler

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the Registry wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrInvalidState      = errors.New("invalid state")
	ErrResourceExhausted = errors.New("no employees available")
)

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

// badDate keeps the parse error reachable through errors.As.
func badDate(field string, err error) error {
	return fmt.Errorf("%w: %s must be YYYY-MM-DD: %w", ErrInvalidArgument, field, err)
}
