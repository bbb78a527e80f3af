package classname

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict is returned when a token would fill a slot that is already
	// taken, such as a second breakpoint or a repeated modifier.
	ErrConflict = errors.New("conflicting token")
	// ErrUnknownValue is returned for tokens that resolve to nothing in the
	// configuration.
	ErrUnknownValue = errors.New("unknown value")
	// ErrArgumentsNotSupported is returned when call arguments are attached
	// to a class name that cannot take them.
	ErrArgumentsNotSupported = errors.New("arguments not supported")
)

func conflict(slot, existing, token string) error {
	return fmt.Errorf("%w: %s %q already set, got %q", ErrConflict, slot, existing, token)
}
