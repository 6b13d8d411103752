package guard

import (
	"errors"
	"fmt"

	"github.com/dshills/keywarden/internal/input/keymap"
)

// Sentinel errors for the guard package.
var (
	// ErrDisabled is returned when an operation requires the guard to
	// be enabled.
	ErrDisabled = errors.New("guard is disabled")

	// ErrConflict marks conflict rejections so callers can test with
	// errors.Is regardless of the concrete error type.
	ErrConflict = errors.New("protected binding conflict")
)

// Conflict describes a rejected bind attempt: which protected pair it
// would have changed, and from what to what.
type Conflict struct {
	// Keys is the protected key sequence in canonical notation.
	Keys string

	// Map is the protected pair's keymap.
	Map keymap.MapRef

	// Existing is the protected pair's resolved value.
	Existing keymap.Value

	// Attempted is what the pair would have resolved to had the bind
	// been allowed.
	Attempted keymap.Value
}

// String returns a one-line description suitable for user messages.
func (c Conflict) String() string {
	return fmt.Sprintf("%q in %s is protected (bound to %s, attempt would yield %s)",
		c.Keys, c.Map, c.Existing, c.Attempted)
}

// ConflictError is the hard error returned under FailLoud verbosity.
type ConflictError struct {
	Conflict Conflict
}

// Error implements error.
func (e *ConflictError) Error() string {
	return "binding rejected: " + e.Conflict.String()
}

// Unwrap lets errors.Is(err, ErrConflict) match.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
