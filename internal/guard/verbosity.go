package guard

import "fmt"

// Verbosity controls how a detected conflict is surfaced.
// The bind is rejected at every level; verbosity only changes reporting.
type Verbosity int

const (
	// Silent rejects the bind with no observable report.
	Silent Verbosity = iota

	// Notify rejects the bind and informs conflict observers.
	Notify

	// FailLoud rejects the bind, informs observers, and returns the
	// conflict as a hard error to the bind attempt's caller.
	FailLoud
)

// String returns the verbosity name.
func (v Verbosity) String() string {
	switch v {
	case Silent:
		return "silent"
	case Notify:
		return "notify"
	case FailLoud:
		return "fail-loud"
	default:
		return fmt.Sprintf("verbosity(%d)", v)
	}
}

// ParseVerbosity parses a verbosity name.
func ParseVerbosity(s string) (Verbosity, error) {
	switch s {
	case "silent":
		return Silent, nil
	case "notify", "":
		return Notify, nil
	case "fail-loud", "failloud", "loud":
		return FailLoud, nil
	default:
		return Notify, fmt.Errorf("unknown verbosity: %q", s)
	}
}
