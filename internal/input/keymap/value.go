package keymap

// ValueKind discriminates what a keymap table slot holds.
type ValueKind int

const (
	// ValueNone indicates no binding.
	ValueNone ValueKind = iota

	// ValueCommand indicates a binding to a named command.
	ValueCommand

	// ValuePrefix indicates a placeholder for a multi-chord prefix.
	// Prefix slots are not commands and are never protected.
	ValuePrefix
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case ValueNone:
		return "none"
	case ValueCommand:
		return "command"
	case ValuePrefix:
		return "prefix"
	default:
		return "unknown"
	}
}

// Value is the content of a keymap slot: nothing, a command, or a
// prefix placeholder.
type Value struct {
	Kind    ValueKind
	Command string
}

// NoValue returns the empty slot value.
func NoValue() Value {
	return Value{}
}

// CommandValue returns a value bound to the named command.
func CommandValue(name string) Value {
	return Value{Kind: ValueCommand, Command: name}
}

// PrefixValue returns a prefix placeholder value.
func PrefixValue() Value {
	return Value{Kind: ValuePrefix}
}

// IsNone returns true if the slot is empty.
func (v Value) IsNone() bool {
	return v.Kind == ValueNone
}

// IsCommand returns true if the slot holds a command binding.
func (v Value) IsCommand() bool {
	return v.Kind == ValueCommand && v.Command != ""
}

// IsPrefix returns true if the slot holds a prefix placeholder.
func (v Value) IsPrefix() bool {
	return v.Kind == ValuePrefix
}

// Equals returns true if two values are identical.
func (v Value) Equals(other Value) bool {
	return v.Kind == other.Kind && v.Command == other.Command
}

// String returns a human-readable representation.
func (v Value) String() string {
	switch v.Kind {
	case ValueCommand:
		return v.Command
	case ValuePrefix:
		return "<prefix>"
	default:
		return "<unbound>"
	}
}
