package key

import "strings"

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 1 << iota

	// ModMeta indicates the Meta key (Alt on most keyboards).
	ModMeta

	// ModShift indicates the Shift key.
	// Shift is only meaningful on special keys; for character keys the
	// shifted character itself is stored in Chord.Rune.
	ModShift

	// ModSuper indicates the Super key (Cmd on macOS, Win elsewhere).
	ModSuper
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasMeta returns true if Meta is pressed.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasSuper returns true if Super is pressed.
func (m Modifier) HasSuper() bool {
	return m.Has(ModSuper)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Prefix returns the canonical chord prefix for the modifier set:
// "C-", "C-M-", "s-", etc. Empty when no modifiers are set.
// Order is fixed (Ctrl, Meta, Shift, Super) so equal modifier sets
// always render identically.
func (m Modifier) Prefix() string {
	if m == ModNone {
		return ""
	}

	var sb strings.Builder
	if m.HasCtrl() {
		sb.WriteString("C-")
	}
	if m.HasMeta() {
		sb.WriteString("M-")
	}
	if m.HasShift() {
		sb.WriteString("S-")
	}
	if m.HasSuper() {
		sb.WriteString("s-")
	}
	return sb.String()
}

// String returns a human-readable representation like "Ctrl+Meta".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasMeta() {
		parts = append(parts, "Meta")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasSuper() {
		parts = append(parts, "Super")
	}
	return strings.Join(parts, "+")
}

// modifierFromLetter maps a notation letter to its modifier.
// Returns ModNone if the letter is not a modifier prefix.
func modifierFromLetter(c byte) Modifier {
	switch c {
	case 'C':
		return ModCtrl
	case 'M', 'A':
		return ModMeta
	case 'S':
		return ModShift
	case 's':
		return ModSuper
	default:
		return ModNone
	}
}
