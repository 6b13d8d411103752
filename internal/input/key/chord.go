package key

import (
	"fmt"
	"unicode/utf8"
)

// Chord represents a single keypress: one key plus its modifiers.
type Chord struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune chords.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneChord creates a chord for a character key.
func NewRuneChord(r rune, mods Modifier) Chord {
	return Chord{
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
	}
}

// NewSpecialChord creates a chord for a special key.
func NewSpecialChord(key Key, mods Modifier) Chord {
	return Chord{
		Key:       key,
		Modifiers: mods,
	}
}

// IsRune returns true if this is a character key chord.
func (c Chord) IsRune() bool {
	return c.Key == KeyRune && c.Rune != 0
}

// IsSpecial returns true if this is a special (non-character) key chord.
func (c Chord) IsSpecial() bool {
	return c.Key.IsSpecial()
}

// IsZero returns true if the chord carries no key at all.
func (c Chord) IsZero() bool {
	return c.Key == KeyNone && c.Rune == 0 && c.Modifiers == ModNone
}

// Equals returns true if two chords denote the same keypress.
func (c Chord) Equals(other Chord) bool {
	return c.Key == other.Key && c.Rune == other.Rune && c.Modifiers == other.Modifiers
}

// String returns the canonical notation for the chord.
// Examples: "j", "M-.", "C-x", "<tab>", "C-<f5>".
// Two chords are equal exactly when their strings are equal.
func (c Chord) String() string {
	prefix := c.Modifiers.Prefix()
	if c.IsSpecial() {
		return prefix + "<" + c.Key.Name() + ">"
	}
	if c.Rune != 0 {
		return prefix + string(c.Rune)
	}
	return prefix + "<none>"
}

// ParseChord parses a single chord token.
// Accepted forms: "j", "M-.", "C-x", "C-M-y", "<tab>", "C-<tab>",
// "<C-S-a>", "<f5>". Returns an error for empty or malformed tokens.
func ParseChord(s string) (Chord, error) {
	if s == "" {
		return Chord{}, fmt.Errorf("empty chord")
	}

	// Full angle-bracket form: "<tab>", "<C-S-a>"
	if s[0] == '<' && s[len(s)-1] == '>' && len(s) > 2 {
		return parseChordBody(s[1 : len(s)-1], true)
	}

	return parseChordBody(s, false)
}

// parseChordBody parses modifier prefixes followed by a key.
// angled reports whether the token was wrapped in <> (which permits
// named keys without their own brackets, e.g. "<C-tab>").
func parseChordBody(s string, angled bool) (Chord, error) {
	orig := s
	mods := ModNone

	// Strip "X-" modifier prefixes. A trailing "-" after the last
	// modifier is the literal '-' key ("M--" is Meta+dash).
	for len(s) >= 2 && s[1] == '-' && len(s) > 2 {
		mod := modifierFromLetter(s[0])
		if mod == ModNone {
			break
		}
		mods = mods.With(mod)
		s = s[2:]
	}

	if s == "" {
		return Chord{}, fmt.Errorf("chord %q: missing key", orig)
	}

	// Nested angle form after modifiers: "C-<tab>"
	if s[0] == '<' && s[len(s)-1] == '>' && len(s) > 2 {
		inner, err := parseChordBody(s[1:len(s)-1], true)
		if err != nil {
			return Chord{}, err
		}
		inner.Modifiers = inner.Modifiers.With(mods)
		return inner, nil
	}

	// Single character key.
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if r == ' ' {
			return NewSpecialChord(KeySpace, mods), nil
		}
		return NewRuneChord(r, mods), nil
	}

	// Named special key. Bare multi-character names are only valid
	// inside angle brackets, but "SPC" and "RET" style aliases are
	// common enough to accept anywhere.
	if k := KeyFromName(s); k != KeyNone {
		return NewSpecialChord(k, mods), nil
	}
	if !angled {
		return Chord{}, fmt.Errorf("chord %q: unrecognized key %q (multi-key tokens must be space-separated)", orig, s)
	}
	return Chord{}, fmt.Errorf("chord %q: unknown key name %q", orig, s)
}
