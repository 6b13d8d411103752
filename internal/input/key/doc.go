// Package key provides normalized key sequence representation and parsing.
//
// A Chord is a single keypress: a key (character or special key) plus a
// modifier bitmask. A Sequence is an ordered series of chords, such as
// "C-x C-s" or "g g". Sequences are parsed from Emacs-style notation and
// normalize to a canonical string form, which is the identity used by
// keymap tables and overlay entries.
//
// # Notation
//
// Chords are written as modifier prefixes followed by a key:
//
//	"j"        - the j key
//	"M-."      - Meta+period
//	"C-x"      - Ctrl+x
//	"<tab>"    - the Tab key
//	"C-<f5>"   - Ctrl+F5
//	"<C-S-a>"  - Ctrl+Shift+a (angle-bracket form)
//
// Sequences are whitespace-separated chords: "C-x C-s", "g g", "M-g M-g".
//
// Parsing is lenient about aliases ("RET", "enter", "return" are the same
// key) but the canonical form produced by String is unique, so two
// sequences denote the same keys exactly when their strings are equal.
package key
