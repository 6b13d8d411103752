package key

import (
	"strings"
)

// Sequence represents a series of chords forming one binding.
// Examples: "g g", "C-x C-s", "M-.".
type Sequence struct {
	// Chords contains the keypresses in order.
	Chords []Chord
}

// NewSequence creates an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{
		Chords: make([]Chord, 0, 2), // most bindings are one or two chords
	}
}

// NewSequenceFrom creates a sequence from the given chords.
func NewSequenceFrom(chords ...Chord) *Sequence {
	return &Sequence{
		Chords: chords,
	}
}

// Len returns the number of chords in the sequence.
func (s *Sequence) Len() int {
	return len(s.Chords)
}

// IsEmpty returns true if the sequence has no chords.
func (s *Sequence) IsEmpty() bool {
	return s == nil || len(s.Chords) == 0
}

// Add appends a chord to the sequence.
func (s *Sequence) Add(c Chord) {
	s.Chords = append(s.Chords, c)
}

// String returns the canonical space-separated notation.
// Examples: "g g", "C-x C-s", "M-.".
func (s *Sequence) String() string {
	if s == nil || len(s.Chords) == 0 {
		return ""
	}

	parts := make([]string, len(s.Chords))
	for i, c := range s.Chords {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Equals returns true if two sequences are identical.
func (s *Sequence) Equals(other *Sequence) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Chords) != len(other.Chords) {
		return false
	}
	for i, c := range s.Chords {
		if !c.Equals(other.Chords[i]) {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
func (s *Sequence) HasPrefix(prefix *Sequence) bool {
	if prefix == nil || prefix.IsEmpty() {
		return true
	}
	if s == nil || len(prefix.Chords) > len(s.Chords) {
		return false
	}
	for i, c := range prefix.Chords {
		if !c.Equals(s.Chords[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	if s == nil {
		return nil
	}
	chords := make([]Chord, len(s.Chords))
	copy(chords, s.Chords)
	return &Sequence{Chords: chords}
}

// ParseSequence parses whitespace-separated chord notation into a
// Sequence. Examples: "g g", "C-x C-s", "M-.", "C-c <tab>".
func ParseSequence(s string) (*Sequence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NewSequence(), nil
	}

	seq := NewSequence()
	for _, tok := range strings.Fields(s) {
		chord, err := ParseChord(tok)
		if err != nil {
			return nil, err
		}
		seq.Add(chord)
	}
	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) *Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}
