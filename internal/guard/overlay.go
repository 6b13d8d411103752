package guard

import (
	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/input/keymap"
)

// Overlay is the highest-priority lookup table for one context. Entries
// map canonical sequence strings to last-known-good resolved values. An
// entry holding ValueNone is an explicit mask: the key is protected but
// currently unbound, and nothing from lower-priority maps may leak
// through. Overlays are rebuilt whole and swapped in by a single
// assignment; they are never patched in place.
type Overlay map[string]keymap.Value

// Lookup returns the overlay entry for seq. The second result is false
// when the overlay has no opinion about the sequence.
func (o Overlay) Lookup(seq *key.Sequence) (keymap.Value, bool) {
	v, ok := o[seq.String()]
	return v, ok
}

// Len returns the number of entries.
func (o Overlay) Len() int {
	return len(o)
}

// Equal reports whether two overlays hold identical entries.
func (o Overlay) Equal(other Overlay) bool {
	if len(o) != len(other) {
		return false
	}
	for id, v := range o {
		if ov, ok := other[id]; !ok || !ov.Equals(v) {
			return false
		}
	}
	return true
}
