package keymap

import (
	"github.com/dshills/keywarden/internal/input/key"
)

// Keymap holds bindings for one map: sequence slots plus a command
// remapping table. Keymaps are not safe for concurrent use on their own;
// access goes through the Registry.
type Keymap struct {
	// Name is the keymap identifier. Empty for the global map.
	Name string

	// entries maps canonical sequence strings to slot values.
	entries map[string]Value

	// remaps maps a command name to the command it resolves to.
	// One level of indirection is applied during resolution.
	remaps map[string]string
}

// New creates an empty keymap with the given name.
func New(name string) *Keymap {
	return &Keymap{
		Name:    name,
		entries: make(map[string]Value),
		remaps:  make(map[string]string),
	}
}

// Set stores a value in the slot for seq. A ValueNone value clears the
// slot entirely, leaving the table as if the sequence was never bound.
func (k *Keymap) Set(seq *key.Sequence, v Value) {
	id := seq.String()
	if v.IsNone() {
		delete(k.entries, id)
		return
	}
	k.entries[id] = v
}

// Get returns the slot value for seq, without remap indirection.
func (k *Keymap) Get(seq *key.Sequence) Value {
	return k.entries[seq.String()]
}

// Remap records that looking up command from should yield command to.
// An empty to removes the remapping.
func (k *Keymap) Remap(from, to string) {
	if to == "" {
		delete(k.remaps, from)
		return
	}
	k.remaps[from] = to
}

// RemapOf returns the remap target for a command, or empty if none.
func (k *Keymap) RemapOf(command string) string {
	return k.remaps[command]
}

// Resolve returns the effective value for seq with one level of
// command-remap indirection applied. Only command values are remapped;
// prefix placeholders and empty slots pass through untouched.
func (k *Keymap) Resolve(seq *key.Sequence) Value {
	v := k.Get(seq)
	if !v.IsCommand() {
		return v
	}
	if to := k.remaps[v.Command]; to != "" {
		return CommandValue(to)
	}
	return v
}

// Len returns the number of bound slots.
func (k *Keymap) Len() int {
	return len(k.entries)
}

// Snapshot returns a copy of the slot table keyed by canonical sequence
// string. Used by tests to compare map state before and after an
// operation.
func (k *Keymap) Snapshot() map[string]Value {
	out := make(map[string]Value, len(k.entries))
	for id, v := range k.entries {
		out[id] = v
	}
	return out
}

// EqualSnapshot reports whether the keymap's slots exactly match a
// previously taken snapshot.
func (k *Keymap) EqualSnapshot(snap map[string]Value) bool {
	if len(k.entries) != len(snap) {
		return false
	}
	for id, v := range k.entries {
		if sv, ok := snap[id]; !ok || !sv.Equals(v) {
			return false
		}
	}
	return true
}
