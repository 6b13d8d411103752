// Package mode tracks editor modes and per-context activation state.
//
// A Mode owns one keymap. A context (one per buffer) carries an ordered
// set of active modes; the maps of those modes, most recently activated
// first, followed by the global map, form the context's key resolution
// order. The Manager is the host's mode table: it answers "which maps are
// active here", reverse-maps a keymap to its owning mode, and notifies
// registered callbacks on context switches and mode activation changes.
package mode
