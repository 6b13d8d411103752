// Package guard protects configured key bindings from being overridden.
//
// The guard watches two fronts. As the registry's bind interceptor it
// vets every bind attempt: an attempt that would change the resolved
// command of any protected (key, keymap) pair is rejected and reported.
// As a context listener it maintains one overlay table per context,
// rebuilt on every context switch and on activation changes of modes
// whose maps are protected, so that protected bindings outrank same-key
// bindings from any other active map without mutating those maps.
//
// Conflict detection is speculative: the attempted bind is applied
// against the live tables, each protected pair is re-resolved, and the
// original raw slot is restored before anything else can observe the
// change. Raw binds fire no observers, so the probe leaves no residue.
//
// The guard assumes the host's single event-processing thread. Internal
// reentrancy (the refresher's own lookups, or a probe landing back in
// the interceptor) is cut off by plain flags, not locks.
package guard
