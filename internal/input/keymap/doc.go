// Package keymap models the host editor's keymap machinery: named binding
// tables, a global fallback table, command remapping, and a central
// Registry through which all binds and lookups flow.
//
// # Key Concepts
//
// Keymap: a mutable table from normalized key sequences to values. A value
// is either a command name or a prefix placeholder (an interior node of a
// multi-chord binding).
//
// MapRef: a resolvable handle to a keymap, either the global map or a
// named map. The zero MapRef refers to the global map.
//
// Registry: owns the global map and all named maps, resolves lookups with
// one level of command-remap indirection, and routes Bind calls through a
// registered interceptor when one is installed.
//
// # Interception
//
// Components that need to vet bind attempts (such as the guard) implement
// BindInterceptor and install themselves with SetInterceptor. Bind then
// delegates every call to the interceptor; RawBind bypasses interception
// and fires no observers, which interceptors use to apply vetted changes
// without recursing into themselves.
package keymap
