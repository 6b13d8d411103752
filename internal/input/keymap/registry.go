package keymap

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/keywarden/internal/input/key"
)

// ErrUnknownMap is returned when a named map reference cannot be resolved.
var ErrUnknownMap = errors.New("unknown keymap")

// BindInterceptor vets bind attempts routed through Registry.Bind.
// An interceptor that allows the attempt applies it itself (via RawBind)
// and returns nil; returning an error leaves the map untouched.
type BindInterceptor interface {
	AttemptBind(ref MapRef, seq *key.Sequence, v Value) error
}

// Registry owns the global map and all named maps and is the single path
// for binds and lookups. It is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	// global is the fallback map consulted after all named maps.
	global *Keymap

	// named holds all named keymaps.
	named map[string]*Keymap

	// interceptor, when set, receives every Bind call.
	interceptor BindInterceptor
}

// NewRegistry creates a registry with an empty global map.
func NewRegistry() *Registry {
	return &Registry{
		global: New(""),
		named:  make(map[string]*Keymap),
	}
}

// Define creates the named map if it does not exist and returns it.
func (r *Registry) Define(name string) *Keymap {
	r.mu.Lock()
	defer r.mu.Unlock()

	if km, ok := r.named[name]; ok {
		return km
	}
	km := New(name)
	r.named[name] = km
	return km
}

// Get resolves a map reference. Returns ErrUnknownMap for a named map
// that has not been defined.
func (r *Registry) Get(ref MapRef) (*Keymap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getLocked(ref)
}

func (r *Registry) getLocked(ref MapRef) (*Keymap, error) {
	if ref.IsGlobal() {
		return r.global, nil
	}
	km, ok := r.named[ref.Name()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMap, ref.Name())
	}
	return km, nil
}

// Has returns true if the reference resolves to a defined map.
func (r *Registry) Has(ref MapRef) bool {
	_, err := r.Get(ref)
	return err == nil
}

// SetInterceptor installs the bind interceptor. Passing nil removes it.
func (r *Registry) SetInterceptor(i BindInterceptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interceptor = i
}

// Interceptor returns the currently installed interceptor, or nil.
func (r *Registry) Interceptor() BindInterceptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.interceptor
}

// Bind associates seq with v in the referenced map. When an interceptor
// is installed the call is delegated to it; otherwise the bind is applied
// directly.
func (r *Registry) Bind(ref MapRef, seq *key.Sequence, v Value) error {
	r.mu.RLock()
	interceptor := r.interceptor
	r.mu.RUnlock()

	if interceptor != nil {
		return interceptor.AttemptBind(ref, seq, v)
	}
	return r.RawBind(ref, seq, v)
}

// RawBind applies a bind without interception. Binding ValueNone clears
// the slot. No observers fire; raw binds are invisible to everything but
// direct lookups.
func (r *Registry) RawBind(ref MapRef, seq *key.Sequence, v Value) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	km, err := r.getLocked(ref)
	if err != nil {
		return err
	}
	km.Set(seq, v)
	return nil
}

// RawLookup returns the slot value for seq in the referenced map,
// without remap indirection.
func (r *Registry) RawLookup(ref MapRef, seq *key.Sequence) (Value, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	km, err := r.getLocked(ref)
	if err != nil {
		return NoValue(), err
	}
	return km.Get(seq), nil
}

// Resolve returns the effective value for seq in the referenced map with
// one level of command-remap indirection applied.
func (r *Registry) Resolve(ref MapRef, seq *key.Sequence) (Value, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	km, err := r.getLocked(ref)
	if err != nil {
		return NoValue(), err
	}
	return km.Resolve(seq), nil
}

// Remap records a command remapping in the referenced map.
func (r *Registry) Remap(ref MapRef, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	km, err := r.getLocked(ref)
	if err != nil {
		return err
	}
	km.Remap(from, to)
	return nil
}

// ResolveIn resolves seq against an ordered list of map references,
// returning the first non-empty value. Unknown references are skipped:
// a map that does not exist cannot shadow anything.
func (r *Registry) ResolveIn(refs []MapRef, seq *key.Sequence) Value {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ref := range refs {
		km, err := r.getLocked(ref)
		if err != nil {
			continue
		}
		if v := km.Resolve(seq); !v.IsNone() {
			return v
		}
	}
	return NoValue()
}

// MapNames returns the names of all defined named maps.
func (r *Registry) MapNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.named))
	for name := range r.named {
		names = append(names, name)
	}
	return names
}
