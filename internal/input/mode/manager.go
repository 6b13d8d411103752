package mode

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/keywarden/internal/input/keymap"
)

// ContextCallback is called after the current context changes.
type ContextCallback func(contextID string)

// ModeCallback is called after a mode is activated or deactivated in the
// current context.
type ModeCallback func(m Mode, active bool)

// contextState holds per-context activation state.
type contextState struct {
	// active lists active mode names, most recently activated first.
	active []string
}

// Manager is the host's mode table and context tracker.
type Manager struct {
	mu sync.RWMutex

	// modes holds all registered modes by name.
	modes map[string]Mode

	// contexts holds activation state per context ID.
	contexts map[string]*contextState

	// current is the active context ID.
	current string

	// ctxCallbacks are notified on context switches.
	ctxCallbacks []ContextCallback

	// modeCallbacks are notified on activation changes, per mode name.
	modeCallbacks map[string][]ModeCallback
}

// NewManager creates a manager with one initial context already current.
func NewManager() *Manager {
	m := &Manager{
		modes:         make(map[string]Mode),
		contexts:      make(map[string]*contextState),
		modeCallbacks: make(map[string][]ModeCallback),
	}
	id := uuid.New().String()
	m.contexts[id] = &contextState{}
	m.current = id
	return m
}

// Register adds a mode to the table.
// A mode with the same name is replaced.
func (m *Manager) Register(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[mode.Name] = mode
}

// Get returns a mode by name.
func (m *Manager) Get(name string) (Mode, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mode, ok := m.modes[name]
	return mode, ok
}

// OwnerOf returns the mode owning the named keymap.
func (m *Manager) OwnerOf(mapName string) (Mode, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, mode := range m.modes {
		if mode.MapName == mapName {
			return mode, true
		}
	}
	return Mode{}, false
}

// NewContext creates a new empty context and returns its ID.
// The current context is unchanged.
func (m *Manager) NewContext() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.contexts[id] = &contextState{}
	return id
}

// CurrentContext returns the active context ID.
func (m *Manager) CurrentContext() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Contexts returns all known context IDs.
func (m *Manager) Contexts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.contexts))
	for id := range m.contexts {
		ids = append(ids, id)
	}
	return ids
}

// SwitchContext makes the given context current and notifies context
// callbacks. Switching to the already-current context still notifies,
// matching host behavior where every buffer switch fires hooks.
func (m *Manager) SwitchContext(id string) error {
	m.mu.Lock()
	if _, ok := m.contexts[id]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("unknown context: %s", id)
	}
	m.current = id
	callbacks := make([]ContextCallback, len(m.ctxCallbacks))
	copy(callbacks, m.ctxCallbacks)
	m.mu.Unlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(id)
		}
	}
	return nil
}

// Activate turns a mode on in the given context. No-op if already
// active. Fires the mode's callbacks when state actually changes.
func (m *Manager) Activate(contextID, modeName string) error {
	return m.setActive(contextID, modeName, true)
}

// Deactivate turns a mode off in the given context. No-op if not active.
func (m *Manager) Deactivate(contextID, modeName string) error {
	return m.setActive(contextID, modeName, false)
}

func (m *Manager) setActive(contextID, modeName string, active bool) error {
	m.mu.Lock()

	mode, ok := m.modes[modeName]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("unknown mode: %s", modeName)
	}
	ctx, ok := m.contexts[contextID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("unknown context: %s", contextID)
	}

	idx := -1
	for i, name := range ctx.active {
		if name == modeName {
			idx = i
			break
		}
	}

	changed := false
	if active && idx < 0 {
		ctx.active = append([]string{modeName}, ctx.active...)
		changed = true
	} else if !active && idx >= 0 {
		ctx.active = append(ctx.active[:idx], ctx.active[idx+1:]...)
		changed = true
	}

	var callbacks []ModeCallback
	if changed {
		callbacks = make([]ModeCallback, len(m.modeCallbacks[modeName]))
		copy(callbacks, m.modeCallbacks[modeName])
	}
	m.mu.Unlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(mode, active)
		}
	}
	return nil
}

// IsActive returns true if the mode is active in the given context.
func (m *Manager) IsActive(contextID, modeName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ctx, ok := m.contexts[contextID]
	if !ok {
		return false
	}
	for _, name := range ctx.active {
		if name == modeName {
			return true
		}
	}
	return false
}

// ActiveMaps returns the context's key resolution order: active modes'
// maps, most recently activated first, then the global map.
func (m *Manager) ActiveMaps(contextID string) []keymap.MapRef {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ctx, ok := m.contexts[contextID]
	if !ok {
		return []keymap.MapRef{keymap.Global()}
	}

	refs := make([]keymap.MapRef, 0, len(ctx.active)+1)
	for _, name := range ctx.active {
		refs = append(refs, keymap.Named(m.modes[name].MapName))
	}
	refs = append(refs, keymap.Global())
	return refs
}

// OnContextChange registers a callback for context switches.
// Returns a function to unregister the callback.
func (m *Manager) OnContextChange(cb ContextCallback) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ctxCallbacks = append(m.ctxCallbacks, cb)
	index := len(m.ctxCallbacks) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// Remove callback by setting to nil (preserves indices)
		if index < len(m.ctxCallbacks) {
			m.ctxCallbacks[index] = nil
		}
	}
}

// OnModeChange registers a callback for one mode's activation changes.
// Returns a function to unregister the callback.
func (m *Manager) OnModeChange(modeName string, cb ModeCallback) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.modeCallbacks[modeName] = append(m.modeCallbacks[modeName], cb)
	index := len(m.modeCallbacks[modeName]) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if cbs := m.modeCallbacks[modeName]; index < len(cbs) {
			cbs[index] = nil
		}
	}
}
