package guard

import (
	"errors"
	"fmt"

	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/input/keymap"
	"github.com/dshills/keywarden/internal/input/mode"
)

// Observer is called when a bind attempt is rejected.
type Observer func(Conflict)

// Guard enforces binding protection rules against a keymap registry and
// keeps per-context overlays synchronized with mode state.
//
// All methods must be called from the host's event-processing thread.
type Guard struct {
	registry *keymap.Registry
	modes    *mode.Manager
	logger   Logger

	// enabled is the feature toggle. Off: every bind passes through.
	enabled bool

	// checking is set while AttemptBind scans rules, so speculative
	// probes that land back in the interceptor pass straight through.
	checking bool

	// refreshing is set while an overlay rebuild runs, suspending
	// interception for the rebuild's own operations.
	refreshing bool

	rules     []parsedRule
	verbosity Verbosity

	// overlays holds one table per context ID. Written only by Refresh
	// and Disable; each write replaces a context's table wholesale.
	overlays map[string]Overlay

	observers []Observer
	unsubs    []func()
}

// Option configures a Guard.
type Option func(*options)

type options struct {
	rules     []Rule
	verbosity Verbosity
	logger    Logger
}

// WithRules sets the initial protection rules, in order.
func WithRules(rules ...Rule) Option {
	return func(o *options) {
		o.rules = append(o.rules, rules...)
	}
}

// WithVerbosity sets the conflict reporting level.
func WithVerbosity(v Verbosity) Option {
	return func(o *options) {
		o.verbosity = v
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a disabled guard for the given registry and mode manager.
func New(registry *keymap.Registry, modes *mode.Manager, opts ...Option) (*Guard, error) {
	if registry == nil {
		return nil, fmt.Errorf("nil registry")
	}
	if modes == nil {
		return nil, fmt.Errorf("nil mode manager")
	}

	o := options{verbosity: Notify}
	for _, opt := range opts {
		opt(&o)
	}

	parsed, err := parseRules(o.rules)
	if err != nil {
		return nil, err
	}

	return &Guard{
		registry:  registry,
		modes:     modes,
		logger:    o.logger,
		rules:     parsed,
		verbosity: o.verbosity,
		overlays:  make(map[string]Overlay),
	}, nil
}

// Enabled returns the feature toggle state.
func (g *Guard) Enabled() bool {
	return g.enabled
}

// Verbosity returns the current reporting level.
func (g *Guard) Verbosity() Verbosity {
	return g.verbosity
}

// SetVerbosity changes the reporting level.
func (g *Guard) SetVerbosity(v Verbosity) {
	g.verbosity = v
}

// Rules returns the configured rules in order.
func (g *Guard) Rules() []Rule {
	out := make([]Rule, len(g.rules))
	for i := range g.rules {
		out[i] = g.rules[i].Rule
	}
	return out
}

// SetRules replaces the rule list. When enabled, mode listeners are
// rebound to the new rules' owner modes and the overlay is refreshed.
func (g *Guard) SetRules(rules []Rule) error {
	parsed, err := parseRules(rules)
	if err != nil {
		return err
	}
	g.rules = parsed

	if !g.enabled {
		return nil
	}
	g.removeListeners()
	g.installListeners()
	return g.Refresh()
}

// OnConflict registers an observer for rejected bind attempts.
// Returns a function to unregister the observer.
func (g *Guard) OnConflict(obs Observer) func() {
	g.observers = append(g.observers, obs)
	index := len(g.observers) - 1

	return func() {
		// Remove observer by setting to nil (preserves indices)
		if index < len(g.observers) {
			g.observers[index] = nil
		}
	}
}

// Enable turns protection on: installs the bind interceptor, subscribes
// to context and mode changes, and performs an initial refresh.
// Enabling an enabled guard is a no-op.
func (g *Guard) Enable() error {
	if g.enabled {
		return nil
	}
	g.enabled = true
	g.registry.SetInterceptor(g)
	g.installListeners()
	return g.Refresh()
}

// Disable turns protection off: removes the interceptor, unsubscribes
// all listeners, and clears every context's overlay.
func (g *Guard) Disable() {
	if !g.enabled {
		return
	}
	g.removeListeners()
	g.registry.SetInterceptor(nil)
	g.overlays = make(map[string]Overlay)
	g.enabled = false
}

// installListeners subscribes Refresh to context switches and to the
// activation hooks of every mode owning a protected named map. Owner
// modes are resolved once, here; rules referencing maps without a
// registered owner get no mode hook (context switches still cover them).
func (g *Guard) installListeners() {
	g.unsubs = append(g.unsubs, g.modes.OnContextChange(func(string) {
		g.refreshLogged()
	}))

	seen := make(map[string]bool)
	for i := range g.rules {
		target := g.rules[i].Map
		if target.IsGlobal() {
			continue
		}
		owner, ok := g.modes.OwnerOf(target.Name())
		if !ok || seen[owner.Name] {
			continue
		}
		seen[owner.Name] = true
		g.unsubs = append(g.unsubs, g.modes.OnModeChange(owner.Name, func(mode.Mode, bool) {
			g.refreshLogged()
		}))
	}
}

func (g *Guard) removeListeners() {
	for _, unsub := range g.unsubs {
		unsub()
	}
	g.unsubs = nil
}

func (g *Guard) refreshLogged() {
	if err := g.Refresh(); err != nil && g.logger != nil {
		g.logger.Error("overlay refresh failed", "error", err)
	}
}

// AttemptBind implements keymap.BindInterceptor. It vets the attempt
// against every rule in configured order, stopping at the first
// conflict. A clean attempt is applied for real and followed by a
// refresh; a conflicting attempt is rejected with the target map left
// byte-for-byte untouched.
func (g *Guard) AttemptBind(ref keymap.MapRef, seq *key.Sequence, v keymap.Value) error {
	if !g.enabled || g.refreshing || g.checking {
		return g.registry.RawBind(ref, seq, v)
	}

	// The raw slot to restore after each speculative probe. Failing
	// here means the target map itself is bad; nothing was mutated yet.
	prevRaw, err := g.registry.RawLookup(ref, seq)
	if err != nil {
		return err
	}

	g.checking = true
	conflict, err := func() (*Conflict, error) {
		defer func() { g.checking = false }()
		for i := range g.rules {
			c, err := g.probe(&g.rules[i], ref, seq, v, prevRaw)
			if err != nil || c != nil {
				return c, err
			}
		}
		return nil, nil
	}()
	if err != nil {
		return err
	}

	if conflict != nil {
		g.report(*conflict)
		if g.verbosity == FailLoud {
			return &ConflictError{Conflict: *conflict}
		}
		return nil
	}

	if err := g.registry.RawBind(ref, seq, v); err != nil {
		return err
	}
	return g.Refresh()
}

// probe checks one rule against the attempted bind by speculatively
// applying it, re-resolving the rule's pair, and restoring the previous
// raw slot. The restore runs on every exit path, including host
// resolution failures, so a rejected or failed attempt leaves no trace.
func (g *Guard) probe(r *parsedRule, ref keymap.MapRef, seq *key.Sequence, v keymap.Value, prevRaw keymap.Value) (c *Conflict, err error) {
	existing, rerr := g.registry.Resolve(r.Map, r.seq)
	if rerr != nil {
		if errors.Is(rerr, keymap.ErrUnknownMap) {
			// Rule's map not defined: nothing protected there yet.
			return nil, nil
		}
		return nil, rerr
	}
	if !existing.IsCommand() {
		// Unbound or a prefix placeholder: nothing to protect.
		return nil, nil
	}

	if berr := g.registry.RawBind(ref, seq, v); berr != nil {
		return nil, berr
	}
	defer func() {
		if berr := g.registry.RawBind(ref, seq, prevRaw); berr != nil && err == nil {
			c, err = nil, berr
		}
	}()

	after, rerr := g.registry.Resolve(r.Map, r.seq)
	if rerr != nil {
		return nil, rerr
	}
	if !after.Equals(existing) {
		return &Conflict{
			Keys:      r.seq.String(),
			Map:       r.Map,
			Existing:  existing,
			Attempted: after,
		}, nil
	}
	return nil, nil
}

// report surfaces a conflict according to the verbosity setting.
func (g *Guard) report(c Conflict) {
	if g.verbosity == Silent {
		return
	}
	if g.logger != nil {
		g.logger.Info("bind attempt rejected",
			"keys", c.Keys,
			"map", c.Map.String(),
			"existing", c.Existing.String(),
			"attempted", c.Attempted.String(),
		)
	}
	for _, obs := range g.observers {
		if obs != nil {
			obs(c)
		}
	}
}

// Refresh rebuilds the current context's overlay from the rule list and
// live map state. Rules targeting maps not active in the context are
// excluded; included rules resolving to nothing produce explicit mask
// entries. The finished table replaces the old one in one assignment.
//
// Returns ErrDisabled (with a diagnostic) when the guard is off.
func (g *Guard) Refresh() error {
	if !g.enabled {
		if g.logger != nil {
			g.logger.Debug("refresh ignored: guard is disabled")
		}
		return ErrDisabled
	}
	if g.refreshing {
		return nil
	}
	g.refreshing = true
	defer func() { g.refreshing = false }()

	ctxID := g.modes.CurrentContext()

	activeNamed := make(map[string]bool)
	for _, ref := range g.modes.ActiveMaps(ctxID) {
		if !ref.IsGlobal() {
			activeNamed[ref.Name()] = true
		}
	}

	table := make(Overlay, len(g.rules))
	for i := range g.rules {
		r := &g.rules[i]
		if !r.Map.IsGlobal() && !activeNamed[r.Map.Name()] {
			continue
		}
		v, err := g.registry.Resolve(r.Map, r.seq)
		if err != nil {
			if errors.Is(err, keymap.ErrUnknownMap) {
				continue
			}
			return err
		}
		if !v.IsCommand() {
			v = keymap.NoValue()
		}
		table[r.seq.String()] = v
	}

	g.overlays[ctxID] = table
	return nil
}

// OverlayFor returns the overlay for a context, or nil if none has been
// built. The returned table must be treated as read-only.
func (g *Guard) OverlayFor(contextID string) Overlay {
	return g.overlays[contextID]
}

// Lookup resolves a key sequence the way the host would: the current
// context's overlay first (where a mask entry resolves to nothing),
// then the active maps in order, then the global map.
func (g *Guard) Lookup(seq *key.Sequence) keymap.Value {
	ctxID := g.modes.CurrentContext()
	if g.enabled {
		if table, ok := g.overlays[ctxID]; ok {
			if v, ok := table.Lookup(seq); ok {
				return v
			}
		}
	}
	return g.registry.ResolveIn(g.modes.ActiveMaps(ctxID), seq)
}
