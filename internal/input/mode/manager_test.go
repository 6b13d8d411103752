package mode

import (
	"testing"

	"github.com/dshills/keywarden/internal/input/keymap"
)

func TestManagerInitialContext(t *testing.T) {
	m := NewManager()

	if m.CurrentContext() == "" {
		t.Error("manager should start with a current context")
	}
	if len(m.Contexts()) != 1 {
		t.Errorf("Contexts() len = %d, want 1", len(m.Contexts()))
	}
}

func TestManagerRegisterAndOwner(t *testing.T) {
	m := NewManager()
	m.Register(Mode{Name: "mode-x", MapName: "mode-x-map"})

	mode, ok := m.Get("mode-x")
	if !ok || mode.MapName != "mode-x-map" {
		t.Errorf("Get = %+v, %v", mode, ok)
	}

	owner, ok := m.OwnerOf("mode-x-map")
	if !ok || owner.Name != "mode-x" {
		t.Errorf("OwnerOf = %+v, %v, want mode-x", owner, ok)
	}

	if _, ok := m.OwnerOf("nobody-map"); ok {
		t.Error("OwnerOf unknown map should report false")
	}
}

func TestManagerActivation(t *testing.T) {
	m := NewManager()
	m.Register(Mode{Name: "mode-x", MapName: "mode-x-map"})
	ctx := m.CurrentContext()

	if m.IsActive(ctx, "mode-x") {
		t.Error("mode should start inactive")
	}
	if err := m.Activate(ctx, "mode-x"); err != nil {
		t.Fatalf("Activate error: %v", err)
	}
	if !m.IsActive(ctx, "mode-x") {
		t.Error("mode should be active after Activate")
	}

	// Idempotent
	if err := m.Activate(ctx, "mode-x"); err != nil {
		t.Errorf("re-Activate error: %v", err)
	}

	if err := m.Deactivate(ctx, "mode-x"); err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}
	if m.IsActive(ctx, "mode-x") {
		t.Error("mode should be inactive after Deactivate")
	}

	if err := m.Activate(ctx, "missing"); err == nil {
		t.Error("Activate unknown mode should fail")
	}
	if err := m.Activate("missing-ctx", "mode-x"); err == nil {
		t.Error("Activate in unknown context should fail")
	}
}

func TestManagerActiveMapsOrder(t *testing.T) {
	m := NewManager()
	m.Register(Mode{Name: "a", MapName: "a-map"})
	m.Register(Mode{Name: "b", MapName: "b-map"})
	ctx := m.CurrentContext()

	if err := m.Activate(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if err := m.Activate(ctx, "b"); err != nil {
		t.Fatal(err)
	}

	refs := m.ActiveMaps(ctx)
	want := []keymap.MapRef{keymap.Named("b-map"), keymap.Named("a-map"), keymap.Global()}
	if len(refs) != len(want) {
		t.Fatalf("ActiveMaps len = %d, want %d", len(refs), len(want))
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("ActiveMaps[%d] = %v, want %v", i, refs[i], want[i])
		}
	}

	// Unknown context still yields the global map.
	refs = m.ActiveMaps("missing")
	if len(refs) != 1 || !refs[0].IsGlobal() {
		t.Errorf("ActiveMaps(missing) = %v, want just global", refs)
	}
}

func TestManagerContextSwitch(t *testing.T) {
	m := NewManager()
	first := m.CurrentContext()
	second := m.NewContext()

	var fired []string
	unsub := m.OnContextChange(func(id string) {
		fired = append(fired, id)
	})

	if err := m.SwitchContext(second); err != nil {
		t.Fatalf("SwitchContext error: %v", err)
	}
	if m.CurrentContext() != second {
		t.Errorf("CurrentContext = %s, want %s", m.CurrentContext(), second)
	}
	if len(fired) != 1 || fired[0] != second {
		t.Errorf("callback fired = %v, want [%s]", fired, second)
	}

	if err := m.SwitchContext("missing"); err == nil {
		t.Error("SwitchContext to unknown context should fail")
	}

	unsub()
	if err := m.SwitchContext(first); err != nil {
		t.Fatal(err)
	}
	if len(fired) != 1 {
		t.Errorf("unsubscribed callback still fired: %v", fired)
	}
}

func TestManagerModeCallbacks(t *testing.T) {
	m := NewManager()
	m.Register(Mode{Name: "mode-x", MapName: "mode-x-map"})
	ctx := m.CurrentContext()

	type event struct {
		mode   string
		active bool
	}
	var events []event
	unsub := m.OnModeChange("mode-x", func(mode Mode, active bool) {
		events = append(events, event{mode.Name, active})
	})

	if err := m.Activate(ctx, "mode-x"); err != nil {
		t.Fatal(err)
	}
	// No-op activation fires nothing.
	if err := m.Activate(ctx, "mode-x"); err != nil {
		t.Fatal(err)
	}
	if err := m.Deactivate(ctx, "mode-x"); err != nil {
		t.Fatal(err)
	}

	want := []event{{"mode-x", true}, {"mode-x", false}}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %v, want %v", i, events[i], want[i])
		}
	}

	unsub()
	if err := m.Activate(ctx, "mode-x"); err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Errorf("unsubscribed callback still fired: %v", events)
	}
}
