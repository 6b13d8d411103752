package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/keywarden/internal/guard"
)

func TestLoadTOMLReader(t *testing.T) {
	input := `
verbosity = "fail-loud"

[[rules]]
keys = "M-."

[[rules]]
keys = "<tab>"
map  = "mode-x-map"
`
	f, err := LoadTOMLReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadTOMLReader error: %v", err)
	}

	if len(f.Rules) != 2 {
		t.Fatalf("rules = %d, want 2", len(f.Rules))
	}
	if f.Rules[0].Keys != "M-." || f.Rules[0].Map != "" {
		t.Errorf("rule 0 = %+v, want M-. in global", f.Rules[0])
	}
	if f.Rules[1].Keys != "<tab>" || f.Rules[1].Map != "mode-x-map" {
		t.Errorf("rule 1 = %+v, want <tab> in mode-x-map", f.Rules[1])
	}

	v, err := f.GuardVerbosity()
	if err != nil {
		t.Fatalf("GuardVerbosity error: %v", err)
	}
	if v != guard.FailLoud {
		t.Errorf("verbosity = %v, want fail-loud", v)
	}

	rules := f.GuardRules()
	if len(rules) != 2 {
		t.Fatalf("GuardRules = %d, want 2", len(rules))
	}
	if !rules[0].Map.IsGlobal() {
		t.Error("empty map name should become the global ref")
	}
	if rules[1].Map.Name() != "mode-x-map" {
		t.Errorf("rule 1 map = %q, want mode-x-map", rules[1].Map.Name())
	}
}

func TestLoadTOMLDefaults(t *testing.T) {
	f, err := LoadTOMLReader(strings.NewReader("[[rules]]\nkeys = \"C-s\"\n"))
	if err != nil {
		t.Fatalf("LoadTOMLReader error: %v", err)
	}

	v, err := f.GuardVerbosity()
	if err != nil {
		t.Fatalf("GuardVerbosity error: %v", err)
	}
	if v != guard.Notify {
		t.Errorf("default verbosity = %v, want notify", v)
	}
}

func TestLoadTOMLInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed toml", "rules = ["},
		{"empty keys", "[[rules]]\nkeys = \"\"\n"},
		{"bad sequence", "[[rules]]\nkeys = \"not a <seq\"\n"},
		{"bad verbosity", "verbosity = \"shout\"\n"},
	}

	for _, tt := range tests {
		if _, err := LoadTOMLReader(strings.NewReader(tt.input)); err == nil {
			t.Errorf("%s: LoadTOMLReader should fail", tt.name)
		}
	}
}

func TestLoadLuaString(t *testing.T) {
	script := `
verbosity("silent")
protect("M-.")
protect("<tab>", "mode-x-map")
-- string library is available to build keys
protect(string.format("C-%s", "s"))
`
	f, err := LoadLuaString(script)
	if err != nil {
		t.Fatalf("LoadLuaString error: %v", err)
	}

	if f.Verbosity != "silent" {
		t.Errorf("verbosity = %q, want silent", f.Verbosity)
	}

	want := []RuleEntry{
		{Keys: "M-.", Map: ""},
		{Keys: "<tab>", Map: "mode-x-map"},
		{Keys: "C-s", Map: ""},
	}
	if len(f.Rules) != len(want) {
		t.Fatalf("rules = %d, want %d", len(f.Rules), len(want))
	}
	for i := range want {
		if f.Rules[i] != want[i] {
			t.Errorf("rule %d = %+v, want %+v", i, f.Rules[i], want[i])
		}
	}
}

func TestLoadLuaSandbox(t *testing.T) {
	// os and io are not opened; load primitives and require are removed.
	scripts := []string{
		`os.remove("x")`,
		`io.open("x")`,
		`loadstring("protect('j')")()`,
		`dofile("other.lua")`,
		`require("os")`,
		`package.loadlib("x", "y")`,
	}

	for _, script := range scripts {
		if _, err := LoadLuaString(script); err == nil {
			t.Errorf("script %q should fail in the sandbox", script)
		}
	}
}

func TestLoadLuaCannotLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	sidecar := filepath.Join(dir, "extra.lua")
	if err := os.WriteFile(sidecar, []byte(`protect("C-c")`), 0o644); err != nil {
		t.Fatalf("writing sidecar script: %v", err)
	}
	prevDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getting working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("changing working directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prevDir); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})

	if _, err := LoadLuaString(`require("extra")`); err == nil {
		t.Fatal("require should be unavailable to rule scripts")
	}
}

func TestLoadLuaInvalidRules(t *testing.T) {
	if _, err := LoadLuaString(`protect("bogus-name")`); err == nil {
		t.Error("invalid key sequence should fail validation")
	}
	if _, err := LoadLuaString(`verbosity("shout")`); err == nil {
		t.Error("unknown verbosity should fail validation")
	}
	if _, err := LoadLuaString(`protect(`); err == nil {
		t.Error("syntax error should fail")
	}
}
