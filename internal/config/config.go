package config

import (
	"fmt"

	"github.com/dshills/keywarden/internal/guard"
	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/input/keymap"
)

// RuleEntry is one protected pair as written in a rule file.
type RuleEntry struct {
	// Keys is the key sequence in chord notation.
	Keys string `toml:"keys"`

	// Map is the target keymap name. Empty means the global map.
	Map string `toml:"map,omitempty"`
}

// File is a loaded rule file.
type File struct {
	// Verbosity is the reporting level name. Empty means notify.
	Verbosity string `toml:"verbosity,omitempty"`

	// Rules lists the protected pairs in order.
	Rules []RuleEntry `toml:"rules"`
}

// Validate checks that every entry parses and the verbosity is known.
func (f *File) Validate() error {
	if _, err := guard.ParseVerbosity(f.Verbosity); err != nil {
		return err
	}
	for i, r := range f.Rules {
		if r.Keys == "" {
			return fmt.Errorf("rule %d: empty keys", i)
		}
		if _, err := key.ParseSequence(r.Keys); err != nil {
			return fmt.Errorf("rule %d (%s): %w", i, r.Keys, err)
		}
	}
	return nil
}

// GuardRules converts the file's entries to guard rules, in order.
func (f *File) GuardRules() []guard.Rule {
	rules := make([]guard.Rule, 0, len(f.Rules))
	for _, r := range f.Rules {
		rules = append(rules, guard.Rule{
			Keys: r.Keys,
			Map:  keymap.Named(r.Map),
		})
	}
	return rules
}

// GuardVerbosity returns the file's verbosity as a guard setting.
func (f *File) GuardVerbosity() (guard.Verbosity, error) {
	return guard.ParseVerbosity(f.Verbosity)
}
