package guard

import (
	"fmt"

	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/input/keymap"
)

// Rule names one protected (key sequence, keymap) pair.
type Rule struct {
	// Keys is the protected key sequence in chord notation, e.g. "M-.".
	Keys string

	// Map is the keymap the protection applies to.
	// The zero value means the global map.
	Map keymap.MapRef
}

// String returns a human-readable "keys @ map" form.
func (r Rule) String() string {
	return fmt.Sprintf("%s @ %s", r.Keys, r.Map)
}

// parsedRule is a rule with its key sequence pre-parsed.
type parsedRule struct {
	Rule
	seq *key.Sequence
}

// parseRules validates and parses a rule list, preserving order.
func parseRules(rules []Rule) ([]parsedRule, error) {
	parsed := make([]parsedRule, 0, len(rules))
	for i, r := range rules {
		if r.Keys == "" {
			return nil, fmt.Errorf("rule %d: empty keys", i)
		}
		seq, err := key.ParseSequence(r.Keys)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, r.Keys, err)
		}
		if seq.IsEmpty() {
			return nil, fmt.Errorf("rule %d (%s): empty sequence", i, r.Keys)
		}
		parsed = append(parsed, parsedRule{Rule: r, seq: seq})
	}
	return parsed, nil
}
