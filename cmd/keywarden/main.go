// Package main is a demonstration driver for the keywarden guard.
// It builds a small editor session, enables protection from a rule
// file, and replays a scripted set of bind attempts so the effect of
// the guard is visible on stdout.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/keywarden/internal/config"
	"github.com/dshills/keywarden/internal/guard"
	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/input/keymap"
	"github.com/dshills/keywarden/internal/input/mode"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		rulesPath   = flag.String("rules", "", "rule file (.toml or .lua); built-in demo rules when empty")
		verbosity   = flag.String("verbosity", "", "override verbosity: silent, notify, fail-loud")
		watch       = flag.Bool("watch", false, "keep running and reload the rule file on change")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("keywarden %s (%s)\n", version, commit)
		return 0
	}

	file, err := loadRules(*rulesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *verbosity != "" {
		file.Verbosity = *verbosity
	}
	level, err := file.GuardVerbosity()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	reg, modes, err := buildSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: building session: %v\n", err)
		return 1
	}

	g, err := guard.New(reg, modes,
		guard.WithRules(file.GuardRules()...),
		guard.WithVerbosity(level),
		guard.WithLogger(stderrLogger{}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	g.OnConflict(func(c guard.Conflict) {
		fmt.Printf("  !! rejected: %s\n", c)
	})

	if err := g.Enable(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: enabling guard: %v\n", err)
		return 1
	}
	defer g.Disable()

	fmt.Printf("keywarden enabled: %d rules, verbosity %s\n", len(g.Rules()), g.Verbosity())
	replay(reg, modes, g)

	if !*watch {
		return 0
	}
	if *rulesPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -watch requires -rules")
		return 1
	}

	w, err := config.NewWatcher(*rulesPath, config.DefaultDebounce, func(f *config.File, err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
			return
		}
		if err := g.SetRules(f.GuardRules()); err != nil {
			fmt.Fprintf(os.Stderr, "applying rules: %v\n", err)
			return
		}
		fmt.Printf("rules reloaded: %d rules\n", len(g.Rules()))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Close()

	fmt.Printf("watching %s (Ctrl-C to exit)\n", *rulesPath)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
	return 0
}

// loadRules reads the rule file, or returns the built-in demo rules.
func loadRules(path string) (*config.File, error) {
	if path != "" {
		return config.Load(path)
	}
	return &config.File{
		Verbosity: "notify",
		Rules: []config.RuleEntry{
			{Keys: "M-."},
			{Keys: "<tab>", Map: "mode-x-map"},
		},
	}, nil
}

// buildSession assembles a toy editor: a populated global map and one
// minor mode with its own keymap.
func buildSession() (*keymap.Registry, *mode.Manager, error) {
	reg := keymap.NewRegistry()
	global := keymap.Global()
	seed := []struct {
		keys string
		cmd  string
	}{
		{"M-.", "find-def"},
		{"C-s", "isearch"},
		{"<tab>", "indent-line"},
	}
	for _, s := range seed {
		if err := reg.RawBind(global, key.MustParseSequence(s.keys), keymap.CommandValue(s.cmd)); err != nil {
			return nil, nil, fmt.Errorf("seeding global map: %w", err)
		}
	}

	reg.Define("mode-x-map").Set(key.MustParseSequence("<tab>"), keymap.CommandValue("mode-x-complete"))

	modes := mode.NewManager()
	modes.Register(mode.Mode{Name: "mode-x", MapName: "mode-x-map"})
	return reg, modes, nil
}

// replay runs a scripted set of attempts against the session.
func replay(reg *keymap.Registry, modes *mode.Manager, g *guard.Guard) {
	ctx := modes.CurrentContext()

	attempt := func(mapRef keymap.MapRef, keys, cmd string) {
		fmt.Printf("bind %s -> %s in %s\n", keys, cmd, mapRef)
		err := reg.Bind(mapRef, key.MustParseSequence(keys), keymap.CommandValue(cmd))
		if err != nil {
			fmt.Printf("  error: %v\n", err)
			return
		}
		v, _ := reg.Resolve(mapRef, key.MustParseSequence(keys))
		fmt.Printf("  now resolves to %s\n", v)
	}

	attempt(keymap.Global(), "M-.", "other-cmd") // protected: rejected
	attempt(keymap.Global(), "C-x", "cut")       // unprotected: applied

	fmt.Println("activate mode-x")
	if err := modes.Activate(ctx, "mode-x"); err != nil {
		fmt.Printf("  error: %v\n", err)
	}
	attempt(keymap.Named("mode-x-map"), "<tab>", "evil-complete") // protected now

	fmt.Printf("lookup <tab> through overlay: %s\n", g.Lookup(key.MustParseSequence("<tab>")))
}
