// Package config loads keywarden rule files and watches them for changes.
//
// Two formats are supported. TOML for declarative configuration:
//
//	verbosity = "notify"
//
//	[[rules]]
//	keys = "M-."
//
//	[[rules]]
//	keys = "<tab>"
//	map  = "mode-x-map"
//
// And Lua for users who script their editor setup:
//
//	verbosity("fail-loud")
//	protect("M-.")
//	protect("<tab>", "mode-x-map")
//
// Both loaders produce the same File value and preserve rule order. Lua
// scripts run in a restricted state: only the base, table and string
// libraries are opened, and file/load primitives are removed.
package config
