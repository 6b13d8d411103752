package mode

// Mode describes an editor mode and the keymap it owns.
type Mode struct {
	// Name is the mode identifier, e.g. "mode-x".
	Name string

	// MapName is the name of the keymap this mode owns, e.g. "mode-x-map".
	MapName string
}
