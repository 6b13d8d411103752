package keymap

// GlobalName is the display name of the global map.
const GlobalName = "global-map"

// MapRef is a resolvable handle to a keymap: either the global map or a
// named map. The zero value refers to the global map.
type MapRef struct {
	name string
}

// Global returns a reference to the global map.
func Global() MapRef {
	return MapRef{}
}

// Named returns a reference to the named map.
// An empty name refers to the global map.
func Named(name string) MapRef {
	return MapRef{name: name}
}

// IsGlobal returns true if the reference denotes the global map.
func (r MapRef) IsGlobal() bool {
	return r.name == ""
}

// Name returns the map name, or empty for the global map.
func (r MapRef) Name() string {
	return r.name
}

// String returns the map name, or "global-map" for the global map.
func (r MapRef) String() string {
	if r.name == "" {
		return GlobalName
	}
	return r.name
}
