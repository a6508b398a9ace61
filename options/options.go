// options.go — Option sets, namespaces, and merge semantics.
package options

import (
	"sort"

	"github.com/viewcap/viewcap/host"
)

// Set maps option names to values within one namespace.
type Set map[string]host.Value

// Namespace identifies which host target a Set configures.
type Namespace string

const (
	// Viewport options configure the capture panel's model editor.
	Viewport Namespace = "viewport"
	// Viewport2 options configure the extended hardware renderer.
	Viewport2 Namespace = "viewport2"
	// Camera options are attributes on the capture camera.
	Camera Namespace = "camera"
	// Display options are global display preferences.
	Display Namespace = "display"
)

// Namespaces lists all namespaces in apply order. Display state is applied
// first and restored last because it is process-global.
var Namespaces = []Namespace{Display, Viewport, Viewport2, Camera}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns defaults overlaid with the caller's overrides. Keys absent
// from overrides keep their default value. Neither input is modified.
func Merge(defaults, overrides Set) Set {
	out := defaults.Clone()
	if out == nil {
		out = make(Set, len(overrides))
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Keys returns the option names in sorted order, so applies and op logs are
// deterministic.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal compares two sets key by key with host.EqualValue tolerance.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		ov, ok := other[k]
		if !ok || !host.EqualValue(v, ov) {
			return false
		}
	}
	return true
}

// Defaults returns a fresh copy of the documented default mapping for a
// namespace. Unknown namespaces yield an empty set.
func Defaults(ns Namespace) Set {
	switch ns {
	case Viewport:
		return viewportDefaults.Clone()
	case Viewport2:
		return viewport2Defaults.Clone()
	case Camera:
		return cameraDefaults.Clone()
	case Display:
		return displayDefaults.Clone()
	}
	return Set{}
}

// DisplayColorKeys are the display options set through the RGB preference
// channel rather than the scalar one.
var DisplayColorKeys = map[string]bool{
	"background":       true,
	"backgroundTop":    true,
	"backgroundBottom": true,
}
