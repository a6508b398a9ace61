// scene.go — Mirror scene-level capture settings to and from the host.
package viewcap

import (
	"fmt"

	"github.com/viewcap/viewcap/host"
)

// SceneSettings are the scene-level parameters the host's own playblast
// dialog persists: playback range, render resolution, and the playblast
// user preferences.
type SceneSettings struct {
	StartFrame float64 `yaml:"start_frame"`
	EndFrame   float64 `yaml:"end_frame"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Format      string `yaml:"format"`
	Compression string `yaml:"compression"`
	Quality     int    `yaml:"quality"`

	OffScreen     bool `yaml:"off_screen"`
	ShowOrnaments bool `yaml:"show_ornaments"`

	// Filename is empty unless the host's save-to-file preference is on.
	Filename string `yaml:"filename,omitempty"`
}

// ParseActiveScene reads the scene-level capture settings from the host.
func ParseActiveScene(h host.Host) (SceneSettings, error) {
	var s SceneSettings

	start, end, err := h.PlaybackRange()
	if err != nil {
		return s, fmt.Errorf("playback range: %w", err)
	}
	s.StartFrame, s.EndFrame = start, end

	width, height, _, err := h.DefaultResolution()
	if err != nil {
		return s, fmt.Errorf("default resolution: %w", err)
	}
	s.Width, s.Height = width, height

	prefs := map[string]func(host.Value){
		"playblastFormat":        func(v host.Value) { s.Format, _ = host.AsString(v) },
		"playblastCompression":   func(v host.Value) { s.Compression, _ = host.AsString(v) },
		"playblastQuality":       func(v host.Value) { s.Quality, _ = host.AsInt(v) },
		"playblastOffscreen":     func(v host.Value) { s.OffScreen, _ = host.AsBool(v) },
		"playblastShowOrnaments": func(v host.Value) { s.ShowOrnaments, _ = host.AsBool(v) },
	}
	for name, assign := range prefs {
		v, err := h.UserPref(name)
		if err != nil {
			return s, fmt.Errorf("user pref %s: %w", name, err)
		}
		assign(v)
	}

	saveToFile, err := h.UserPref("playblastSaveToFile")
	if err != nil {
		return s, fmt.Errorf("user pref playblastSaveToFile: %w", err)
	}
	if save, _ := host.AsBool(saveToFile); save {
		v, err := h.UserPref("playblastFile")
		if err != nil {
			return s, fmt.Errorf("user pref playblastFile: %w", err)
		}
		s.Filename, _ = host.AsString(v)
	}
	return s, nil
}

// ApplyScene writes scene-level capture settings back to the host. Meant to
// be paired with ParseActiveScene; every field is applied, including zero
// ones.
func ApplyScene(h host.Host, s SceneSettings) error {
	if err := h.SetPlaybackRange(s.StartFrame, s.EndFrame); err != nil {
		return fmt.Errorf("playback range: %w", err)
	}
	if err := h.SetDefaultResolution(s.Width, s.Height); err != nil {
		return fmt.Errorf("default resolution: %w", err)
	}

	prefs := []struct {
		name  string
		value host.Value
	}{
		{"playblastFormat", s.Format},
		{"playblastCompression", s.Compression},
		{"playblastQuality", s.Quality},
		{"playblastOffscreen", s.OffScreen},
		{"playblastShowOrnaments", s.ShowOrnaments},
		{"playblastSaveToFile", s.Filename != ""},
	}
	for _, p := range prefs {
		if err := h.SetUserPref(p.name, p.value); err != nil {
			return fmt.Errorf("user pref %s: %w", p.name, err)
		}
	}
	if s.Filename != "" {
		if err := h.SetUserPref("playblastFile", s.Filename); err != nil {
			return fmt.Errorf("user pref playblastFile: %w", err)
		}
	}
	return nil
}
