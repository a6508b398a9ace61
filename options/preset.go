// preset.go — Versioned YAML preset files.
//
// A preset bundles capture parameters and option overrides under an explicit
// schema version, so renamed or added namespaces in later revisions fail
// loudly instead of being silently dropped.
package options

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// CurrentSchema is the schema version written to new presets.
const CurrentSchema = "2.1.0"

// schemaRange is the range of preset schemas this revision can read.
// Major 2 introduced the viewport2 namespace; a future major may rename
// namespaces again and must not be applied blindly.
var schemaRange = mustConstraint(">= 2.0.0, < 3.0.0")

// Preset is the on-disk bundle of capture parameters and option overrides.
// Scalar parameters are pointers so an omitted parameter stays unset rather
// than overriding the caller's value with a zero.
type Preset struct {
	Schema string `yaml:"schema"`

	Camera      *string `yaml:"camera,omitempty"`
	Width       *int    `yaml:"width,omitempty"`
	Height      *int    `yaml:"height,omitempty"`
	Format      *string `yaml:"format,omitempty"`
	Compression *string `yaml:"compression,omitempty"`
	Quality     *int    `yaml:"quality,omitempty"`
	OffScreen   *bool   `yaml:"off_screen,omitempty"`

	ViewportOptions  Set `yaml:"viewport_options,omitempty"`
	Viewport2Options Set `yaml:"viewport2_options,omitempty"`
	CameraOptions    Set `yaml:"camera_options,omitempty"`
	DisplayOptions   Set `yaml:"display_options,omitempty"`
}

// NewPreset returns an empty preset stamped with the current schema.
func NewPreset() *Preset {
	return &Preset{Schema: CurrentSchema}
}

// Validate checks the schema version against the supported range.
func (p *Preset) Validate() error {
	if strings.TrimSpace(p.Schema) == "" {
		return fmt.Errorf("preset has no schema version (expected %q)", CurrentSchema)
	}
	v, err := semver.NewVersion(p.Schema)
	if err != nil {
		return fmt.Errorf("preset schema %q: %w", p.Schema, err)
	}
	if !schemaRange.Check(v) {
		return fmt.Errorf("preset schema %s outside supported range %s", v, schemaRange)
	}
	return nil
}

// LoadPreset reads and validates a preset file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- preset path comes from the caller, not remote input
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", filepath.Base(path), err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePreset writes a preset, stamping the current schema if unset.
func SavePreset(path string, p *Preset) error {
	if p.Schema == "" {
		p.Schema = CurrentSchema
	}
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create preset directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}
	return nil
}

// ListPresets returns the preset names (file stems) found in dir, sorted.
// A missing directory is an empty list, not an error.
func ListPresets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list presets: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ext))
	}
	sort.Strings(names)
	return names, nil
}

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}
