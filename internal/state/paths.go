// Package state centralizes filesystem locations for viewcap artifacts:
// the CLI config file and stored capture presets.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

const (
	// StateDirEnv overrides the default state root.
	StateDirEnv = "VIEWCAP_STATE_DIR"

	xdgConfigHomeEnv = "XDG_CONFIG_HOME"
	appName          = "viewcap"
)

// RootDir returns the state root for viewcap.
// Resolution order:
//  1. VIEWCAP_STATE_DIR (if set)
//  2. XDG_CONFIG_HOME/viewcap (if XDG_CONFIG_HOME is set)
//  3. os.UserConfigDir()/viewcap (cross-platform fallback)
func RootDir() (string, error) {
	if override := strings.TrimSpace(os.Getenv(StateDirEnv)); override != "" {
		return normalizePath(override)
	}

	if xdg := strings.TrimSpace(os.Getenv(xdgConfigHomeEnv)); xdg != "" {
		root, err := normalizePath(xdg)
		if err != nil {
			return "", err
		}
		return filepath.Join(root, appName), nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user config directory: %w", err)
	}
	root, err := normalizePath(configDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, appName), nil
}

// LegacyRootDir returns the historical dotdir root used by earlier versions.
func LegacyRootDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, "."+appName), nil
}

// PresetsDir returns the directory holding stored capture presets.
func PresetsDir() (string, error) {
	return InRoot("presets")
}

// PresetFile returns the path of a named preset.
func PresetFile(name string) (string, error) {
	return InRoot("presets", name+".yaml")
}

// ConfigFile returns the CLI configuration file path.
func ConfigFile() (string, error) {
	return InRoot("config.toml")
}

// LegacyConfigFile returns the previous configuration file path.
func LegacyConfigFile() (string, error) {
	root, err := LegacyRootDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "config.toml"), nil
}

// InRoot returns a path rooted under RootDir with additional path elements.
func InRoot(parts ...string) (string, error) {
	root, err := RootDir()
	if err != nil {
		return "", err
	}
	all := make([]string, 0, len(parts)+1)
	all = append(all, root)
	all = append(all, parts...)
	return filepath.Join(all...), nil
}

func normalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}
	return filepath.Clean(absPath), nil
}
