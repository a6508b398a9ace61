// Package config loads CLI configuration with a priority cascade:
// defaults < config file < .env file < environment < flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/viewcap/viewcap/internal/state"
)

// Config holds all resolved configuration values.
type Config struct {
	// HostURL is the plugin command socket, e.g. "ws://127.0.0.1:4794/cmd".
	HostURL string `toml:"host_url"`
	// TimeoutMS bounds the bridge dial.
	TimeoutMS int `toml:"timeout_ms"`
	// OutputDir prefixes relative output filenames.
	OutputDir string `toml:"output_dir"`
}

// FlagOverrides holds values explicitly set via command-line flags.
// Nil pointer means the flag was not set, so lower-priority values are kept.
type FlagOverrides struct {
	HostURL   *string
	TimeoutMS *int
	OutputDir *string
}

// Defaults returns the base configuration.
func Defaults() Config {
	return Config{
		HostURL:   "ws://127.0.0.1:4794/cmd",
		TimeoutMS: 5000,
	}
}

// Load builds the final configuration by applying the cascade. A missing
// config or .env file is not an error; a malformed one is.
func Load(flags *FlagOverrides) (Config, error) {
	cfg := Defaults()

	if err := loadFile(&cfg); err != nil {
		return cfg, err
	}

	// .env in the working directory, the pipeline-friendly override.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(&cfg)

	if flags != nil {
		if flags.HostURL != nil {
			cfg.HostURL = *flags.HostURL
		}
		if flags.TimeoutMS != nil {
			cfg.TimeoutMS = *flags.TimeoutMS
		}
		if flags.OutputDir != nil {
			cfg.OutputDir = *flags.OutputDir
		}
	}

	if cfg.TimeoutMS <= 0 {
		return cfg, fmt.Errorf("timeout must be positive, got %d", cfg.TimeoutMS)
	}
	return cfg, nil
}

// loadFile reads config.toml from the state root, falling back to the
// legacy dotdir location.
func loadFile(cfg *Config) error {
	path, err := state.ConfigFile()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the state root, not user input
	if os.IsNotExist(err) {
		legacyPath, legacyErr := state.LegacyConfigFile()
		if legacyErr != nil {
			return nil
		}
		data, err = os.ReadFile(legacyPath) // #nosec G304 -- deterministic legacy path
		if os.IsNotExist(err) {
			return nil
		}
		path = legacyPath
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("VIEWCAP_HOST_URL")); v != "" {
		cfg.HostURL = v
	}
	if v := strings.TrimSpace(os.Getenv("VIEWCAP_TIMEOUT_MS")); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutMS = ms
		}
	}
	if v := strings.TrimSpace(os.Getenv("VIEWCAP_OUTPUT_DIR")); v != "" {
		cfg.OutputDir = v
	}
}
