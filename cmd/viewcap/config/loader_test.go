package config

import (
	"os"
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
)

// isolate points the state root and working directory at fresh temp dirs so
// a developer's real config never leaks into the cascade. Variables are
// unset rather than blanked because godotenv skips keys already present.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("VIEWCAP_STATE_DIR", root)
	for _, key := range []string{"VIEWCAP_HOST_URL", "VIEWCAP_TIMEOUT_MS", "VIEWCAP_OUTPUT_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	homedir.Reset()
	t.Cleanup(homedir.Reset)
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return root
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HostURL != "ws://127.0.0.1:4794/cmd" {
		t.Fatalf("HostURL = %q, want the default socket", cfg.HostURL)
	}
	if cfg.TimeoutMS != 5000 {
		t.Fatalf("TimeoutMS = %d, want 5000", cfg.TimeoutMS)
	}
	if cfg.OutputDir != "" {
		t.Fatalf("OutputDir = %q, want empty", cfg.OutputDir)
	}
}

func TestLoadConfigFile(t *testing.T) {
	root := isolate(t)
	data := []byte("host_url = \"ws://10.0.0.5:4794/cmd\"\ntimeout_ms = 250\n")
	if err := os.WriteFile(filepath.Join(root, "config.toml"), data, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HostURL != "ws://10.0.0.5:4794/cmd" {
		t.Fatalf("HostURL = %q, want file value", cfg.HostURL)
	}
	if cfg.TimeoutMS != 250 {
		t.Fatalf("TimeoutMS = %d, want 250", cfg.TimeoutMS)
	}
}

func TestLoadMalformedConfigFile(t *testing.T) {
	root := isolate(t)
	if err := os.WriteFile(filepath.Join(root, "config.toml"), []byte("host_url = [oops"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(nil); err == nil {
		t.Fatal("Load() accepted a malformed config file")
	}
}

func TestLoadDotEnvOverridesFile(t *testing.T) {
	root := isolate(t)
	data := []byte("timeout_ms = 250\n")
	if err := os.WriteFile(filepath.Join(root, "config.toml"), data, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := os.WriteFile(".env", []byte("VIEWCAP_TIMEOUT_MS=750\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TimeoutMS != 750 {
		t.Fatalf("TimeoutMS = %d, want .env value 750", cfg.TimeoutMS)
	}
}

func TestLoadEnvOverridesDotEnv(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(".env", []byte("VIEWCAP_OUTPUT_DIR=/tmp/from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("VIEWCAP_OUTPUT_DIR", "/tmp/from-env")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "/tmp/from-env" {
		t.Fatalf("OutputDir = %q, process env must beat .env", cfg.OutputDir)
	}
}

func TestLoadFlagsWinOverall(t *testing.T) {
	root := isolate(t)
	data := []byte("host_url = \"ws://10.0.0.5:4794/cmd\"\n")
	if err := os.WriteFile(filepath.Join(root, "config.toml"), data, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("VIEWCAP_HOST_URL", "ws://env:4794/cmd")

	url := "ws://flag:4794/cmd"
	cfg, err := Load(&FlagOverrides{HostURL: &url})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HostURL != url {
		t.Fatalf("HostURL = %q, flags must win the cascade", cfg.HostURL)
	}
}

func TestLoadUnsetFlagKeepsLowerPriority(t *testing.T) {
	isolate(t)
	t.Setenv("VIEWCAP_TIMEOUT_MS", "900")

	cfg, err := Load(&FlagOverrides{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TimeoutMS != 900 {
		t.Fatalf("TimeoutMS = %d, nil flag must not clobber env", cfg.TimeoutMS)
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	isolate(t)
	timeout := 0
	if _, err := Load(&FlagOverrides{TimeoutMS: &timeout}); err == nil {
		t.Fatal("Load() accepted a zero timeout")
	}
}

func TestLoadLegacyConfigFallback(t *testing.T) {
	isolate(t)
	legacyRoot := filepath.Join(os.Getenv("HOME"), ".viewcap")
	if err := os.MkdirAll(legacyRoot, 0o750); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	data := []byte("output_dir = \"/tmp/legacy\"\n")
	if err := os.WriteFile(filepath.Join(legacyRoot, "config.toml"), data, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "/tmp/legacy" {
		t.Fatalf("OutputDir = %q, want legacy file value", cfg.OutputDir)
	}
}
