package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "DIALOGUETOOLS_PREFS=prefs.yaml\nDIALOGUETOOLS_FORMAT=SQLite\nDIALOGUETOOLS_VERBOSE=1\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	for _, key := range []string{EnvPrefsFile, EnvFormat, EnvVerbose} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadFile(envFile)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	want := &Config{PrefsFile: "prefs.yaml", Verbose: true, Format: FormatSQLite}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_ProcessEnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("DIALOGUETOOLS_FORMAT=sqlite\n"), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	t.Setenv(EnvFormat, "yaml")

	cfg, err := LoadFile(envFile)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Format != FormatYAML {
		t.Errorf("Format = %q, want %q", cfg.Format, FormatYAML)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Setenv(EnvVerbose, "no")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadFile(missing) failed: %v", err)
	}
	if cfg.Verbose {
		t.Errorf("Verbose = true, want false")
	}
}
