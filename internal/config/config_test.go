package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestTemplateLoadsAsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "irmanchester.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("template mismatch: %+v", cfg)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected existing config error")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("overwrite template: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
json = true
backend = "Logrus"

[encode]
bits = 16
repeat = 2

[decode]
strict = true
offset = 1
scan = true

[capture]
format = "cbor"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON || !cfg.Log.Timestamp || cfg.Log.Backend != "logrus" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Encode.Bits != 16 || cfg.Encode.Repeat != 2 || cfg.Encode.Protocol != "manchester" {
		t.Fatalf("unexpected encode config: %+v", cfg.Encode)
	}
	if !cfg.Decode.Strict || cfg.Decode.Offset != 1 || !cfg.Decode.Scan || cfg.Decode.Bits != 13 {
		t.Fatalf("unexpected decode config: %+v", cfg.Decode)
	}
	if cfg.Capture.Format != "cbor" || cfg.Capture.MaxBytes != 1<<20 {
		t.Fatalf("unexpected capture config: %+v", cfg.Capture)
	}

	lc := cfg.LoggingConfig()
	if lc.Level != zerolog.DebugLevel || !lc.Bypass || lc.Backend != "logrus" {
		t.Fatalf("unexpected logging config: %+v", lc)
	}
}

func TestDefaultBackendIsZerolog(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[log]\nlevel = \"warn\"\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Backend != "zerolog" || cfg.LoggingConfig().Backend != "zerolog" {
		t.Fatalf("unexpected backend: %+v", cfg.Log)
	}
	if err := Validate(Config{}); err == nil {
		t.Fatalf("expected zero config to be invalid")
	}
}

func TestLoadTimestampOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[log]\ntimestamp = false\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Timestamp {
		t.Fatalf("expected timestamp disabled")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"level":   "[log]\nlevel = \"loud\"\n",
		"backend": "[log]\nbackend = \"slog\"\n",
		"bits":    "[encode]\nbits = 65\n",
		"repeat":  "[encode]\nrepeat = -1\n",
		"offset":  "[decode]\noffset = -2\n",
		"format":  "[capture]\nformat = \"yaml\"\n",
		"unknown": "[decode]\ntolerance = 10\n",
		"syntax":  "[decode\n",
	}
	for name, content := range cases {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "config load failed") {
		t.Fatalf("expected load error, got %v", err)
	}
}
