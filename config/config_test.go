package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.General.DataDir != "memory" {
		t.Errorf("DataDir = %q, want %q", cfg.General.DataDir, "memory")
	}
	if cfg.General.Currency != "INR" {
		t.Errorf("Currency = %q, want %q", cfg.General.Currency, "INR")
	}
	if cfg.Ollama.BaseURL != "" || cfg.Ollama.Model != "" {
		t.Errorf("Ollama = %+v, want empty (client defaults apply)", cfg.Ollama)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[general]
data_dir = "/var/lib/solin"
currency = "EUR"

[ollama]
base_url = "http://inference:11434"
model = "mistral"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.General.DataDir != "/var/lib/solin" {
		t.Errorf("DataDir = %q, want %q", cfg.General.DataDir, "/var/lib/solin")
	}
	if cfg.General.Currency != "EUR" {
		t.Errorf("Currency = %q, want %q", cfg.General.Currency, "EUR")
	}
	if cfg.Ollama.BaseURL != "http://inference:11434" {
		t.Errorf("BaseURL = %q, want the configured endpoint", cfg.Ollama.BaseURL)
	}
	if cfg.Ollama.Model != "mistral" {
		t.Errorf("Model = %q, want %q", cfg.Ollama.Model, "mistral")
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[ollama]
base_url = "http://from-file:11434"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv("SOLIN_OLLAMA_URL", "http://from-env:11434")
	t.Setenv("SOLIN_OLLAMA_MODEL", "phi3")
	t.Setenv("SOLIN_DATA_DIR", "/tmp/solin-data")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Ollama.BaseURL != "http://from-env:11434" {
		t.Errorf("BaseURL = %q, want the environment override", cfg.Ollama.BaseURL)
	}
	if cfg.Ollama.Model != "phi3" {
		t.Errorf("Model = %q, want %q", cfg.Ollama.Model, "phi3")
	}
	if cfg.General.DataDir != "/tmp/solin-data" {
		t.Errorf("DataDir = %q, want the environment override", cfg.General.DataDir)
	}
}
