// Package config loads the solin configuration file.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all solin configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Ollama  OllamaConfig  `toml:"ollama"`
}

// GeneralConfig holds store and display preferences.
type GeneralConfig struct {
	// DataDir is where all store documents live.
	DataDir string `toml:"data_dir"`
	// Currency is the ISO 4217 code used to format amounts.
	Currency string `toml:"currency"`
}

// OllamaConfig holds the inference endpoint settings.
type OllamaConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
	Model   string `toml:"model,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DataDir:  "memory",
			Currency: "INR",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "solin")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "solin")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads a specific config file, returning defaults if it doesn't
// exist. Environment variables SOLIN_OLLAMA_URL and SOLIN_OLLAMA_MODEL
// override the file.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if url := os.Getenv("SOLIN_OLLAMA_URL"); url != "" {
		cfg.Ollama.BaseURL = url
	}
	if model := os.Getenv("SOLIN_OLLAMA_MODEL"); model != "" {
		cfg.Ollama.Model = model
	}
	if dir := os.Getenv("SOLIN_DATA_DIR"); dir != "" {
		cfg.General.DataDir = dir
	}
}
