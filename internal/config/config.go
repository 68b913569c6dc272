package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	APIBaseURL string `yaml:"api_base_url"`

	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Digest  DigestConfig  `yaml:"digest"`
}

type StorageConfig struct {
	// Driver selects the backend: "bolt" (default) or "sqlite".
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

type DigestConfig struct {
	// To is the recipient address for the weekly digest email. The resend
	// API key is taken from CADENCE_RESEND_API_KEY, never from the file.
	To    string `yaml:"to"`
	From  string `yaml:"from"`
	Weeks int    `yaml:"weeks"`
}

func Default() Config {
	return Config{
		ListenAddr: ":8080",
		APIBaseURL: "http://localhost:8080",
		Storage:    StorageConfig{Driver: "bolt", Path: "cadence.db"},
		Log:        LogConfig{Level: "info", Format: "text"},
		Digest:     DigestConfig{From: "cadence@resend.dev", Weeks: 4},
	}
}

// Load reads the yaml config from CADENCE_CONFIG (default "config.yaml").
// Missing keys fall back to defaults.
func Load() (Config, error) {
	path := os.Getenv("CADENCE_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
