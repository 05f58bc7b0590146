package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the tool's runtime configuration. It carries operational
// options only; the feature schema and the classification rule tables are
// fixed in code and cannot be altered here.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type PipelineConfig struct {
	// KeepText retains cleaned tweet text inside tweet events. Dropping
	// it shrinks output files and avoids redistributing tweet bodies.
	KeepText bool `yaml:"keepText"`
	// ProgressEvery logs a progress line after this many users (0 = off).
	ProgressEvery int `yaml:"progressEvery"`
}

type MetricsConfig struct {
	// Addr serves /metrics and /health when non-empty, e.g. ":9090".
	// If empty, read from env METRICS_ADDR.
	Addr string `yaml:"addr"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Pipeline: PipelineConfig{KeepText: true, ProgressEvery: 1000},
		Metrics:  MetricsConfig{Addr: ""},
	}
}

// ResolveEnv fills in config fields from environment variables if not set.
func (c *Config) ResolveEnv() {
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = os.Getenv("METRICS_ADDR")
	}
}

// Load reads YAML config from path. A missing file yields the defaults so
// every command works without an init step.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.ResolveEnv()
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
