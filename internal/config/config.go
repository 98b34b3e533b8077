// Package config loads server configuration from defaults, an optional YAML
// file, and environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML accepts "10s" style values.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// OpenAI holds the upstream model settings.
type OpenAI struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// Config is the full server configuration.
type Config struct {
	Addr          string   `yaml:"addr"`
	OpenAI        OpenAI   `yaml:"openai"`
	ShutdownGrace Duration `yaml:"shutdown_grace"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{
		Addr: ":8080",
		OpenAI: OpenAI{
			Model:   "gpt-4o",
			BaseURL: "https://api.openai.com/v1",
		},
		ShutdownGrace: Duration(10 * time.Second),
	}
}

// Load builds the configuration: defaults, then the YAML file at path when
// non-empty, then environment variables. A missing file at an explicit path
// is an error; env vars win over everything.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("REVIEWGEN_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.OpenAI.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.OpenAI.BaseURL = v
	}
}
