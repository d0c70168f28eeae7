package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds client-side settings for talking to a model server.
// Zero values mean "unspecified" and are replaced by defaults or flags.
type Config struct {
	Host           string `json:"host" yaml:"host" toml:"host"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
	LogLevel       string `json:"log_level" yaml:"log_level" toml:"log_level"`
	Insecure       bool   `json:"insecure" yaml:"insecure" toml:"insecure"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables onto cfg. Environment wins over
// the file, flags win over both (handled by the CLI layer).
func (c Config) ApplyEnv() Config {
	if v := os.Getenv("MODELD_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("MODELDCTL_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MODELDCTL_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.TimeoutSeconds = n
		}
	}
	return c
}
