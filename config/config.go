// Package config loads logbricks settings from built-in defaults overridden by
// environment variables. There are no configuration files.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix scopes the environment variables read by Load.
// LOGBRICKS_LOG_LEVEL maps to log.level, LOGBRICKS_DEVPRINT_COLOR to devprint.color.
const EnvPrefix = "LOGBRICKS_"

// Load loads configuration with priority:
// 1. Environment variables (highest priority)
// 2. Default values (lowest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// envKey converts LOGBRICKS_DEVPRINT_COLOR to devprint.color.
func envKey(key, value string) (string, any) {
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "_", "."), value
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"log.level":    "info",
		"log.output":   OutputStdout,
		"log.hostname": "",
		"log.filter":   false,

		"devprint.color":       ColorAuto,
		"devprint.eol":         EOLCRLF,
		"devprint.diagnostics": "info",
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}
