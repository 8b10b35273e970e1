package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Output: OutputStdout,
		},
		DevPrint: DevPrintConfig{
			Color:       ColorAuto,
			EOL:         EOLCRLF,
			Diagnostics: "warn",
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	require.NoError(t, Validate(validConfig()))

	numeric := validConfig()
	numeric.Log.Level = "20"
	require.NoError(t, Validate(numeric))
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Config)
		field         string
		actionContain string
	}{
		{
			name:          "log_level",
			mutate:        func(c *Config) { c.Log.Level = "loud" },
			field:         "log.level",
			actionContain: "trace, debug, info, warn, error, fatal",
		},
		{
			name:          "log_output",
			mutate:        func(c *Config) { c.Log.Output = "" },
			field:         "log.output",
			actionContain: "stdout, stderr",
		},
		{
			name:          "devprint_color",
			mutate:        func(c *Config) { c.DevPrint.Color = "rainbow" },
			field:         "devprint.color",
			actionContain: "auto, always, never",
		},
		{
			name:          "devprint_diagnostics",
			mutate:        func(c *Config) { c.DevPrint.Diagnostics = "35" },
			field:         "devprint.diagnostics",
			actionContain: "LOGBRICKS_DEVPRINT_DIAGNOSTICS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)

			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, "invalid", configErr.Category)
			assert.Equal(t, tt.field, configErr.Field)
			assert.Contains(t, configErr.Action, tt.actionContain)
		})
	}
}
