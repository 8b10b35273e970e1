package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigErrorError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigError
		expected string
	}{
		{
			name: "complete error with all fields",
			err: &ConfigError{
				Category: "invalid",
				Field:    "log.level",
				Message:  "invalid value \"loud\"",
				Action:   "set LOGBRICKS_LOG_LEVEL to one of: trace, debug",
				Details:  []string{"detail1", "detail2"},
			},
			expected: "config_invalid: log.level invalid value \"loud\" set LOGBRICKS_LOG_LEVEL to one of: trace, debug detail1; detail2",
		},
		{
			name: "error without category",
			err: &ConfigError{
				Field:   "devprint.eol",
				Message: "required",
			},
			expected: "devprint.eol required",
		},
		{
			name:     "empty error",
			err:      &ConfigError{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestNewInvalidFieldError(t *testing.T) {
	err := NewInvalidFieldError("devprint.color", "invalid value \"x\"", []string{ColorAuto, ColorAlways, ColorNever})

	assert.Equal(t, "invalid", err.Category)
	assert.Equal(t, "devprint.color", err.Field)
	assert.Equal(t, "set LOGBRICKS_DEVPRINT_COLOR to one of: auto, always, never", err.Action)

	noOptions := NewInvalidFieldError("log.output", "bad", nil)
	assert.Empty(t, noOptions.Action)
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("log.hostname", "too long")
	assert.Equal(t, "config_invalid: log.hostname too long", err.Error())
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "LOGBRICKS_LOG_LEVEL", EnvVar("log.level"))
	assert.Equal(t, "LOGBRICKS_DEVPRINT_DIAGNOSTICS", EnvVar("devprint.diagnostics"))
}
