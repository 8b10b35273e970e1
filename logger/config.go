package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/gaborage/logbricks/config"
	"github.com/gaborage/logbricks/record"
)

// NewFromConfig builds a façade over a ZeroEngine configured by cfg.
// opts are applied after the config-derived options, so WithEngine overrides the engine.
func NewFromConfig(cfg *config.LogConfig, opts ...Option) (*Log, error) {
	level, err := record.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log config: %w", err)
	}

	var out io.Writer
	switch cfg.Output {
	case config.OutputStdout, "":
		out = os.Stdout
	case config.OutputStderr:
		out = os.Stderr
	default:
		return nil, config.NewInvalidFieldError("log.output",
			fmt.Sprintf("invalid value %q", cfg.Output),
			[]string{config.OutputStdout, config.OutputStderr})
	}

	engineOpts := []EngineOption{WithMinLevel(level)}
	if cfg.Hostname != "" {
		engineOpts = append(engineOpts, WithHostname(cfg.Hostname))
	}

	base := []Option{WithEngine(NewZeroEngine(out, engineOpts...))}
	if cfg.Filter {
		base = append(base, WithFilter(nil))
	}

	return New(append(base, opts...)...), nil
}
