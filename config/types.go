package config

// Log output targets
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

// devprint color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// devprint line terminators
const (
	EOLCRLF = "crlf"
	EOLLF   = "lf"
)

// Config represents the overall configuration: the producing side (Log) and the
// devprint filter (DevPrint).
type Config struct {
	Log      LogConfig      `koanf:"log" json:"log" yaml:"log" mapstructure:"log"`
	DevPrint DevPrintConfig `koanf:"devprint" json:"devprint" yaml:"devprint" mapstructure:"devprint"`
}

// LogConfig holds settings for the root engine behind a logger.Log.
type LogConfig struct {
	// Level is the minimum level written, by name or number ("debug", "20")
	Level string `koanf:"level" json:"level" yaml:"level" mapstructure:"level" validate:"loglevel"`
	// Output selects the stream records are written to
	Output string `koanf:"output" json:"output" yaml:"output" mapstructure:"output" validate:"oneof=stdout stderr"`
	// Hostname overrides os.Hostname() on every record
	Hostname string `koanf:"hostname" json:"hostname" yaml:"hostname" mapstructure:"hostname"`
	// Filter masks credential-like keys in src, ctx and data
	Filter bool `koanf:"filter" json:"filter" yaml:"filter" mapstructure:"filter"`
}

// DevPrintConfig holds settings for the devprint filter.
type DevPrintConfig struct {
	// Color is auto (color when stdout is a terminal), always or never
	Color string `koanf:"color" json:"color" yaml:"color" mapstructure:"color" validate:"oneof=auto always never"`
	// EOL is the terminator written after every rendered line
	EOL string `koanf:"eol" json:"eol" yaml:"eol" mapstructure:"eol" validate:"oneof=crlf lf"`
	// Diagnostics is the minimum level of devprint's own stderr messages
	Diagnostics string `koanf:"diagnostics" json:"diagnostics" yaml:"diagnostics" mapstructure:"diagnostics" validate:"loglevel"`
}

// Terminator returns the line terminator selected by EOL.
func (c *DevPrintConfig) Terminator() string {
	if c.EOL == EOLLF {
		return "\n"
	}
	return "\r\n"
}
