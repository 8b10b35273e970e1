package commands

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gaborage/logbricks/config"
	"github.com/gaborage/logbricks/devprint"
	"github.com/gaborage/logbricks/record"
)

// RootOptions holds the flags of the root command
type RootOptions struct {
	Color string
	EOL   string
}

// NewRootCommand creates the devprint command. It reads log records from stdin and
// writes readable lines to stdout until stdin closes.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "devprint",
		Short: "Pretty-print JSON log records",
		Long: `Reads newline-delimited JSON log records from stdin and prints them as
colorized, human-readable lines. Lines that are not log records are printed as-is.`,
		Example: `  # Pipe a service's output through the printer
  ./my-service | devprint

  # Force colors when writing to a pager
  ./my-service | devprint --color always | less -R`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrinter(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Color, "color", config.ColorAuto, "Color mode (auto|always|never)")
	cmd.Flags().StringVar(&opts.EOL, "eol", config.EOLCRLF, "Output line terminator (crlf|lf)")

	cmd.AddCommand(NewVersionCommand(version))

	return cmd
}

func runPrinter(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	diag, err := newDiagnostics(cmd.ErrOrStderr(), cfg.DevPrint.Diagnostics)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	stop := ignoreFirstInterrupt(in)
	defer stop()

	out := cmd.OutOrStdout()
	colored := colorEnabled(cfg.DevPrint.Color, out)
	if colored {
		out = colorableWriter(out)
	}

	printer := devprint.New(
		devprint.WithStyles(devprint.ColorStyles(colored)),
		devprint.WithEOL(cfg.DevPrint.Terminator()),
		devprint.WithDiagnostics(diag),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return printer.Run(ctx, in, out)
}

// loadConfig reads the environment and lets explicitly set flags override it.
func loadConfig(cmd *cobra.Command, opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("color") {
		cfg.DevPrint.Color = opts.Color
	}
	if cmd.Flags().Changed("eol") {
		cfg.DevPrint.EOL = opts.EOL
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newDiagnostics builds the logger for the printer's own failures.
func newDiagnostics(w io.Writer, level string) (zerolog.Logger, error) {
	parsed, err := record.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	zlevel, err := zerolog.ParseLevel(parsed.Name())
	if err != nil {
		return zerolog.Nop(), err
	}

	console := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05.000"}
	return zerolog.New(console).Level(zlevel).With().Timestamp().Str("component", "devprint").Logger(), nil
}

// colorEnabled resolves the color mode against the output destination.
func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		f, ok := out.(*os.File)
		if !ok {
			return false
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

// colorableWriter translates escape codes for consoles that need it.
func colorableWriter(out io.Writer) io.Writer {
	if f, ok := out.(*os.File); ok {
		return colorable.NewColorable(f)
	}
	return out
}
