// Package cli wires the command line to the picker.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"pkt.systems/pslog"

	"sprinter/internal/config"
	"sprinter/internal/ingest"
	"sprinter/internal/sink"
	"sprinter/internal/store"
	"sprinter/internal/ui"
	"sprinter/internal/ui/views"
)

// App carries the process streams and the exit status of a run
type App struct {
	Stdin  *os.File
	Stdout io.Writer
	Stderr io.Writer

	configPath string
	exitCode   int
}

// UsageError is a command line or configuration error; usage is printed
// along with it
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// Execute runs the command line and returns the process exit status
func Execute(ctx context.Context, args []string) int {
	app := &App{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	root := NewRootCmd(app)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("sprinter failed")
		color.New(color.FgRed).Fprintf(app.Stderr, "sprinter: %v\n", err)
		var usage *UsageError
		if errors.As(err, &usage) {
			fmt.Fprint(app.Stderr, usage.Usage)
		}
		return 1
	}
	return app.exitCode
}

// NewRootCmd builds the sprinter command tree
func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprinter",
		Short: "Pick a line from standard input",
		Long: strings.TrimSpace(`
sprinter reads lines from standard input and lets you filter and choose one
or more of them on the terminal. The choice is printed to standard output,
or appended as arguments to --command which then replaces sprinter.`),
		Example: strings.TrimSpace(`
  git branch --format='%(refname:short)' | sprinter -l branch | xargs git switch
  ls | sprinter --wrap --size 16 --fullscreen
  find . -name '*.go' | sprinter -c 'vim -p'`),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd)
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &UsageError{Err: err, Usage: c.UsageString()}
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/sprinter/config.toml)")
	flags.StringP("label", "l", "", "label shown above the text field")
	flags.StringP("title", "t", "", "title line")
	flags.StringP("geometry", "g", "", "box size and position (width,height,x,y)")
	flags.StringP("style", "s", "", "style file (TOML)")
	flags.BoolP("wrap", "w", false, "lay items out in a grid")
	flags.StringP("size", "z", "", "grid cell size (width,height)")
	flags.BoolP("minimal", "m", false, "hide the list until it is opened")
	flags.BoolP("sort", "o", false, "sort items alphabetically")
	flags.BoolP("strict", "S", false, "only accept text that is one of the items")
	flags.StringP("command", "c", "", "execute command with the chosen items as arguments")
	flags.Bool("no-color", false, "disable colors")
	flags.Bool("fullscreen", false, "use the whole terminal (enables the mouse)")
	flags.Bool("space-wildcard", true, "a space in the filter matches any text")
	flags.Int("filter-delay-ms", 300, "delay before typed text filters the list")
	flags.String("log", "", "write logs to this file")
	flags.String("log-level", "info", "log level ("+strings.Join(config.LogLevels, ", ")+")")

	cmd.AddCommand(newKeysCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	return cmd
}

// loadConfig layers the config file, environment and flags
func (app *App) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(app.configPath, cmd.Flags())
	if err != nil {
		return nil, &UsageError{Err: err, Usage: cmd.UsageString()}
	}
	return cfg, nil
}

func (app *App) run(cmd *cobra.Command) error {
	cfg, err := app.loadConfig(cmd)
	if err != nil {
		return err
	}

	var command []string
	if cfg.Command != "" {
		if command, err = sink.ParseCommand(cfg.Command); err != nil {
			return &UsageError{Err: fmt.Errorf("--command: %w", err), Usage: cmd.UsageString()}
		}
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	ctx := pslog.ContextWithLogger(cmd.Context(), logger)
	restoreLog := bridgeStdLog(logger)
	defer restoreLog()

	configureColors(app.Stderr, cfg.NoColor)

	var styles *views.Styles
	if cfg.Style != "" {
		if styles, err = views.LoadStyles(cfg.Style); err != nil {
			return &UsageError{Err: err, Usage: cmd.UsageString()}
		}
	}

	items := store.NewItemStore()
	var ingestor *ingest.Ingestor
	if term.IsTerminal(int(app.Stdin.Fd())) {
		logger.Info("stdin is a terminal, no items to read")
	} else {
		ingestor = ingest.New(ingest.NewFileSource(app.Stdin))
	}

	logger.With("minimal", cfg.Minimal, "wrap", cfg.Wrap, "strict", cfg.Strict).Debug("starting picker")
	model := ui.NewModel(cfg, items, ingestor, styles)
	result, err := ui.Run(ctx, model)
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	logger.With("outcome", result.Outcome.String(), "items", items.Len()).Info("picker finished")

	out := sink.New(sink.WithOutput(app.Stdout, app.Stderr), sink.WithCommand(command))
	app.exitCode = out.Deliver(result)
	return nil
}

// configureColors draws on w and drops colors when asked to
func configureColors(w io.Writer, noColor bool) {
	lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(w))
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		color.NoColor = true
	}
}
