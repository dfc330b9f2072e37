package cmd

import (
	"fmt"
	"os"

	"leakfix/pkg/config"
	"leakfix/pkg/fixer"
	"leakfix/pkg/logging"
	"leakfix/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Shared state populated by the root command before any subcommand runs.
var (
	logger  = zap.NewNop()
	cfg     *config.Config
	cfgPath string
)

// RootCmd is the command tree run by Execute.
var RootCmd = NewRootCommand()

// NewRootCommand builds the leakfix command tree. Without a subcommand the root behaves like
// `leakfix fix`.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "leakfix [root]",
		Short: "Route event listeners and timers through leak-tracking managers",
		Long: `leakfix scans a directory of script files and rewrites addEventListener, setTimeout
and setInterval calls so they go through window.eventListenerManager and window.timerManager
when those objects exist, falling back to the original calls otherwise.

The rewrite is textual and line based: comment lines are left alone and files are only
written when their content changes.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: prepare,
		RunE:              runFix,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: ./.leakfix.yaml or ~/.leakfix.yaml)")
	root.PersistentFlags().Bool("debug", false, "enable development logging")
	root.PersistentFlags().Bool("no-color", false, "disable coloured output")
	addFixFlags(root)

	root.AddCommand(newFixCmd(), newWatchCmd(), newVersionCmd())
	return root
}

// Execute runs the root command with logger as the initial logger.
func Execute(base *zap.Logger) error {
	if base != nil {
		logger = base
	}
	return RootCmd.Execute()
}

// prepare loads configuration and, when debug logging is requested, rebuilds the logger.
func prepare(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgPath, cmd.Flags())
	if err != nil {
		logger.Error("Failed to load configuration", zap.Error(err))
		return err
	}
	if len(args) > 0 {
		loaded.Root = args[0]
	}
	cfg = loaded

	if cfg.Debug {
		l, err := logging.Setup(true, "leakfix", version.Get().Version)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
	}

	logger.Debug("Loaded configuration",
		zap.String("root", cfg.Root),
		zap.String("extension", cfg.Extension),
		zap.Strings("exclude", cfg.Exclude),
		zap.Strings("ignore", cfg.Ignore))
	return nil
}

// toArguments converts the loaded configuration into fixer arguments.
func toArguments(c *config.Config) *fixer.Arguments {
	return &fixer.Arguments{
		Root:           c.Root,
		Extension:      c.Extension,
		Exclude:        c.Exclude,
		Ignore:         c.Ignore,
		DryRun:         c.DryRun,
		ShowDiff:       c.Diff,
		GuardListeners: c.GuardListeners,
		ReportPath:     c.Report,
	}
}

// newReporter returns a console reporter on stdout, coloured only on a terminal.
func newReporter(cmd *cobra.Command) fixer.Reporter {
	noColor := cfg.NoColor || !term.IsTerminal(int(os.Stdout.Fd()))
	return fixer.NewConsoleReporter(cmd.OutOrStdout(), noColor)
}
