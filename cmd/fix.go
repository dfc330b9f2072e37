package cmd

import (
	"leakfix/pkg/config"
	"leakfix/pkg/fixer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [root]",
		Short: "Rewrite script files under root in place",
		Long: `Rewrite every matching file under root (default "public"). Files named in the
exclusion list are listed but never opened. The first read or write error aborts the run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFix,
	}
	addFixFlags(cmd)
	return cmd
}

// addFixFlags registers the flags shared by the root, fix and watch commands.
func addFixFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("ext", config.DefaultExtension, "file extension to process")
	flags.StringSlice("exclude", config.DefaultExclude(), "file names that are never rewritten")
	flags.StringSlice("ignore", nil, "gitignore-style patterns pruned from the walk")
	flags.Bool("dry-run", false, "report changes without writing files")
	flags.Bool("diff", false, "print the changed lines of every rewritten file")
	flags.Bool("guard-listeners", false, "skip lines that already use the listener manager")
	flags.String("report", "", "write a YAML report of the run to this file")
}

func runFix(cmd *cobra.Command, _ []string) error {
	summary, err := fixer.Run(toArguments(cfg), newReporter(cmd), logger)
	if err != nil {
		logger.Error("Rewrite run failed", zap.Error(err))
		return err
	}

	logger.Debug("Rewrite run finished",
		zap.Int("total", summary.Total),
		zap.Int("modified", summary.Modified),
		zap.Int("skipped", summary.Skipped()))
	return nil
}
