package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"leakfix/pkg/config"
	"leakfix/pkg/fixer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Rewrite once, then keep rewriting files as they change",
		Long: `Run a full pass over root and then watch it for created or modified files, rewriting
them after a short debounce. Already wrapped listeners are never wrapped again in this mode.
Stop with Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}
	addFixFlags(cmd)
	cmd.Flags().Duration("debounce", config.DefaultWatchDebounce, "quiet period before changed files are processed")
	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fixer.Watch(ctx, toArguments(cfg), cfg.Watch.Debounce, newReporter(cmd), logger); err != nil {
		logger.Error("Watch failed", zap.Error(err))
		return err
	}
	return nil
}
