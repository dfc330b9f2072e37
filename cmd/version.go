// File: cmd/version.go
package cmd

import (
	"fmt"

	"leakfix/pkg/version"

	"github.com/spf13/cobra"
)

// newVersionCmd displays the current version of leakfix.
// The --short flag prints the bare version number.
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version of leakfix",
		Long:  `Display the current version information of the leakfix CLI tool.`,
		// Version output must not depend on a valid configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}

			v := version.Get()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), v.Version)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}
	cmd.Flags().BoolP("short", "s", false, "Print the version number only")
	return cmd
}
