// Package cli implements the prisched command line.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command for the prisched CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "prisched",
		Short:        "Priority CPU scheduling simulator",
		Long:         "prisched simulates priority scheduling over a process list and reports the timeline and per-process metrics.",
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCmd(),
		newServeCmd(),
	)

	return root
}
