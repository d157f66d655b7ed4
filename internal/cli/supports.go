package cli

import "github.com/spf13/cobra"

// newSupportsCmd creates the supports subcommand mdbook uses to probe
// renderer compatibility before piping the book. Every renderer is
// supported: html gets inline embeds, everything else image references.
func newSupportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "supports <renderer>",
		Short: "Report whether a renderer is supported (always yes)",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) {},
	}
}
