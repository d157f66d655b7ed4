// Package cli implements the mdbook-diagrams command-line interface.
//
// Invoked with no arguments the binary speaks the mdbook preprocessor
// protocol: it reads the [context, book] JSON from stdin, renders every
// diagram code block, and writes the transformed book to stdout. The
// supports subcommand answers mdbook's renderer capability probe, and
// the cache subcommand manages rendered artifacts on disk.
//
// All diagnostics go to stderr; stdout is reserved for the protocol.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bookforge/mdbook-diagrams/pkg/buildinfo"
)

// Execute runs the mdbook-diagrams CLI and returns an error if any
// command fails. Logging defaults to info level; --verbose (-v) enables
// debug output (per-diagram cache hits and misses).
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "mdbook-diagrams",
		Short:        "mdbook preprocessor that renders diagram code blocks via Kroki",
		Long:         `mdbook-diagrams is an mdbook preprocessor that replaces fenced code blocks written in diagram languages (mermaid, plantuml, and anything else a Kroki service understands) with rendered images, caching rendered artifacts on disk.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
		RunE: runProcess,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSupportsCmd())
	root.AddCommand(newRenderFileCmd())
	root.AddCommand(newCacheCmd())

	return root
}
