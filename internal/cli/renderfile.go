package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bookforge/mdbook-diagrams/pkg/diagram"
)

// renderFileOpts holds the command-line flags for render-file.
type renderFileOpts struct {
	config   string // optional book.toml for the diagrams table
	renderer string // synthesis target ("html" inlines, others link)
	output   string // output path, "" writes to stdout
}

// newRenderFileCmd creates the render-file command, a standalone mode
// that rewrites a single markdown file outside mdbook. Useful for
// previewing a chapter or wiring the preprocessor into other pipelines.
func newRenderFileCmd() *cobra.Command {
	opts := renderFileOpts{renderer: "html"}

	cmd := &cobra.Command{
		Use:   "render-file <file.md>",
		Short: "Rewrite diagram code blocks in a single markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenderFile(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "book.toml with a [preprocessor.diagrams] table")
	cmd.Flags().StringVarP(&opts.renderer, "renderer", "r", opts.renderer, "renderer target for output synthesis")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func runRenderFile(cmd *cobra.Command, path string, opts *renderFileOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg := diagram.DefaultConfig()
	if opts.config != "" {
		var err error
		if cfg, err = diagram.LoadTOML(opts.config); err != nil {
			return err
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	processor, err := diagram.NewProcessor(cfg, logger)
	if err != nil {
		return err
	}
	rewritten, err := processor.RewriteChapter(ctx, string(content), opts.renderer)
	if err != nil {
		return fmt.Errorf("process diagrams in %s: %w", path, err)
	}

	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write([]byte(rewritten))
		return err
	}
	if err := os.WriteFile(opts.output, []byte(rewritten), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	logger.Info("wrote rewritten markdown", "path", opts.output)
	return nil
}
