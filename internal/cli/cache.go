package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bookforge/mdbook-diagrams/pkg/diagram"
)

// cacheOpts selects which artifact files the cache subcommands operate
// on. Defaults mirror the preprocessor defaults; pass --config to use a
// book's own settings.
type cacheOpts struct {
	config string // optional book.toml
	dir    string // artifact directory override
	prefix string // filename prefix override
}

// resolve derives the effective directory and prefix from the flags.
func (o *cacheOpts) resolve() (dir, prefix string, err error) {
	cfg := diagram.DefaultConfig()
	if o.config != "" {
		if cfg, err = diagram.LoadTOML(o.config); err != nil {
			return "", "", err
		}
	}
	if o.dir != "" {
		cfg.FilesPath = o.dir
	}
	if o.prefix != "" {
		cfg.FilenamePrefix = o.prefix
	}
	abs, err := filepath.Abs(cfg.FilesPath)
	if err != nil {
		return "", "", err
	}
	return abs, cfg.FilenamePrefix, nil
}

// newCacheCmd creates the cache management command.
func newCacheCmd() *cobra.Command {
	opts := &cacheOpts{}

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage rendered diagram artifacts",
	}
	cmd.PersistentFlags().StringVarP(&opts.config, "config", "c", "", "book.toml with a [preprocessor.diagrams] table")
	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "artifact directory (default: files_path setting)")
	cmd.PersistentFlags().StringVar(&opts.prefix, "prefix", "", "artifact filename prefix (default: filename_prefix setting)")

	cmd.AddCommand(newCacheClearCmd(opts))
	cmd.AddCommand(newCachePathCmd(opts))
	return cmd
}

// newCacheClearCmd creates the "cache clear" subcommand. Only files
// carrying the configured prefix are removed; the artifact directory
// defaults to the system temp dir and may hold unrelated files.
func newCacheClearCmd(opts *cacheOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached diagram artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, prefix, err := opts.resolve()
			if err != nil {
				return err
			}

			matches, err := filepath.Glob(filepath.Join(dir, prefix+"*"))
			if err != nil {
				return fmt.Errorf("scan cache dir: %w", err)
			}
			count := 0
			for _, path := range matches {
				if err := os.Remove(path); err == nil {
					count++
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d cached diagrams from %s\n", count, dir)
			return nil
		},
	}
}

// newCachePathCmd creates the "cache path" subcommand.
func newCachePathCmd(opts *cacheOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the artifact directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _, err := opts.resolve()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
