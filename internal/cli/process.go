package cli

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bookforge/mdbook-diagrams/pkg/book"
	"github.com/bookforge/mdbook-diagrams/pkg/diagram"
)

// preprocessorName is the key of our table in the book's configuration
// ([preprocessor.diagrams] in book.toml).
const preprocessorName = "diagrams"

// mdbookVersionConstraint matches the mdbook releases this preprocessor
// is developed against. Other versions get a warning, not a failure.
const mdbookVersionConstraint = "~0.4"

// runProcess implements the default invocation: mdbook pipes the
// [context, book] JSON to stdin and reads the transformed book from
// stdout.
func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	bookCtx, b, err := book.ParseInput(os.Stdin)
	if err != nil {
		return err
	}
	warnVersionMismatch(logger, bookCtx.MdbookVersion)

	cfg, err := diagram.ConfigFromTable(bookCtx.PreprocessorConfig(preprocessorName))
	if err != nil {
		return err
	}

	processor, err := diagram.NewProcessor(cfg, logger)
	if err != nil {
		return err
	}
	if err := processor.ProcessBook(ctx, b, bookCtx.Renderer); err != nil {
		return err
	}

	if err := book.Write(os.Stdout, b); err != nil {
		return fmt.Errorf("serialize processed book: %w", err)
	}
	return nil
}

// warnVersionMismatch flags mdbook versions outside the supported
// range. The protocol is stable enough that processing still proceeds.
func warnVersionMismatch(logger *charmlog.Logger, version string) {
	constraint, err := semver.NewConstraint(mdbookVersionConstraint)
	if err != nil {
		return
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		logger.Warn("could not parse mdbook version", "version", version, "err", err)
		return
	}
	if !constraint.Check(v) {
		logger.Warn("mdbook version differs from the one this preprocessor targets, processing may not work",
			"mdbook", version, "supported", mdbookVersionConstraint)
	}
}
