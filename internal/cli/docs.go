package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/solidhunter/internal/logging"
	"github.com/yaklabco/solidhunter/pkg/docs"
	"github.com/yaklabco/solidhunter/pkg/lint/rules"
)

// defaultDocsDir is where generated documentation goes without --out.
const defaultDocsDir = "docs/rules"

type docsFlags struct {
	format string
	out    string
}

func newDocsCommand() *cobra.Command {
	flags := &docsFlags{}

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate rule documentation",
		Long: `Generate documentation for every rule.

Markdown and HTML produce one page per rule, grouped by category, plus an
index. JSON produces a single rules.json; without --out it is printed.

Examples:
  solidhunter docs                          Markdown under docs/rules
  solidhunter docs --format html --out site Render HTML pages into site/
  solidhunter docs --format json            Print rule metadata as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDocs(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "markdown", "output format: markdown, html, json")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output directory (default: "+defaultDocsDir+")")

	return cmd
}

func runDocs(cmd *cobra.Command, flags *docsFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := docs.ParseFormat(flags.format)
	if err != nil {
		return configError(err)
	}
	ruleDocs := rules.Registry().Documentation()

	if format == docs.FormatJSON && flags.out == "" {
		data, err := docs.JSON(ruleDocs)
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("write documentation: %w", err)
		}
		return nil
	}

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}
	dir := flags.out
	if dir == "" {
		dir = defaultDocsDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(workDir, dir)
	}

	written, err := docs.Generate(ctx, dir, ruleDocs, format)
	if err != nil {
		return err
	}

	logging.Default().Info("generated documentation",
		logging.FieldOutput, dir,
		logging.FieldFormat, format,
		logging.FieldFiles, len(written),
	)
	return nil
}
