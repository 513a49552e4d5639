package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/solidhunter/internal/logging"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/lint/rules"
)

type rulesFlags struct {
	format   string
	category string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Default     any    `json:"default_data,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their category, default severity
and description. Use 'solidhunter docs' for full documentation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.category, "category", "", "only list rules in this category")

	return cmd
}

func runRules(w io.Writer, flags *rulesFlags) error {
	registry := rules.Registry()

	if flags.category != "" && !lo.Contains(registry.Categories(), flags.category) {
		return configError(fmt.Errorf("unknown category %q; valid categories: %v", flags.category, registry.Categories()))
	}

	specs := lo.Filter(registry.Specs(), func(s lint.Spec, _ int) bool {
		return flags.category == "" || s.Category == flags.category
	})
	docs := lo.SliceToMap(registry.Documentation(), func(d lint.Documentation) (string, lint.Documentation) {
		return d.ID, d
	})

	switch flags.format {
	case formatJSON:
		return outputRulesJSON(w, specs, docs)
	case "text", "":
	default:
		return configError(fmt.Errorf("invalid format %q: must be text or json", flags.format))
	}

	logger := log.NewWithOptions(w, log.Options{Level: log.InfoLevel})

	for _, spec := range specs {
		logger.Info(spec.ID,
			logging.FieldCategory, spec.Category,
			logging.FieldSeverity, spec.DefaultSeverity,
			logging.FieldDescription, docs[spec.ID].Description,
		)
	}
	return nil
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(w io.Writer, specs []lint.Spec, docs map[string]lint.Documentation) error {
	infos := lo.Map(specs, func(spec lint.Spec, _ int) ruleInfo {
		return ruleInfo{
			ID:          spec.ID,
			Category:    spec.Category,
			Severity:    string(spec.DefaultSeverity),
			Description: docs[spec.ID].Description,
			Default:     spec.DefaultData,
		}
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
