package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules[3].severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Err is the underlying cause, when there is one.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err joins every error, or returns nil when the result is valid.
func (r *ValidationResult) Err() error {
	errs := make([]error, 0, len(r.Errors))
	for i := range r.Errors {
		errs = append(errs, &r.Errors[i])
	}
	return errors.Join(errs...)
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(e ValidationError) {
	r.Errors = append(r.Errors, e)
}

func (r *ValidationResult) addWarning(e ValidationError) {
	r.Warnings = append(r.Warnings, e)
}

// Validate checks a configuration against registry. Unknown rule ids are
// errors wrapping lint.ErrUnknownRuleID; a rule listed twice is a warning.
// A nil registry skips the rule-id check.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" {
		if _, err := config.ParseOutputFormat(string(cfg.Format)); err != nil {
			result.addError(ValidationError{Field: "format", Value: cfg.Format, Message: err.Error()})
		}
	}

	switch cfg.Parser {
	case "", config.ParserSolc, config.ParserFoundry:
	default:
		result.addError(ValidationError{
			Field:   "parser",
			Value:   cfg.Parser,
			Message: fmt.Sprintf("invalid parser %q; must be one of: solc, foundry", cfg.Parser),
		})
	}

	if cfg.Jobs < 0 {
		result.addError(ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.SolcTimeout < 0 {
		result.addError(ValidationError{
			Field:   "solc_timeout",
			Value:   cfg.SolcTimeout,
			Message: "solc timeout must not be negative",
		})
	}

	validateRules(cfg, registry, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	seen := make(map[string]int, len(cfg.RuleSet.Rules))

	for i, entry := range cfg.RuleSet.Rules {
		field := fmt.Sprintf("rules[%d]", i)

		if entry.ID == "" {
			result.addError(ValidationError{
				Field:    field + ".id",
				Message:  "missing rule id",
				FilePath: cfg.RuleSetPath,
			})
			continue
		}

		if registry != nil {
			if _, ok := registry.Get(entry.ID); !ok {
				result.addError(ValidationError{
					Field:    field + ".id",
					Value:    entry.ID,
					Message:  fmt.Sprintf("unknown rule %q", entry.ID),
					FilePath: cfg.RuleSetPath,
					Err:      &lint.UnknownRuleError{ID: entry.ID},
				})
			}
		}

		if !entry.Severity.IsValid() {
			result.addError(ValidationError{
				Field:    field + ".severity",
				Value:    entry.Severity,
				Message:  fmt.Sprintf("invalid severity %q; must be one of: ERROR, WARNING, INFO, HINT", entry.Severity),
				FilePath: cfg.RuleSetPath,
			})
		}

		if prev, dup := seen[entry.ID]; dup {
			result.addWarning(ValidationError{
				Field:    field,
				Value:    entry.ID,
				Message:  fmt.Sprintf("rule %q is also configured at rules[%d]; both instances run", entry.ID, prev),
				FilePath: cfg.RuleSetPath,
			})
			continue
		}
		seen[entry.ID] = i
	}

	if len(cfg.RuleSet.Rules) == 0 {
		result.addWarning(ValidationError{
			Field:    "rules",
			Message:  "no rules enabled; nothing will be reported",
			FilePath: cfg.RuleSetPath,
		})
	}
}

func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if strings.TrimSpace(pattern) == "" {
			result.addWarning(ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: "empty ignore pattern",
			})
			continue
		}
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
				Err:     err,
			})
		}
	}
}
