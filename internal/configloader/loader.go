// Package configloader resolves the configuration for one solidhunter run.
// It finds the rule-set file, falls back to the registry defaults, and layers
// environment and command-line overrides on top before validating the result.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/solidhunter/internal/logging"
	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/lint/rules"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is a rule-set path from the --config flag.
	// If set, project config discovery is skipped and the file must exist.
	ExplicitPath string

	// IgnoreProjectConfig skips the upward search for a rule-set file.
	IgnoreProjectConfig bool

	// IgnoreEnv skips SOLIDHUNTER_* environment variables.
	IgnoreEnv bool

	// Registry validates rule ids and supplies defaults. Nil means the
	// built-in registry.
	Registry *lint.Registry

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// LoadedFrom is the rule-set file that was read, or "" for defaults.
	LoadedFrom string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (SOLIDHUNTER_*)
//  3. Explicit rule-set file (opts.ExplicitPath)
//  4. Project rule-set file (.solidhunter.json upward search)
//  5. Every registered rule at its default severity
//
// Missing or malformed rule-set files surface config.ErrIO and
// config.ErrDeserialization; validation failures are *ValidationError.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	log := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = rules.Registry()
	}

	path, err := resolveRuleSetPath(ctx, opts, workDir)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{LoadedFrom: path}

	var ruleSet config.RuleSet
	if path == "" {
		ruleSet = registry.DefaultRuleSet(config.DefaultRuleSetName)
		log.Debug("no rule set found; using defaults", logging.FieldWorkingDir, workDir)
	} else {
		rs, err := config.LoadRuleSet(path)
		if err != nil {
			return nil, fmt.Errorf("load rule set: %w", err)
		}
		ruleSet = *rs
		log.Debug("loaded rule set", logging.FieldConfig, path, logging.FieldRules, len(rs.Rules))
	}

	cfg := config.NewConfig(ruleSet)
	cfg.RuleSetPath = path

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg, registry)
	if !validation.Valid() {
		return nil, validation.Err()
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// resolveRuleSetPath returns the explicit path made absolute, the discovered
// project file, or "".
func resolveRuleSetPath(ctx context.Context, opts LoadOptions, workDir string) (string, error) {
	if opts.ExplicitPath != "" {
		path := opts.ExplicitPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		return path, nil
	}
	if opts.IgnoreProjectConfig {
		return "", nil
	}
	path, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return "", fmt.Errorf("discover rule set: %w", err)
	}
	return path, nil
}
