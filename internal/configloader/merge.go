package configloader

import "github.com/yaklabco/solidhunter/pkg/config"

// merge combines two configurations, with override taking precedence over base.
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Strict: only a true override has an effect
//
// The rule set is never merged; it comes from exactly one file or the defaults.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Parser != "" {
		result.Parser = override.Parser
	}
	if override.Solc != "" {
		result.Solc = override.Solc
	}
	if override.SolcTimeout != 0 {
		result.SolcTimeout = override.SolcTimeout
	}
	if override.FoundryRoot != "" {
		result.FoundryRoot = override.FoundryRoot
	}
	if override.Strict {
		result.Strict = true
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return &result
}
