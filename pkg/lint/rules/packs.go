package rules

import (
	"slices"

	"github.com/samber/lo"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
)

// Pack is a named starting configuration for `solidhunter init --pack`.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "recommended").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains the enabled rules, sorted by id.
	Rules []config.RuleEntry
}

// RuleSet wraps the pack's rules in a rule set with the given name.
func (p Pack) RuleSet(name string) *config.RuleSet {
	return &config.RuleSet{Name: name, Rules: slices.Clone(p.Rules)}
}

// RecommendedPack enables every rule at its default severity and options.
func RecommendedPack() Pack {
	return Pack{
		Name:        "recommended",
		Description: "Every rule at its default severity",
		Rules:       Registry().DefaultEntries(),
	}
}

// StrictPack enables every rule as an error.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Every rule as an error",
		Rules: lo.Map(Registry().DefaultEntries(), func(e config.RuleEntry, _ int) config.RuleEntry {
			return withSeverity(e, config.SeverityError)
		}),
	}
}

// RelaxedPack keeps security and best-practice findings and demotes style
// rules to hints.
func RelaxedPack() Pack {
	return Pack{
		Name:        "relaxed",
		Description: "Security and best practices as usual, naming and ordering as hints",
		Rules: entriesWhere(func(spec lint.Spec) (config.Severity, bool) {
			switch spec.Category {
			case CategoryNaming, CategoryOrder:
				return config.SeverityHint, true
			}
			return spec.DefaultSeverity, true
		}),
	}
}

// SecurityPack enables only the security rules, as errors.
func SecurityPack() Pack {
	return Pack{
		Name:        "security",
		Description: "Security rules only, as errors",
		Rules: entriesWhere(func(spec lint.Spec) (config.Severity, bool) {
			return config.SeverityError, spec.Category == CategorySecurity
		}),
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		RecommendedPack(),
		StrictPack(),
		RelaxedPack(),
		SecurityPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	return lo.Map(Packs(), func(p Pack, _ int) string { return p.Name })
}

// entriesWhere builds default entries for the specs pick accepts, at the
// severity it chooses.
func entriesWhere(pick func(spec lint.Spec) (config.Severity, bool)) []config.RuleEntry {
	var entries []config.RuleEntry
	for _, spec := range Registry().Specs() {
		if sev, ok := pick(spec); ok {
			entries = append(entries, withSeverity(spec.DefaultEntry(), sev))
		}
	}
	return entries
}

func withSeverity(e config.RuleEntry, sev config.Severity) config.RuleEntry {
	e.Severity = sev
	return e
}
