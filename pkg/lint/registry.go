package lint

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/solidhunter/pkg/config"
)

// ErrUnknownRuleID is wrapped by every UnknownRuleError.
var ErrUnknownRuleID = errors.New("unknown rule id")

// UnknownRuleError reports a configuration entry naming a rule that does not exist.
type UnknownRuleError struct {
	ID string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule id %q", e.ID)
}

func (e *UnknownRuleError) Unwrap() error {
	return ErrUnknownRuleID
}

// Constructor builds a rule from its configuration entry.
type Constructor func(entry config.RuleEntry) Rule

// Spec describes one built-in rule.
type Spec struct {
	ID              string
	Category        string
	DefaultSeverity config.Severity
	// DefaultData is the option payload written to generated configurations.
	DefaultData any
	New         Constructor
}

// DefaultEntry returns the rule's entry at its documented defaults.
func (s Spec) DefaultEntry() config.RuleEntry {
	return config.RuleEntry{ID: s.ID, Severity: s.DefaultSeverity, Data: s.DefaultData}
}

// Category is one group of rules contributed to a registry.
type Category struct {
	Name  string
	Specs []Spec
}

// Registry maps rule ids to their specs. It is immutable once built and safe
// for concurrent use.
type Registry struct {
	byID       map[string]Spec
	ids        []string
	categories []string
}

// NewRegistry merges categories in order. When two categories contribute the
// same id, the later one wins and the earlier spec is discarded silently.
func NewRegistry(categories ...Category) *Registry {
	reg := &Registry{byID: make(map[string]Spec)}

	for _, cat := range categories {
		if !slices.Contains(reg.categories, cat.Name) {
			reg.categories = append(reg.categories, cat.Name)
		}
		for _, spec := range cat.Specs {
			if spec.Category == "" {
				spec.Category = cat.Name
			}
			reg.byID[spec.ID] = spec
		}
	}

	reg.ids = make([]string, 0, len(reg.byID))
	for id := range reg.byID {
		reg.ids = append(reg.ids, id)
	}
	slices.Sort(reg.ids)

	return reg
}

// Get returns the spec for id.
func (r *Registry) Get(id string) (Spec, bool) {
	spec, ok := r.byID[id]
	return spec, ok
}

// IDs returns all rule ids in sorted order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.ids)
}

// Specs returns all specs sorted by id.
func (r *Registry) Specs() []Spec {
	out := make([]Spec, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out
}

// Categories returns category names in merge order.
func (r *Registry) Categories() []string {
	return slices.Clone(r.categories)
}

// Len returns the number of rules.
func (r *Registry) Len() int {
	return len(r.ids)
}

// CreateRule builds the rule named by entry. An unknown id yields an
// *UnknownRuleError.
func (r *Registry) CreateRule(entry config.RuleEntry) (Rule, error) {
	spec, ok := r.byID[entry.ID]
	if !ok {
		return nil, &UnknownRuleError{ID: entry.ID}
	}
	return spec.New(entry), nil
}

// CreateRules builds every entry. Unknown ids are skipped and reported
// together; the rules that could be built are still returned.
func (r *Registry) CreateRules(entries []config.RuleEntry) ([]Rule, error) {
	rules := make([]Rule, 0, len(entries))
	var errs []error

	for _, entry := range entries {
		rule, err := r.CreateRule(entry)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rules = append(rules, rule)
	}

	return rules, errors.Join(errs...)
}

// DefaultEntries returns one entry per rule at its default severity and
// options, sorted by id.
func (r *Registry) DefaultEntries() []config.RuleEntry {
	entries := make([]config.RuleEntry, 0, len(r.ids))
	for _, id := range r.ids {
		entries = append(entries, r.byID[id].DefaultEntry())
	}
	return entries
}

// DefaultRuleSet wraps DefaultEntries in a named rule set.
func (r *Registry) DefaultRuleSet(name string) config.RuleSet {
	return config.RuleSet{Name: name, Rules: r.DefaultEntries()}
}

// Documentation returns the documentation of every rule, sorted by id.
func (r *Registry) Documentation() []Documentation {
	docs := make([]Documentation, 0, len(r.ids))
	for _, id := range r.ids {
		spec := r.byID[id]
		doc := spec.New(spec.DefaultEntry()).Documentation()
		if doc.Category == "" {
			doc.Category = spec.Category
		}
		docs = append(docs, doc)
	}
	return docs
}
