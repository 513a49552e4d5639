package rules

import (
	"fmt"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

var duplicateContractNameMeta = &meta{
	id:          "duplicate-contract-name",
	category:    CategoryMiscellaneous,
	severity:    config.SeverityWarning,
	description: "Contract, interface and library names must be unique across the project.",
	file:        "miscellaneous",
	bad: []lint.Example{
		example("Token declared in two files", "// a.sol\ncontract Token {}\n// b.sol\ncontract Token {}"),
	},
}

// DuplicateContractNameRule flags contracts whose name is also declared in
// another project file.
type DuplicateContractNameRule struct {
	rule
}

// NewDuplicateContractNameRule creates the duplicate-contract-name rule.
func NewDuplicateContractNameRule(entry config.RuleEntry) lint.Rule {
	return &DuplicateContractNameRule{rule: newRule(duplicateContractNameMeta, entry)}
}

// Diagnose implements lint.Rule. The first other file, in project order,
// that declares the name is the one cited.
func (r *DuplicateContractNameRule) Diagnose(file *solast.File, files []*solast.File) []lint.Diagnostic {
	contracts := solast.RetrieveContracts(file.Root)
	if len(contracts) == 0 {
		return nil
	}

	declared := make(map[string]string)
	for _, other := range files {
		if other == nil || other.Path == file.Path || other.Root == nil {
			continue
		}
		for _, contract := range solast.RetrieveContracts(other.Root) {
			if _, seen := declared[contract.Name()]; !seen {
				declared[contract.Name()] = other.Path
			}
		}
	}

	var diags []lint.Diagnostic
	for _, contract := range contracts {
		if path, ok := declared[contract.Name()]; ok {
			diags = append(diags, r.ReportName(file, contract.Node,
				fmt.Sprintf("Contract name %s is already declared in %s", contract.Name(), path)))
		}
	}
	return diags
}
