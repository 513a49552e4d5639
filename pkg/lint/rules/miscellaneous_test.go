package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/solidhunter/pkg/solast"
)

func TestDuplicateContractName(t *testing.T) {
	t.Parallel()

	a, b := fixture("duplicate-contract-name", "a.sol"), fixture("duplicate-contract-name", "b.sol")

	file, diags := runRule(t, "duplicate-contract-name", nil, "a.sol", "b.sol")
	assertFindings(t, file, diags,
		at("contract |Token", "Contract name Token is already declared in "+b),
	)

	file, diags = runRule(t, "duplicate-contract-name", nil, "b.sol", "a.sol")
	assertFindings(t, file, diags,
		at("contract |Token", "Contract name Token is already declared in "+a),
	)
}

func TestDuplicateContractName_SingleFile(t *testing.T) {
	t.Parallel()

	_, diags := runRule(t, "duplicate-contract-name", nil, "a.sol")
	assert.Empty(t, diags)
}

func TestDuplicateContractName_SkipsUnparsedFiles(t *testing.T) {
	t.Parallel()

	rule := newTestRule(t, "duplicate-contract-name", nil)
	file, _ := runRule(t, "duplicate-contract-name", nil, "a.sol")
	broken := solast.NewFile("broken.sol", "contract Token {", nil)

	assert.Empty(t, rule.Diagnose(file, []*solast.File{file, broken, nil}))
}
