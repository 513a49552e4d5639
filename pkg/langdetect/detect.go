// Package langdetect decides whether a discovered file is Solidity source.
// It uses go-enry, the Go port of GitHub Linguist, which maps the .sol
// extension to both Solidity and Gerber Image, so content patterns settle
// the ambiguity before falling back to the classifier.
package langdetect

import (
	"bytes"
	"regexp"
	"slices"

	"github.com/go-enry/go-enry/v2"
)

// Solidity is the linguist name of the language.
const Solidity = "Solidity"

var (
	pragmaPattern      = regexp.MustCompile(`(?m)^\s*pragma\s+(solidity|abicoder|experimental)\b`)
	spdxPattern        = regexp.MustCompile(`SPDX-License-Identifier:`)
	declarationPattern = regexp.MustCompile(
		`(?m)^\s*(abstract\s+contract|contract|interface|library|import|function|struct|enum|error|event|using|type)\s+[A-Za-z_{"'*$]`)
	commentPattern = regexp.MustCompile(`^\s*(//|/\*)`)
)

// Detect returns the linguist language of a file, or "" when unknown.
func Detect(path string, content []byte) string {
	candidates := enry.GetLanguagesByExtension(path, content, nil)
	switch {
	case len(candidates) == 1:
		return candidates[0]
	case slices.Contains(candidates, Solidity) && looksLikeSolidity(content):
		return Solidity
	case len(candidates) > 1:
		if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe {
			return lang
		}
		return ""
	}

	lang, _ := enry.GetLanguageByContent(path, content)
	return lang
}

// IsSolidity reports whether path with content should be linted. Empty
// files named *.sol count as Solidity so that they are reported rather than
// silently dropped. The classifier is not consulted: a .sol file with no
// recognisable construct is left alone.
func IsSolidity(path string, content []byte) bool {
	candidates := enry.GetLanguagesByExtension(path, content, nil)
	if !slices.Contains(candidates, Solidity) {
		return false
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return true
	}
	if len(candidates) == 1 {
		return true
	}
	return looksLikeSolidity(content)
}

// looksLikeSolidity matches constructs only Solidity source begins with.
func looksLikeSolidity(content []byte) bool {
	return pragmaPattern.Match(content) ||
		spdxPattern.Match(content) ||
		declarationPattern.Match(content) ||
		commentPattern.Match(content)
}
