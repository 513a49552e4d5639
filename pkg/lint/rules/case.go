package rules

import "strings"

// Naming predicates shared by the naming rules. Names are Solidity
// identifiers, so only ASCII matters.

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }

func isLower(c byte) bool { return 'a' <= c && c <= 'z' }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// isCamelCase accepts names like ERC20Token: an upper-case first letter and
// no separators.
func isCamelCase(name string) bool {
	if name == "" || !isUpper(name[0]) {
		return false
	}
	return !strings.ContainsAny(name, "_-")
}

// isMixedCase accepts names like transferFrom, optionally behind a single
// leading underscore.
func isMixedCase(name string) bool {
	name = strings.TrimPrefix(name, "_")
	if name == "" || !isLower(name[0]) {
		return false
	}
	return !strings.ContainsAny(name, "_-")
}

// isSnakeCase accepts names like MAX_SUPPLY_2.
func isSnakeCase(name string) bool {
	if name == "" || isDigit(name[0]) {
		return false
	}
	for i := range len(name) {
		c := name[i]
		if c != '_' && !isUpper(c) && !isDigit(c) {
			return false
		}
	}
	return true
}

// hasInnerUnderscore reports an underscore anywhere but the first character.
func hasInnerUnderscore(name string) bool {
	return len(name) > 1 && strings.Contains(name[1:], "_")
}
