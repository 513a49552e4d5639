package rules

import (
	"github.com/yaklabco/solidhunter/internal/logging"
	"github.com/yaklabco/solidhunter/pkg/config"
)

// Options are read leniently: data that does not fit is logged and the
// default is used instead.

func badData(entry config.RuleEntry) {
	logging.Default().Warn("ignoring invalid rule data",
		logging.FieldRule, entry.ID,
		logging.FieldData, entry.Data)
}

// intOption reads data as a positive integer.
func intOption(entry config.RuleEntry, def int) int {
	if entry.Data == nil {
		return def
	}
	var n int
	if !entry.DecodeData(&n) || n <= 0 {
		badData(entry)
		return def
	}
	return n
}

// stringOption reads data as one of the allowed strings.
func stringOption(entry config.RuleEntry, def string, allowed ...string) string {
	if entry.Data == nil {
		return def
	}
	var s string
	if entry.DecodeData(&s) {
		for _, a := range allowed {
			if s == a {
				return s
			}
		}
	}
	badData(entry)
	return def
}

// stringsOption reads data as a list of strings.
func stringsOption(entry config.RuleEntry, def []string) []string {
	if entry.Data == nil {
		return def
	}
	var list []string
	if !entry.DecodeData(&list) {
		badData(entry)
		return def
	}
	return list
}

// boolField reads one boolean field of an object payload.
func boolField(entry config.RuleEntry, field string, def bool) bool {
	if entry.Data == nil {
		return def
	}
	var obj map[string]any
	if !entry.DecodeData(&obj) {
		badData(entry)
		return def
	}
	raw, ok := obj[field]
	if !ok {
		return def
	}
	b, ok := raw.(bool)
	if !ok {
		badData(entry)
		return def
	}
	return b
}
