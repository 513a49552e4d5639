package lint

import "github.com/yaklabco/solidhunter/pkg/config"

// Documentation is static metadata describing a rule.
type Documentation struct {
	ID            string          `json:"id"`
	Severity      config.Severity `json:"severity"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	ExampleConfig string          `json:"example_config"`
	SourceLink    string          `json:"source_link,omitempty"`
	TestLink      string          `json:"test_link,omitempty"`
	Options       []Option        `json:"options,omitempty"`
	Examples      Examples        `json:"examples"`
}

// Option documents one configurable setting.
type Option struct {
	Description string `json:"description"`
	Default     string `json:"default"`
}

// Examples holds code that passes and code that fails a rule.
type Examples struct {
	Good []Example `json:"good,omitempty"`
	Bad  []Example `json:"bad,omitempty"`
}

// Example is one documented code sample.
type Example struct {
	Description string `json:"description"`
	Code        string `json:"code"`
}
