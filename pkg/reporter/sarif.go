package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	sarifToolName  = "solidhunter"
	sarifToolURI   = "https://github.com/yaklabco/solidhunter"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule (linter check).
type SARIFRule struct {
	ID               string                `json:"id"`
	ShortDescription *SARIFMultiformatText `json:"shortDescription,omitempty"`
	HelpURI          string                `json:"helpUri,omitempty"`
	DefaultConfig    *SARIFRuleConfig      `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any        `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region. Columns are 1-based and
// the end column is exclusive, matching diagnostic ranges.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFInvocation records files that could not be analyzed.
type SARIFInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification is one per-file failure.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           sarifToolName,
				Version:        r.opts.Version,
				InformationURI: sarifToolURI,
				Rules:          make([]SARIFRule, 0),
			},
		},
		Results: make([]SARIFResult, 0),
	}
	output := &SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion}

	if result == nil {
		output.Runs = []SARIFRun{run}
		return output
	}

	docs := lo.KeyBy(r.opts.Rules, func(doc lint.Documentation) string { return doc.ID })
	ruleIndex := make(map[string]int)
	var notifications []SARIFNotification

	for _, file := range result.Files {
		uri := filepath.ToSlash(r.opts.displayPath(file.Path))

		if file.Error != nil {
			notifications = append(notifications, SARIFNotification{
				Level:     "error",
				Message:   SARIFMessage{Text: file.Error.Error()},
				Locations: []SARIFLocation{sarifLocation(uri, SARIFRegion{StartLine: 1})},
			})
			continue
		}
		if file.Result == nil {
			continue
		}

		for _, diag := range lint.Unaggregate(file.Result.Diagnostics) {
			index, ok := ruleIndex[diag.RuleID]
			if !ok {
				index = len(run.Tool.Driver.Rules)
				ruleIndex[diag.RuleID] = index
				run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule(diag, docs))
			}

			run.Results = append(run.Results, SARIFResult{
				RuleID:    diag.RuleID,
				RuleIndex: index,
				Level:     severityToSARIFLevel(diag.Severity),
				Message:   SARIFMessage{Text: diag.Message},
				Locations: []SARIFLocation{sarifLocation(uri, SARIFRegion{
					StartLine:   diag.Range.Start.Line,
					StartColumn: diag.Range.Start.Character,
					EndLine:     diag.Range.End.Line,
					EndColumn:   diag.Range.End.Character,
				})},
			})
		}
	}

	if len(notifications) > 0 {
		run.Invocations = []SARIFInvocation{{
			ExecutionSuccessful:        false,
			ToolExecutionNotifications: notifications,
		}}
	}

	output.Runs = []SARIFRun{run}
	return output
}

func sarifLocation(uri string, region SARIFRegion) SARIFLocation {
	return SARIFLocation{PhysicalLocation: SARIFPhysicalLocation{
		ArtifactLocation: SARIFArtifactLocation{URI: uri},
		Region:           region,
	}}
}

func sarifRule(diag lint.Diagnostic, docs map[string]lint.Documentation) SARIFRule {
	rule := SARIFRule{
		ID:            diag.RuleID,
		DefaultConfig: &SARIFRuleConfig{Level: severityToSARIFLevel(diag.Severity)},
	}
	doc, ok := docs[diag.RuleID]
	if !ok {
		return rule
	}
	rule.ShortDescription = &SARIFMultiformatText{Text: doc.Description}
	rule.HelpURI = doc.SourceLink
	rule.DefaultConfig.Level = severityToSARIFLevel(doc.Severity)
	if doc.Category != "" {
		rule.Properties = map[string]any{"category": doc.Category}
	}
	return rule
}

// severityToSARIFLevel maps a severity to a SARIF level. SARIF has no hint
// level; hints become notes like infos.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo, config.SeverityHint:
		return "note"
	default:
		return "warning"
	}
}
