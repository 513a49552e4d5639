package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/solidhunter/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles returns colored styles, or plain ones when color is off.
func NewHelpStyles(colorEnabled bool) HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return HelpStyles{Command: plain, Heading: plain, Subcommand: plain, Flag: plain, Dim: plain}
	}
	return HelpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help for Cobra commands. The --color flag is
// read when help is printed, so it applies even though templates are
// installed before flags are parsed.
type HelpFormatter struct {
	colorMode string
}

// NewHelpFormatter creates a help formatter. colorMode is the fallback when
// the command has no --color flag.
func NewHelpFormatter(colorMode string, _ io.Writer) *HelpFormatter {
	return &HelpFormatter{colorMode: colorMode}
}

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}{{ heading "Usage:" }}{{if .Runnable}}
  {{ command .UseLine }}{{end}}{{if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (pad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

// ApplyToCommand installs the help and usage functions on cmd; subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	render := func(c *cobra.Command) error {
		tmpl, err := template.New("help").Funcs(h.funcs(c)).Parse(helpTemplate)
		if err != nil {
			return fmt.Errorf("parse help template: %w", err)
		}
		return tmpl.Execute(c.OutOrStdout(), c)
	}

	cmd.SetUsageFunc(render)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := render(c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) funcs(cmd *cobra.Command) template.FuncMap {
	mode := h.colorMode
	flag := cmd.Flags().Lookup("color")
	if flag == nil {
		flag = cmd.InheritedFlags().Lookup("color")
	}
	if flag != nil {
		mode = flag.Value.String()
	}
	styles := NewHelpStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))

	return template.FuncMap{
		"heading":    styles.Heading.Render,
		"command":    styles.Command.Render,
		"subcommand": styles.Subcommand.Render,
		"pad":        pad,
		"trim":       trimTrailingWhitespace,
		"flags": func(usages string) string {
			return styleFlagUsages(usages, styles)
		},
	}
}

// styleFlagUsages colors flag names and dims value types in pflag's usage
// block, keeping its column layout.
func styleFlagUsages(usages string, styles HelpStyles) string {
	lines := strings.Split(strings.TrimRight(usages, "\n"), "\n")
	for i, line := range lines {
		body := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(body)]

		spec, desc, found := strings.Cut(body, "   ")
		if !found || strings.TrimSpace(spec) == "" {
			continue
		}

		tokens := strings.Fields(spec)
		for j, tok := range tokens {
			name, comma := strings.CutSuffix(tok, ",")
			if strings.HasPrefix(name, "-") {
				name = styles.Flag.Render(name)
			} else {
				name = styles.Dim.Render(name)
			}
			if comma {
				name += ","
			}
			tokens[j] = name
		}
		gap := len(body) - len(spec) - len(desc)
		lines[i] = indent + strings.Join(tokens, " ") + strings.Repeat(" ", gap) + desc
	}
	return strings.Join(lines, "\n")
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
