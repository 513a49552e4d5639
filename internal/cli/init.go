package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/solidhunter/internal/logging"
	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/fsutil"
	"github.com/yaklabco/solidhunter/pkg/lint/rules"
)

// errNotOverwritten is returned when the user declines to replace a file.
var errNotOverwritten = errors.New("existing file kept")

// initFlags holds the flags for the init command.
type initFlags struct {
	pack      string
	force     bool
	output    string
	listPacks bool
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a rule-set file",
		Long: `Create a .solidhunter.json rule set in the current directory from one
of the built-in packs. An existing file is only replaced with --force or
after confirmation; the previous version is kept as a backup.

Examples:
  solidhunter init                       Every rule at its default severity
  solidhunter init --pack security       Only the security rules
  solidhunter init -o rules.yaml         Write YAML to a custom path
  solidhunter init --list-packs          Show the available packs`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.pack, "pack", "recommended",
		"rule pack: "+strings.Join(rules.PackNames(), ", "))
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file without asking")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.DefaultRuleSetFile,
		"output file; .yml or .yaml writes YAML")
	cmd.Flags().BoolVar(&flags.listPacks, "list-packs", false, "list the available packs and exit")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()

	if flags.listPacks {
		for _, p := range rules.Packs() {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-12s %3d rules  %s\n", p.Name, len(p.Rules), p.Description); err != nil {
				return fmt.Errorf("write packs: %w", err)
			}
		}
		return nil
	}

	pack := rules.PackByName(flags.pack)
	if pack == nil {
		return configError(fmt.Errorf("unknown pack %q; available packs: %s",
			flags.pack, strings.Join(rules.PackNames(), ", ")))
	}

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}
	path := flags.output
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	if _, err := os.Stat(path); err == nil {
		if err := confirmOverwrite(cmd, path, flags.force); err != nil {
			return err
		}
		backup, err := fsutil.Backup(ctx, path)
		if err != nil {
			return fmt.Errorf("back up %s: %w", path, err)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, path, logging.FieldOutput, backup)
	}

	if err := config.WriteRuleSet(ctx, path, pack.RuleSet(config.DefaultRuleSetName)); err != nil {
		return fmt.Errorf("write rule set: %w", err)
	}

	logger.Info("created rule set",
		logging.FieldPath, path,
		logging.FieldPack, pack.Name,
		logging.FieldRules, len(pack.Rules),
	)
	return nil
}

// confirmOverwrite allows replacing path when forced or when an interactive
// user agrees.
func confirmOverwrite(cmd *cobra.Command, path string, force bool) error {
	if force {
		return nil
	}
	if !isInteractive(cmd.InOrStdin()) {
		return configError(fmt.Errorf("file %q already exists; use --force to overwrite", path))
	}

	ok, err := prompt(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("%s exists. Overwrite? [y/N] ", path))
	if err != nil {
		return err
	}
	if !ok {
		return configError(errNotOverwritten)
	}
	return nil
}

// isInteractive reports whether in is a terminal.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// prompt asks a yes/no question; anything but y or yes is no.
func prompt(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := io.WriteString(out, question); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
