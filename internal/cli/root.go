// Package cli provides the Cobra command structure for solidhunter.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/solidhunter/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root solidhunter command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	var directory string

	rootCmd := &cobra.Command{
		Use:   "solidhunter",
		Short: "A linter for Solidity smart contracts",
		Long: `solidhunter checks Solidity sources for security pitfalls, naming and
ordering conventions, and common best-practice violations.

ASTs come from the solc compiler or from the build artifacts of a Foundry
project. Rules are configured through a .solidhunter.json rule set; run
'solidhunter init' to create one.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to rule-set file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&directory, "directory", "C", "",
		"run as if started in this directory")

	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newDocsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return configError(err)
	})

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}

// workingDir resolves the --directory flag against the process directory.
func workingDir(cmd *cobra.Command) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	dir, _ := cmd.Flags().GetString("directory")
	if dir == "" {
		return cwd, nil
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cwd, dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", configError(fmt.Errorf("--directory: %w", err))
	}
	if !info.IsDir() {
		return "", configError(fmt.Errorf("--directory: %s is not a directory", dir))
	}
	return dir, nil
}
