// Package main is the entry point for the solidhunter CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/solidhunter/internal/cli"
	"github.com/yaklabco/solidhunter/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	if err := cli.NewRootCommand(info).Execute(); err != nil {
		// Lint findings were already reported; only the exit code is left.
		if !errors.Is(err, cli.ErrLintIssuesFound) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}
	return cli.ExitSuccess
}
