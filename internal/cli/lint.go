package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/solidhunter/internal/configloader"
	"github.com/yaklabco/solidhunter/internal/logging"
	"github.com/yaklabco/solidhunter/pkg/analysis"
	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/lint/rules"
	"github.com/yaklabco/solidhunter/pkg/parser/foundry"
	"github.com/yaklabco/solidhunter/pkg/parser/solc"
	"github.com/yaklabco/solidhunter/pkg/reporter"
	"github.com/yaklabco/solidhunter/pkg/runner"
)

type lintFlags struct {
	format       string
	parser       string
	solc         string
	solcTimeout  time.Duration
	foundryRoot  string
	ignore       []string
	jobs         int
	strict       bool
	watch        bool
	noIgnoreFile bool
	noContext    bool
	compact      bool
	summaryOrder string
	summarySort  string
}

func newLintCommand(info BuildInfo) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Solidity files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, info)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Lint Solidity files.

By default, lints every .sol file under the current directory. With
--parser foundry and no paths, the project's source directory is linted
from the ASTs in its build output; run 'forge build' first.

Examples:
  solidhunter lint                       # Lint current directory with solc
  solidhunter lint contracts/            # Lint one directory
  solidhunter lint --parser foundry      # Use Foundry build artifacts
  solidhunter lint --format sarif        # Output SARIF for code scanning
  solidhunter lint --strict              # Fail on warnings too
  solidhunter lint --watch               # Re-lint on every change`

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, summary")
	cmd.Flags().StringVar(&flags.parser, "parser", "solc", "AST front-end: solc, foundry")
	cmd.Flags().StringVar(&flags.solc, "solc", "solc", "solc executable")
	cmd.Flags().DurationVar(&flags.solcTimeout, "solc-timeout", config.DefaultSolcTimeout, "timeout per solc run")
	cmd.Flags().StringVar(&flags.foundryRoot, "foundry-root", "", "directory holding foundry.toml (default: search upward)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-lint when files change")
	cmd.Flags().BoolVar(&flags.noIgnoreFile, "no-ignore-file", false, "do not read "+runner.DefaultIgnoreFile+" files")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files")
	cmd.Flags().StringVar(&flags.summarySort, "summary-sort", "count",
		"row order in summary output: count, alpha, severity")
}

// cliConfig collects the flags the user actually set, so that unset flags
// do not shadow the environment.
func cliConfig(cmd *cobra.Command, flags *lintFlags) *config.Config {
	cfg := &config.Config{Strict: flags.strict}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("parser") {
		cfg.Parser = config.ParserKind(flags.parser)
	}
	if changed("solc") {
		cfg.Solc = flags.solc
	}
	if changed("solc-timeout") {
		cfg.SolcTimeout = flags.solcTimeout
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	cfg.FoundryRoot = flags.foundryRoot
	return cfg
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	if flags.watch {
		logger = logging.NewInteractive(logger.GetLevel())
	}
	ctx = logging.WithLogger(ctx, logger)

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	registry := rules.Registry()
	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Registry:     registry,
		CLIConfig:    cliConfig(cmd, flags),
	})
	if err != nil {
		return configError(fmt.Errorf("failed to load configuration: %w", err))
	}
	cfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	logger.Debug("configuration loaded",
		logging.FieldConfig, loadResult.LoadedFrom,
		logging.FieldParser, cfg.Parser,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
	)

	ruleList, err := registry.CreateRules(cfg.RuleSet.Rules)
	if err != nil {
		return configError(err)
	}

	front, err := newParser(cfg, workDir)
	if err != nil {
		return configError(err)
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return configError(err)
	}
	order, err := reporter.ParseSummaryOrder(flags.summaryOrder)
	if err != nil {
		return configError(err)
	}
	sortBy, err := analysis.ParseSortField(flags.summarySort)
	if err != nil {
		return configError(err)
	}
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       format,
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		SummaryOrder: order,
		SummarySort:  sortBy,
		WorkingDir:   workDir,
		Version:      info.Version,
		Rules:        registry.Documentation(),
	})
	if err != nil {
		return configError(fmt.Errorf("create reporter: %w", err))
	}

	linter := lint.NewLinter(front.parser, lint.NewEngine(ruleList, 0))
	lintRunner := runner.New(linter)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
	}
	if len(runOpts.Paths) == 0 && front.srcDir != "" {
		runOpts.Paths = []string{front.srcDir}
	}
	if flags.noIgnoreFile {
		runOpts.IgnoreFile = "-"
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	if flags.watch {
		return watch(ctx, lintRunner, runOpts, rep, front)
	}

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result, cfg.Strict) != ExitSuccess {
		return ErrLintIssuesFound
	}
	return nil
}

// frontEnd is the configured parser plus what the run needs to know about it.
type frontEnd struct {
	parser lint.Parser

	// srcDir is linted when no paths are given; "" means the working dir.
	srcDir string

	// reload drops cached artifacts between watch iterations. May be nil.
	reload func()
}

func newParser(cfg *config.Config, workDir string) (frontEnd, error) {
	switch cfg.Parser {
	case config.ParserFoundry:
		root := cfg.FoundryRoot
		if root == "" {
			found, err := foundry.FindRoot(workDir)
			if err != nil {
				return frontEnd{}, err
			}
			root = found
		}
		p, err := foundry.New(root)
		if err != nil {
			return frontEnd{}, err
		}
		return frontEnd{parser: p, srcDir: p.Config().SrcDir(), reload: p.Reload}, nil
	default:
		p := solc.New(solc.WithExecutable(cfg.Solc), solc.WithTimeout(cfg.SolcTimeout))
		return frontEnd{parser: p}, nil
	}
}

// watch reports every run until interrupted. Lint findings never end it.
func watch(ctx context.Context, r *runner.Runner, opts runner.Options, rep reporter.Reporter, front frontEnd) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.FromContext(ctx)
	err := r.Watch(ctx, opts, func(result *runner.Result) {
		if _, err := rep.Report(ctx, result); err != nil {
			logger.Error("report failed", logging.FieldError, err)
		}
		if front.reload != nil {
			front.reload()
		}
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}
