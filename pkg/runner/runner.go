package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/solidhunter/internal/logging"
	"github.com/yaklabco/solidhunter/pkg/fsutil"
	"github.com/yaklabco/solidhunter/pkg/langdetect"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

// Runner orchestrates multi-file linting on top of a lint.Linter. A run has
// two phases: every discovered file is parsed into the linter's project set,
// then every parsed file is linted against the complete set, so cross-file
// rules see all siblings.
//
// A Runner remembers what each file looked like when it was last parsed and
// reuses the snapshot while the file is unchanged, which keeps repeated runs
// in watch mode cheap. Runs must not overlap.
type Runner struct {
	// Linter holds the project file set and the rule engine.
	Linter *lint.Linter

	mu     sync.Mutex
	parsed map[string]parsedFile
}

// parsedFile is the cached outcome of reading one file.
type parsedFile struct {
	info    *fsutil.FileInfo
	outcome FileOutcome
}

// New creates a new Runner around linter.
func New(linter *lint.Linter) *Runner {
	return &Runner{
		Linter: linter,
		parsed: make(map[string]parsedFile),
	}
}

// Run discovers files under opts.Paths, parses and lints them concurrently,
// and returns their outcomes in path order with aggregate stats. Per-file
// read and parse failures are recorded on the outcome; only cancellation
// and discovery errors abort the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	ignored, err := LoadIgnoreFiles(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("loading ignore files: %w", err)
	}
	r.Linter.Excluded = ignored.Match
	r.forgetMissing(files)

	jobs := effectiveJobs(opts.Jobs, len(files))
	logger.Debug("discovered files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs)

	outcomes, snapshots, err := r.parse(ctx, files, opts, ignored, jobs)
	if err != nil {
		return nil, err
	}
	if err := r.lint(ctx, outcomes, snapshots, jobs); err != nil {
		return nil, err
	}

	result := newResult(len(outcomes))
	result.Stats.FilesDiscovered = len(files)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	logger.Debug("run complete",
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldParseFailures, result.Stats.ParseFailures,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldSuppressed, result.Stats.Suppressed,
		logging.FieldDuration, time.Since(start))

	return result, nil
}

// parse runs the parse phase. Outcomes and snapshots are stored by index so
// the order follows files.
func (r *Runner) parse(
	ctx context.Context,
	files []string,
	opts Options,
	ignored *Matcher,
	jobs int,
) ([]FileOutcome, []*solast.File, error) {
	outcomes := make([]FileOutcome, len(files))
	snapshots := make([]*solast.File, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return fmt.Errorf("parse cancelled: %w", err)
			}
			outcomes[idx], snapshots[idx] = r.parseOne(groupCtx, path, opts, ignored)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("parse cancelled: %w", err)
	}
	return outcomes, snapshots, nil
}

// parseOne brings the project set up to date for path. Files that failed,
// are skipped or excluded are dropped from the set.
func (r *Runner) parseOne(ctx context.Context, path string, opts Options, ignored *Matcher) (FileOutcome, *solast.File) {
	if ignored.Match(path) {
		r.Linter.RemoveFile(path)
		r.forget(path)
		return FileOutcome{
			Path:     path,
			Excluded: true,
			Result:   &lint.FileResult{File: solast.NewFile(path, "", nil)},
		}, nil
	}

	if outcome, file, ok := r.reuse(ctx, path); ok {
		return outcome, file
	}

	outcome := FileOutcome{Path: path}
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		r.Linter.RemoveFile(path)
		r.forget(path)
		outcome.Error = err
		return outcome, nil
	}

	var file *solast.File
	switch {
	case !opts.SkipDetection && !langdetect.IsSolidity(path, content):
		r.Linter.RemoveFile(path)
		outcome.Skipped = true
	default:
		file, err = r.Linter.ParseFile(ctx, path, content)
		if err != nil {
			r.Linter.RemoveFile(path)
			outcome.Error = err
		}
	}

	r.remember(path, info, outcome)
	return outcome, file
}

// reuse returns the cached outcome of path when the file has not changed
// since it was read.
func (r *Runner) reuse(ctx context.Context, path string) (FileOutcome, *solast.File, bool) {
	r.mu.Lock()
	cached, ok := r.parsed[path]
	r.mu.Unlock()
	if !ok {
		return FileOutcome{}, nil, false
	}

	changed, err := fsutil.Changed(ctx, cached.info)
	if err != nil || changed {
		return FileOutcome{}, nil, false
	}

	outcome := cached.outcome
	if outcome.Error != nil || outcome.Skipped {
		return outcome, nil, true
	}
	file, ok := r.Linter.File(path)
	if !ok {
		return FileOutcome{}, nil, false
	}
	return outcome, file, true
}

func (r *Runner) remember(path string, info *fsutil.FileInfo, outcome FileOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsed[path] = parsedFile{info: info, outcome: outcome}
}

func (r *Runner) forget(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.parsed, path)
}

// forgetMissing drops files that are no longer discovered from the project
// set.
func (r *Runner) forgetMissing(files []string) {
	current := make(map[string]struct{}, len(files))
	for _, path := range files {
		current[path] = struct{}{}
	}
	for _, file := range r.Linter.Files() {
		if _, ok := current[file.Path]; !ok {
			r.Linter.RemoveFile(file.Path)
			r.forget(file.Path)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for path := range r.parsed {
		if _, ok := current[path]; !ok {
			delete(r.parsed, path)
		}
	}
}

// lint runs the lint phase over the parsed snapshots, each against the full
// project set.
func (r *Runner) lint(ctx context.Context, outcomes []FileOutcome, snapshots []*solast.File, jobs int) error {
	files := r.Linter.Files()
	engine := r.Linter.Engine()

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, file := range snapshots {
		if file == nil {
			continue
		}
		group.Go(func() error {
			result, err := engine.LintFile(groupCtx, file, files)
			if err != nil {
				return fmt.Errorf("lint %s: %w", file.Path, err)
			}
			outcomes[idx].Result = result
			for id, ruleErr := range result.RuleErrors {
				logging.FromContext(groupCtx).Warn("rule failed",
					logging.FieldRule, id,
					logging.FieldPath, file.Path,
					logging.FieldError, ruleErr)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	return nil
}

// effectiveJobs bounds the worker count by the number of files.
func effectiveJobs(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if files > 0 && jobs > files {
		jobs = files
	}
	return max(jobs, 1)
}
