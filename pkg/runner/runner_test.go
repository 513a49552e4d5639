package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/runner"
)

func projectTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/A.sol":              validSource,
		"src/B.sol":              validSource,
		"src/Broken.sol":         brokenSource,
		"src/Board.sol":          gerberSource,
		"src/gen/Generated.sol":  validSource,
		"src/.solidhunterignore": "gen/\n",
	})
	return root
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	root := projectTree(t)
	parser := newFakeParser()
	r := runner.New(newLinter(parser, config.SeverityWarning))

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: root, Jobs: 3})
	require.NoError(t, err)

	names := make([]string, 0, len(result.Files))
	for _, outcome := range result.Files {
		names = append(names, outcome.Path)
	}
	assert.Equal(t, []string{"src/A.sol", "src/B.sol", "src/Board.sol", "src/Broken.sol", "src/gen/Generated.sol"},
		rel(t, root, names), "outcomes follow path order")

	a, ok := result.Outcome(filepath.Join(root, "src", "A.sol"))
	require.True(t, ok)
	require.NotNil(t, a.Result)
	assert.Len(t, a.Result.Diagnostics, 1, "same-line findings are aggregated")
	assert.Equal(t, 2, a.Result.IssueCount(), "A sees itself and B")

	board, _ := result.Outcome(filepath.Join(root, "src", "Board.sol"))
	assert.True(t, board.Skipped)
	assert.Nil(t, board.Result)

	broken, _ := result.Outcome(filepath.Join(root, "src", "Broken.sol"))
	require.ErrorIs(t, broken.Error, errFakeParse)

	generated, _ := result.Outcome(filepath.Join(root, "src", "gen", "Generated.sol"))
	assert.True(t, generated.Excluded)
	require.NotNil(t, generated.Result)
	assert.Empty(t, generated.Result.Diagnostics)
	assert.Zero(t, parser.Calls("Generated.sol"), "excluded files are not parsed")

	assert.Equal(t, runner.Stats{
		FilesDiscovered:  5,
		FilesParsed:      2,
		FilesSkipped:     1,
		FilesExcluded:    1,
		ParseFailures:    1,
		FilesWithIssues:  2,
		DiagnosticsTotal: 4,
		DiagnosticsBySeverity: map[config.Severity]int{
			config.SeverityWarning: 4,
		},
	}, result.Stats)

	assert.True(t, result.HasIssues())
	assert.True(t, result.HasFailures(false), "parse failures fail the run")
	assert.Len(t, r.Linter.Files(), 2)
}

func TestRunner_Run_ReusesUnchangedFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"A.sol": validSource,
		"B.sol": validSource,
		"C.sol": validSource,
	})
	parser := newFakeParser()
	r := runner.New(newLinter(parser, config.SeverityInfo))
	opts := runner.Options{WorkingDir: root}

	_, err := r.Run(context.Background(), opts)
	require.NoError(t, err)

	writeTree(t, root, map[string]string{"B.sol": validSource + "// changed\n"})
	require.NoError(t, os.Remove(filepath.Join(root, "C.sol")))

	result, err := r.Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, parser.Calls("A.sol"))
	assert.Equal(t, 2, parser.Calls("B.sol"))
	assert.Len(t, r.Linter.Files(), 2, "deleted files leave the project set")

	a, _ := result.Outcome(filepath.Join(root, "A.sol"))
	require.NotNil(t, a.Result)
	assert.Equal(t, 2, a.Result.IssueCount(), "unchanged files are relinted against the new set")
	assert.False(t, result.HasFailures(true), "info findings never fail")
}

func TestRunner_Run_FileBecomesInvalid(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"A.sol": validSource, "B.sol": validSource})
	r := runner.New(newLinter(newFakeParser(), config.SeverityWarning))
	opts := runner.Options{WorkingDir: root}

	_, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, r.Linter.Files(), 2)

	writeTree(t, root, map[string]string{"B.sol": brokenSource})
	result, err := r.Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.ParseFailures)
	assert.Len(t, r.Linter.Files(), 1, "a file that no longer parses is not a sibling")
}

func TestRunner_Run_SkipDetection(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"Board.sol": gerberSource})
	r := runner.New(newLinter(newFakeParser(), config.SeverityWarning))

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: root, SkipDetection: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesParsed)
	assert.Zero(t, result.Stats.FilesSkipped)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	r := runner.New(newLinter(newFakeParser(), config.SeverityWarning))
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasFailures(true))
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := runner.New(newLinter(newFakeParser(), config.SeverityWarning))
	_, err := r.Run(ctx, runner.Options{WorkingDir: projectTree(t)})
	require.ErrorIs(t, err, context.Canceled)
}

func TestResult_HasFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stats  runner.Stats
		strict bool
		want   bool
	}{
		{name: "clean", want: false},
		{
			name:  "errors",
			stats: runner.Stats{DiagnosticsBySeverity: map[config.Severity]int{config.SeverityError: 1}},
			want:  true,
		},
		{
			name:  "warnings",
			stats: runner.Stats{DiagnosticsBySeverity: map[config.Severity]int{config.SeverityWarning: 3}},
			want:  false,
		},
		{
			name:   "warnings strict",
			stats:  runner.Stats{DiagnosticsBySeverity: map[config.Severity]int{config.SeverityWarning: 3}},
			strict: true,
			want:   true,
		},
		{
			name:   "hints strict",
			stats:  runner.Stats{DiagnosticsBySeverity: map[config.Severity]int{config.SeverityHint: 3}},
			strict: true,
			want:   false,
		},
		{name: "parse failure", stats: runner.Stats{ParseFailures: 1}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := &runner.Result{Stats: tt.stats}
			assert.Equal(t, tt.want, result.HasFailures(tt.strict))
		})
	}

	var nilResult *runner.Result
	assert.False(t, nilResult.HasFailures(true))
	assert.False(t, nilResult.HasIssues())
}

func TestRunner_Watch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"src/A.sol": validSource})
	r := runner.New(newLinter(newFakeParser(), config.SeverityWarning))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan *runner.Result, 16)
	done := make(chan error, 1)
	go func() {
		done <- r.Watch(ctx, runner.Options{WorkingDir: root, Debounce: 20 * time.Millisecond},
			func(result *runner.Result) { results <- result })
	}()

	waitFor := func(parsed int) *runner.Result {
		t.Helper()
		timeout := time.After(5 * time.Second)
		for {
			select {
			case result := <-results:
				if result.Stats.FilesParsed == parsed {
					return result
				}
			case err := <-done:
				t.Fatalf("watch stopped early: %v", err)
			case <-timeout:
				t.Fatalf("no result with %d parsed files", parsed)
			}
		}
	}

	waitFor(1)

	// A new directory is picked up and its files are linted.
	writeTree(t, root, map[string]string{"src/sub/B.sol": validSource})
	result := waitFor(2)
	a, ok := result.Outcome(filepath.Join(root, "src", "A.sol"))
	require.True(t, ok)
	assert.Equal(t, 2, a.Result.IssueCount())

	require.NoError(t, os.Remove(filepath.Join(root, "src", "A.sol")))
	waitFor(1)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

var _ lint.Parser = (*fakeParser)(nil)
