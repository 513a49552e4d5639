package lint

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/solidhunter/pkg/solast"
)

// Linter keeps the current file set of a project and lints files against it.
// Adding a path that is already known replaces its snapshot. A Linter is safe
// for concurrent use.
type Linter struct {
	parser Parser
	engine *Engine

	// Excluded reports paths that lint to an empty result. May be nil.
	Excluded func(path string) bool

	mu    sync.RWMutex
	files map[string]*solast.File
}

// NewLinter creates a Linter that parses with parser and runs engine.
func NewLinter(parser Parser, engine *Engine) *Linter {
	return &Linter{
		parser: parser,
		engine: engine,
		files:  make(map[string]*solast.File),
	}
}

// Engine returns the engine used for linting.
func (l *Linter) Engine() *Engine {
	return l.engine
}

// ParseFile parses content and records it as the current snapshot of path.
func (l *Linter) ParseFile(ctx context.Context, path string, content []byte) (*solast.File, error) {
	file, err := l.parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	l.AddFile(file)
	return file, nil
}

// AddFile records an already parsed file.
func (l *Linter) AddFile(file *solast.File) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.files[file.Path] = file
}

// RemoveFile forgets path.
func (l *Linter) RemoveFile(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.files, path)
}

// File returns the snapshot of path.
func (l *Linter) File(path string) (*solast.File, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	file, ok := l.files[path]
	return file, ok
}

// Files returns every known file sorted by path.
func (l *Linter) Files() []*solast.File {
	l.mu.RLock()
	defer l.mu.RUnlock()

	files := make([]*solast.File, 0, len(l.files))
	for _, file := range l.files {
		files = append(files, file)
	}
	slices.SortFunc(files, func(a, b *solast.File) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files
}

// LintContent parses content as path, records it, and lints it.
func (l *Linter) LintContent(ctx context.Context, path string, content []byte) (*FileResult, error) {
	if l.excluded(path) {
		return &FileResult{File: solast.NewFile(path, string(content), nil)}, nil
	}

	file, err := l.ParseFile(ctx, path, content)
	if err != nil {
		return nil, err
	}
	return l.engine.LintFile(ctx, file, l.Files())
}

// LintFile reads path from disk and lints it.
func (l *Linter) LintFile(ctx context.Context, path string) (*FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return l.LintContent(ctx, path, content)
}

// LintAll lints every known file against the full set, in path order.
func (l *Linter) LintAll(ctx context.Context) ([]*FileResult, error) {
	files := l.Files()
	results := make([]*FileResult, 0, len(files))

	for _, file := range files {
		if l.excluded(file.Path) {
			results = append(results, &FileResult{File: file})
			continue
		}
		result, err := l.engine.LintFile(ctx, file, files)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (l *Linter) excluded(path string) bool {
	return l.Excluded != nil && l.Excluded(path)
}
