package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover finds Solidity files matching opts under the given working
// directory. It returns a deterministically sorted list of absolute paths.
// Files named explicitly are kept even when hidden, but still go through
// the extension and glob filters.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	f := newFilter(workDir, opts)
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := resolvePath(workDir, inputPath)
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if f.matchFile(absPath) {
				add(absPath)
			}
			continue
		}

		visited := map[string]struct{}{}
		if err := f.walk(ctx, absPath, visited, add); err != nil {
			return nil, err
		}
	}

	slices.Sort(files)
	return files, nil
}

// filter holds the compiled discovery criteria.
type filter struct {
	extensions []string
	include    *Matcher
	exclude    *Matcher
	follow     bool
}

func newFilter(workDir string, opts Options) *filter {
	return &filter{
		extensions: opts.effectiveExtensions(),
		include:    NewMatcher(workDir, opts.IncludeGlobs...),
		exclude:    NewMatcher(workDir, opts.ExcludeGlobs...),
		follow:     opts.FollowSymlinks,
	}
}

func (f *filter) walk(ctx context.Context, root string, visited map[string]struct{}, add func(string)) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, ok := visited[real]; ok {
			return nil
		}
		visited[real] = struct{}{}
		if info, err := os.Lstat(root); err == nil && info.Mode()&fs.ModeSymlink != 0 {
			root = real
		}
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && (skipDirName(entry.Name()) || f.exclude.Match(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(realPath)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !f.follow || f.exclude.Match(path) {
					return nil
				}
				// WalkDir does not descend into a symlink root, so walk the target.
				return f.walk(ctx, realPath, visited, add)
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if f.matchFile(path) {
			add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (f *filter) matchFile(path string) bool {
	if !hasMatchingExtension(path, f.extensions) {
		return false
	}
	if f.exclude.Match(path) {
		return false
	}
	return f.include.Len() == 0 || f.include.Match(path)
}

// skipDirName reports directories never descended into: hidden ones and
// package manager installs.
func skipDirName(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return absPath, nil
}

func resolvePath(workDir, path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	return filepath.Clean(path)
}
