package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/solidhunter/internal/logging"
)

// Watch runs opts once, then watches the directories it covers and runs
// again whenever a source file or an ignore file changes. Events are
// debounced by opts.Debounce. Unchanged files keep their snapshots, so a
// rerun only reparses what changed before relinting the whole set. Each
// result is passed to onResult. Watch returns nil when ctx is done.
func (r *Runner) Watch(ctx context.Context, opts Options, onResult func(*Result)) error {
	result, err := r.Run(ctx, opts)
	if err != nil {
		return err
	}
	onResult(result)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return err
	}
	exclude := NewMatcher(workDir, opts.ExcludeGlobs...)
	logger := logging.FromContext(ctx)

	for _, inputPath := range opts.effectivePaths() {
		path := resolvePath(workDir, inputPath)
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", inputPath, err)
		}
		if !info.IsDir() {
			path = filepath.Dir(path)
		}
		if err := watchTree(watcher, path, exclude); err != nil {
			return err
		}
	}
	logger.Info("watching for changes", logging.FieldPaths, watcher.WatchList())

	debounce := opts.effectiveDebounce()
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name, exclude); err != nil {
						logger.Warn("cannot watch directory", logging.FieldPath, event.Name, logging.FieldError, err)
					}
					pending[event.Name] = struct{}{}
					timer.Reset(debounce)
					continue
				}
			}
			if !relevantEvent(event, opts) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-timer.C:
			logger.Debug("files changed", logging.FieldFiles, len(pending))
			clear(pending)

			result, err := r.Run(ctx, opts)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil
				}
				logger.Error("run failed", logging.FieldError, err)
				continue
			}
			onResult(result)
		}
	}
}

// relevant reports events that can change a run's result: writes to or
// removal of source files and ignore files.
func relevantEvent(event fsnotify.Event, opts Options) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if filepath.Base(event.Name) == opts.effectiveIgnoreFile() {
		return true
	}
	return hasMatchingExtension(event.Name, opts.effectiveExtensions())
}

// watchTree adds root and its subdirectories to watcher, skipping the
// directories discovery skips.
func watchTree(watcher *fsnotify.Watcher, root string, exclude *Matcher) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable directories are not watched
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && (skipDirName(entry.Name()) || exclude.Match(path)) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
