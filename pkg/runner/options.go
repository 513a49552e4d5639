// Package runner provides multi-file linting orchestration: discovery of
// Solidity sources, ignore files, a parallel parse phase that builds the
// project file set, and a parallel lint phase over it.
package runner

import "time"

// DefaultIgnoreFile is the name of per-directory ignore files.
const DefaultIgnoreFile = ".solidhunterignore"

// DefaultDebounce is how long watch mode waits for file events to settle.
const DefaultDebounce = 200 * time.Millisecond

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Solidity. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to
	// WorkingDir. Empty means every file with a matching extension.
	IncludeGlobs []string

	// ExcludeGlobs drop matching files and directories from discovery.
	// They merge the config's ignore list and --ignore flags.
	ExcludeGlobs []string

	// IgnoreFile names the ignore files searched for under each directory
	// path. Files they match are reported with no diagnostics. Defaults to
	// DefaultIgnoreFile; "-" disables ignore files.
	IgnoreFile string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// SkipDetection lints every file with a matching extension without
	// checking its content is Solidity.
	SkipDetection bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Debounce is the watch-mode settle delay. Defaults to DefaultDebounce.
	Debounce time.Duration
}

// DefaultExtensions returns the default set of Solidity file extensions.
func DefaultExtensions() []string {
	return []string{".sol"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveIgnoreFile() string {
	if o.IgnoreFile == "" {
		return DefaultIgnoreFile
	}
	return o.IgnoreFile
}

func (o Options) effectiveDebounce() time.Duration {
	if o.Debounce <= 0 {
		return DefaultDebounce
	}
	return o.Debounce
}
