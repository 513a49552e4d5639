package runner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/solidhunter/internal/logging"
)

// Matcher matches paths against gitignore-style glob patterns anchored at a
// base directory. Patterns use '/' separators; "*" stays within one path
// segment and "**" crosses segments. A pattern without a slash matches at
// any depth, a leading slash anchors it to the base, a trailing slash or a
// directory match covers everything below, and a leading "!" re-includes.
// The last matching pattern wins. Patterns that do not compile are skipped.
type Matcher struct {
	rules []ignoreRule
}

type ignoreRule struct {
	base   string
	source string
	negate bool
	globs  []glob.Glob
}

// NewMatcher compiles patterns relative to base.
func NewMatcher(base string, patterns ...string) *Matcher {
	m := &Matcher{}
	m.Add(base, patterns...)
	return m
}

// Add compiles more patterns relative to base.
func (m *Matcher) Add(base string, patterns ...string) {
	base = filepath.Clean(base)
	for _, pattern := range patterns {
		if rule, ok := compileRule(base, pattern); ok {
			m.rules = append(m.rules, rule)
		}
	}
}

// Len returns the number of usable patterns.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.rules)
}

// Patterns returns the usable patterns as written.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.rules))
	for i, rule := range m.rules {
		out[i] = rule.source
	}
	return out
}

// Match reports whether path, absolute or relative to the process working
// directory, is matched. Paths outside a pattern's base never match it.
func (m *Matcher) Match(path string) bool {
	if m.Len() == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	matched := false
	for _, rule := range m.rules {
		rel, err := filepath.Rel(rule.base, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if rule.match(filepath.ToSlash(rel)) {
			matched = !rule.negate
		}
	}
	return matched
}

func (r ignoreRule) match(rel string) bool {
	for _, g := range r.globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func compileRule(base, pattern string) (ignoreRule, bool) {
	source := strings.TrimSpace(pattern)
	if source == "" || strings.HasPrefix(source, "#") {
		return ignoreRule{}, false
	}

	rule := ignoreRule{base: base, source: source}
	body := filepath.ToSlash(source)
	if rest, ok := strings.CutPrefix(body, "!"); ok {
		rule.negate = true
		body = rest
	}
	for strings.HasPrefix(body, "./") {
		body = body[2:]
	}
	anchored := strings.HasPrefix(body, "/")
	body = strings.Trim(body, "/")
	if body == "" {
		return ignoreRule{}, false
	}
	if strings.Contains(body, "/") {
		anchored = true
	}

	variants := []string{body, body + "/**"}
	if !anchored {
		variants = append(variants, "**/"+body, "**/"+body+"/**")
	}
	for _, variant := range variants {
		g, err := glob.Compile(variant, '/')
		if err != nil {
			return ignoreRule{}, false
		}
		rule.globs = append(rule.globs, g)
	}
	return rule, true
}

// ParseIgnore returns the patterns of an ignore file: one per line, with
// blank lines and '#' comments dropped.
func ParseIgnore(data []byte) []string {
	var patterns []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// LoadIgnoreFiles finds every ignore file named by opts under the directory
// paths of opts and compiles its patterns relative to its own directory.
// Unreadable files are skipped.
func LoadIgnoreFiles(ctx context.Context, opts Options) (*Matcher, error) {
	m := &Matcher{}
	name := opts.effectiveIgnoreFile()
	if name == "-" {
		return m, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)

	for _, inputPath := range opts.effectivePaths() {
		root := resolvePath(workDir, inputPath)
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}

		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if walkErr != nil {
				if entry != nil && entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if entry.IsDir() {
				if path != root && skipDirName(entry.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if entry.Name() != name {
				return nil
			}

			data, err := os.ReadFile(path)
			if err != nil {
				logger.Debug("skipping unreadable ignore file", logging.FieldPath, path, logging.FieldError, err)
				return nil
			}
			m.Add(filepath.Dir(path), ParseIgnore(data)...)
			return nil
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			logger.Debug("ignore file search failed", logging.FieldPath, root, logging.FieldError, err)
		}
	}
	return m, nil
}
