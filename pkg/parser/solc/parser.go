// Package solc provides a Parser implementation that runs the solc compiler
// as a subprocess and decodes the AST it prints.
package solc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/yaklabco/solidhunter/internal/logging"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

// Defaults used when no option overrides them.
const (
	DefaultExecutable = "solc"
	DefaultTimeout    = 30 * time.Second
)

// waitDelay bounds how long a killed solc may keep its output pipes open.
const waitDelay = 2 * time.Second

// stdinSource is the source unit name solc gives to input read from stdin.
const stdinSource = "<stdin>"

// ErrTimeout is returned when solc does not finish within the configured
// timeout.
var ErrTimeout = errors.New("solc timed out")

// Parser implements lint.Parser using the solc executable. Every Parse call
// starts its own process, so a Parser is safe for concurrent use.
type Parser struct {
	executable string
	timeout    time.Duration
}

// Option configures a Parser.
type Option func(*Parser)

// WithExecutable sets the solc binary to run. An empty value keeps the
// default.
func WithExecutable(path string) Option {
	return func(p *Parser) {
		if path != "" {
			p.executable = path
		}
	}
}

// WithTimeout bounds each solc invocation. A non-positive value keeps the
// default.
func WithTimeout(d time.Duration) Option {
	return func(p *Parser) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// New creates a solc parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		executable: DefaultExecutable,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Executable returns the configured solc binary.
func (p *Parser) Executable() string {
	return p.executable
}

// Timeout returns the per-invocation timeout.
func (p *Parser) Timeout() time.Duration {
	return p.timeout
}

// Parse feeds content to solc on stdin and decodes the AST it prints.
// Imports are not resolved: solc stops after parsing.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*solast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	stdout, err := p.run(ctx, content, "--combined-json", "ast", "--stop-after", "parsing", "-")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	raw, err := sourceAST(stdout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	root, err := solast.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return solast.NewFile(path, string(content), root), nil
}

// Version returns the first line of `solc --version` output that names a
// version.
func (p *Parser) Version(ctx context.Context) (string, error) {
	stdout, err := p.run(ctx, nil, "--version")
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(stdout), "\n") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "Version:"); ok {
			return strings.TrimSpace(v), nil
		}
	}
	return strings.TrimSpace(string(stdout)), nil
}

// run executes solc with stdin and returns its stdout. A non-zero exit is
// classified from stderr.
func (p *Parser) run(ctx context.Context, stdin []byte, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.executable, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	logging.FromContext(ctx).Debug("solc finished",
		logging.FieldSolc, p.executable,
		logging.FieldDuration, time.Since(start),
		logging.FieldError, err)

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, fmt.Errorf("%w after %s", ErrTimeout, p.timeout)
	case ctx.Err() != nil:
		return nil, fmt.Errorf("solc cancelled: %w", ctx.Err())
	case err != nil:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, classify(stderr.String())
		}
		return nil, fmt.Errorf("running %s: %w", p.executable, err)
	}
	return stdout.Bytes(), nil
}

// Scanner failures solc reports under a ParserError heading.
var scannerMessage = regexp.MustCompile(
	`(?i)ScannerError|Invalid character|Invalid token|Unterminated|Octal numbers not allowed|` +
		`Invalid escape sequence|Identifier-start is not allowed`)

// classify wraps the first error line of solc's stderr with the matching
// sentinel.
func classify(stderr string) error {
	msg := firstError(stderr)
	if scannerMessage.MatchString(msg) {
		return fmt.Errorf("%w: %s", solast.ErrTokenize, msg)
	}
	return fmt.Errorf("%w: %s", solast.ErrParse, msg)
}

func firstError(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for _, line := range lines {
		if strings.Contains(line, "Error") {
			return strings.TrimSpace(line)
		}
	}
	if len(lines) > 0 && lines[0] != "" {
		return strings.TrimSpace(lines[0])
	}
	return "solc failed without a message"
}

// combinedOutput is the shape of `solc --combined-json ast`. Compiler
// releases disagree on the case of the tree's key.
type combinedOutput struct {
	Sources map[string]struct {
		AST      json.RawMessage `json:"AST"`
		ASTLower json.RawMessage `json:"ast"`
	} `json:"sources"`
}

// sourceAST extracts the AST of the stdin source unit.
func sourceAST(stdout []byte) ([]byte, error) {
	var out combinedOutput
	if err := json.Unmarshal(stdout, &out); err != nil {
		return nil, fmt.Errorf("%w: solc output: %w", solast.ErrDeserialization, err)
	}

	source, ok := out.Sources[stdinSource]
	if !ok {
		for _, s := range out.Sources {
			source = s
			ok = true
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: solc printed no source unit", solast.ErrParse)
	}

	raw := source.AST
	if len(raw) == 0 {
		raw = source.ASTLower
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("%w: solc printed no AST", solast.ErrParse)
	}
	return raw, nil
}
