// Package foundry provides a Parser implementation that reads ASTs from the
// build artifacts of a Foundry project instead of invoking a compiler.
//
// Artifacts are looked up under the project's out directory: per-contract
// files (out/<Source>.sol/<Contract>.json) carry an "ast" field, and
// build-info files (out/build-info/*.json) carry one per source under
// output.sources. Sources are matched on the AST's absolutePath, which
// Foundry writes relative to the project root.
package foundry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/yaklabco/solidhunter/internal/logging"
	"github.com/yaklabco/solidhunter/pkg/solast"
)

// ErrNoArtifact is returned for a source that has no build artifact.
var ErrNoArtifact = errors.New("no build artifact for source")

// Parser implements lint.Parser over Foundry build output. The artifact
// index is built by the first successful scan and kept until Reload; a
// failed scan, such as a missing out directory, is retried on the next call.
type Parser struct {
	cfg Config

	mu    sync.Mutex
	index map[string]json.RawMessage
}

// New creates a parser for the project rooted at root.
func New(root string) (*Parser, error) {
	cfg, err := LoadConfig(root)
	if err != nil {
		return nil, err
	}
	return &Parser{cfg: cfg}, nil
}

// Config returns the project layout.
func (p *Parser) Config() Config {
	return p.cfg
}

// Reload drops the artifact index so the next Parse rereads the out
// directory, as needed after a rebuild.
func (p *Parser) Reload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index = nil
}

// Parse returns the file with the AST Foundry recorded for path. content
// must be the source the artifacts were built from; it is not compiled.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*solast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	index, err := p.artifacts(ctx)
	if err != nil {
		return nil, err
	}

	raw, ok := index[p.key(path)]
	if !ok {
		return nil, fmt.Errorf("%s: %w (run forge build)", path, ErrNoArtifact)
	}
	root, err := solast.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return solast.NewFile(path, string(content), root), nil
}

// Sources returns the project-relative paths that have an artifact, sorted.
func (p *Parser) Sources(ctx context.Context) ([]string, error) {
	index, err := p.artifacts(ctx)
	if err != nil {
		return nil, err
	}
	out := lo.Keys(index)
	slices.Sort(out)
	return out, nil
}

// key maps a path to the form Foundry uses in absolutePath.
func (p *Parser) key(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(p.cfg.Root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

func (p *Parser) artifacts(ctx context.Context) (map[string]json.RawMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.index != nil {
		return p.index, nil
	}

	start := time.Now()
	index, err := p.scan(ctx)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug("indexed foundry artifacts",
		logging.FieldOutput, p.cfg.OutDir(),
		logging.FieldFiles, len(index),
		logging.FieldDuration, time.Since(start))

	p.index = index
	return index, nil
}

// scan walks the out directory. Per-contract artifacts win over build-info
// entries for the same source.
func (p *Parser) scan(ctx context.Context) (map[string]json.RawMessage, error) {
	index := make(map[string]json.RawMessage)
	buildInfo := make(map[string]json.RawMessage)
	outDir := p.cfg.OutDir()

	err := filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if filepath.Base(filepath.Dir(path)) == "build-info" {
			p.addBuildInfo(buildInfo, data)
			return nil
		}
		p.addArtifact(index, data)
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w (run forge build)", outDir, ErrNoArtifact)
		}
		return nil, fmt.Errorf("reading artifacts: %w", err)
	}

	for key, raw := range buildInfo {
		if _, ok := index[key]; !ok {
			index[key] = raw
		}
	}
	return index, nil
}

type artifactFile struct {
	AST json.RawMessage `json:"ast"`
}

type buildInfoFile struct {
	Output struct {
		Sources map[string]artifactFile `json:"sources"`
	} `json:"output"`
}

type astHeader struct {
	AbsolutePath string `json:"absolutePath"`
}

// addArtifact indexes a per-contract artifact. Files without an AST, such
// as cache files, are skipped.
func (p *Parser) addArtifact(index map[string]json.RawMessage, data []byte) {
	var file artifactFile
	if json.Unmarshal(data, &file) != nil || len(file.AST) == 0 {
		return
	}
	var header astHeader
	if json.Unmarshal(file.AST, &header) != nil || header.AbsolutePath == "" {
		return
	}
	key := p.normalize(header.AbsolutePath)
	if _, ok := index[key]; !ok {
		index[key] = file.AST
	}
}

func (p *Parser) addBuildInfo(index map[string]json.RawMessage, data []byte) {
	var file buildInfoFile
	if json.Unmarshal(data, &file) != nil {
		return
	}
	for name, source := range file.Output.Sources {
		if len(source.AST) == 0 {
			continue
		}
		index[p.normalize(name)] = source.AST
	}
}

// normalize turns an absolutePath into an index key.
func (p *Parser) normalize(path string) string {
	if filepath.IsAbs(path) {
		return p.key(path)
	}
	return filepath.ToSlash(filepath.Clean(path))
}
