package foundry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFile is the name of the Foundry project file.
const ConfigFile = "foundry.toml"

// Layout defaults used when foundry.toml leaves them out.
const (
	DefaultSrc = "src"
	DefaultOut = "out"
)

// ErrNoProject is returned when no foundry.toml can be found.
var ErrNoProject = errors.New("no foundry.toml found")

// Config is the part of foundry.toml the linter needs.
type Config struct {
	// Root is the directory holding foundry.toml.
	Root string

	// Src is the source directory, relative to Root.
	Src string

	// Out is the artifact directory, relative to Root.
	Out string
}

// SrcDir returns the absolute source directory.
func (c Config) SrcDir() string {
	return filepath.Join(c.Root, c.Src)
}

// OutDir returns the absolute artifact directory.
func (c Config) OutDir() string {
	return filepath.Join(c.Root, c.Out)
}

type foundryFile struct {
	Profile map[string]struct {
		Src string `toml:"src"`
		Out string `toml:"out"`
	} `toml:"profile"`
}

// LoadConfig reads root/foundry.toml. The "default" profile is used.
func LoadConfig(root string) (Config, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Config{}, fmt.Errorf("resolving %s: %w", root, err)
	}
	path := filepath.Join(abs, ConfigFile)

	var file foundryFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%s: %w", abs, ErrNoProject)
		}
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	cfg := Config{Root: abs, Src: DefaultSrc, Out: DefaultOut}
	if profile, ok := file.Profile["default"]; ok {
		if profile.Src != "" {
			cfg.Src = filepath.FromSlash(profile.Src)
		}
		if profile.Out != "" {
			cfg.Out = filepath.FromSlash(profile.Out)
		}
	}
	return cfg, nil
}

// FindRoot walks up from start to the first directory holding foundry.toml.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFile)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s: %w", start, ErrNoProject)
		}
		dir = parent
	}
}
