// Package project locates and decodes the mica.toml manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the project root is identified by.
const ManifestName = "mica.toml"

// Manifest couples the decoded configuration with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest document.
type Config struct {
	Package PackageConfig `toml:"package"`
	Check   CheckConfig   `toml:"check"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type CheckConfig struct {
	// SourceDir is the directory with the package's sources, relative to
	// the project root.
	SourceDir string `toml:"source-dir"`
	// MaxDiagnostics caps reported diagnostics per run; 0 keeps all.
	MaxDiagnostics int `toml:"max-diagnostics"`
	// Cache toggles the on-disk diagnostics cache.
	Cache bool `toml:"cache"`
	// CacheDir overrides where the cache lives, relative to the root.
	CacheDir string `toml:"cache-dir"`
	// Jobs caps parallel workers; 0 means one per CPU.
	Jobs int `toml:"jobs"`
}

// DefaultConfig returns the configuration an empty manifest implies.
func DefaultConfig() Config {
	return Config{
		Check: CheckConfig{
			SourceDir: "src",
			Cache:     true,
			CacheDir:  ".mica-cache",
		},
	}
}

// Find walks up from startDir to locate mica.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes the manifest governing startDir.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := decodeFile(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func decodeFile(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(path, cfg, meta); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DecodeConfig parses manifest text. Used by tests and tools that hold
// the document in memory.
func DecodeConfig(path, data string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(path, cfg, meta); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(path string, cfg Config, meta toml.MetaData) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("package") {
		return fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return fmt.Errorf("%s: missing [package].name", path)
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("%s: [check].max-diagnostics must not be negative", path)
	}
	if cfg.Check.Jobs < 0 {
		return fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	return nil
}

// SourcePath resolves the configured source directory against the root.
func (m *Manifest) SourcePath() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Check.SourceDir))
}

// CachePath resolves the configured cache directory against the root.
func (m *Manifest) CachePath() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Check.CacheDir))
}
