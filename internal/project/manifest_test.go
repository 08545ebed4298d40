package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAppliesDefaults(t *testing.T) {
	cfg, err := DecodeConfig("mica.toml", `
[package]
name = "demo"
`)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Package.Name)
	assert.Equal(t, "src", cfg.Check.SourceDir)
	assert.True(t, cfg.Check.Cache)
	assert.Equal(t, ".mica-cache", cfg.Check.CacheDir)
	assert.Zero(t, cfg.Check.MaxDiagnostics)
	assert.Zero(t, cfg.Check.Jobs)
}

func TestDecodeOverrides(t *testing.T) {
	cfg, err := DecodeConfig("mica.toml", `
[package]
name = "demo"

[check]
source-dir = "code"
max-diagnostics = 50
cache = false
jobs = 4
`)
	require.NoError(t, err)
	assert.Equal(t, "code", cfg.Check.SourceDir)
	assert.Equal(t, 50, cfg.Check.MaxDiagnostics)
	assert.False(t, cfg.Check.Cache)
	assert.Equal(t, 4, cfg.Check.Jobs)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := DecodeConfig("mica.toml", `
[package]
name = "demo"
flavor = "vanilla"
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
	assert.Contains(t, err.Error(), "package.flavor")
}

func TestDecodeRequiresPackageName(t *testing.T) {
	_, err := DecodeConfig("mica.toml", `
[package]
name = "  "
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[package].name")

	_, err = DecodeConfig("mica.toml", `[check]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing [package]")
}

func TestDecodeRejectsNegativeLimits(t *testing.T) {
	_, err := DecodeConfig("mica.toml", `
[package]
name = "demo"

[check]
max-diagnostics = -1
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max-diagnostics")
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestName), []byte(`
[package]
name = "demo"
`), 0o644))

	m, ok, err := Load(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, root, m.Root)
	assert.Equal(t, filepath.Join(root, "src"), m.SourcePath())
	assert.Equal(t, filepath.Join(root, ".mica-cache"), m.CachePath())
}

func TestLoadWithoutManifest(t *testing.T) {
	_, ok, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
}
