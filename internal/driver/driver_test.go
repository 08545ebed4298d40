package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mica/internal/diag"
)

func writeSources(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func bagCodes(b *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, b.Len())
	for _, d := range b.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestCheckDirWalksInSortedOrder(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"b.mc": `fn ok() {}`,
		"a.mc": `type Broken = Missing;`,
	})

	res, err := CheckDir(context.Background(), dir, Options{})
	require.NoError(t, err)
	require.Len(t, res.Files, 2)

	assert.Equal(t, "a.mc", filepath.Base(res.Files[0].Path))
	assert.Equal(t, "b.mc", filepath.Base(res.Files[1].Path))

	assert.True(t, res.Files[0].Bag.HasErrors())
	assert.Zero(t, res.Files[1].Bag.Len())
	assert.True(t, res.HasErrors())
}

func TestCheckDirFilesAreIndependentModules(t *testing.T) {
	// A name defined in one file must not resolve from another.
	dir := writeSources(t, map[string]string{
		"defs.mc": `struct Shared { v: int }`,
		"uses.mc": `fn f(p: Shared) {}`,
	})

	res, err := CheckDir(context.Background(), dir, Options{})
	require.NoError(t, err)
	require.Len(t, res.Files, 2)

	assert.False(t, res.Files[0].Bag.HasErrors(), "defs.mc should be clean")
	codes := bagCodes(res.Files[1].Bag)
	require.Len(t, codes, 1)
	assert.Equal(t, diag.SemaUnresolvedType, codes[0])
}

func TestCheckDirDeterministicAcrossJobs(t *testing.T) {
	files := map[string]string{
		"one.mc":   "fn dup() {}\nfn dup() {}\n",
		"two.mc":   `fn f() { ghost; }`,
		"three.mc": `type A = B;` + "\n" + `type B = A;`,
	}

	serial, err := CheckDir(context.Background(), writeSources(t, files), Options{Jobs: 1})
	require.NoError(t, err)
	parallel, err := CheckDir(context.Background(), writeSources(t, files), Options{Jobs: 4})
	require.NoError(t, err)

	require.Equal(t, len(serial.Files), len(parallel.Files))
	for i := range serial.Files {
		assert.Equal(t, bagCodes(serial.Files[i].Bag), bagCodes(parallel.Files[i].Bag),
			"file %s", serial.Files[i].Path)
	}
}

func TestCheckDirMaxDiagnostics(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"many.mc": `
type A = M1;
type B = M2;
type C = M3;
`,
	})

	res, err := CheckDir(context.Background(), dir, Options{MaxDiagnostics: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Files[0].Bag.Len())
}

func TestCheckDirEmptyDirectory(t *testing.T) {
	res, err := CheckDir(context.Background(), t.TempDir(), Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.False(t, res.HasErrors())
}

func TestCheckDirCacheReplay(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"dup.mc": "fn dup() {}\nfn dup() {}\n",
	})
	cache, err := OpenDiskCache(t.TempDir())
	require.NoError(t, err)

	first, err := CheckDir(context.Background(), dir, Options{Cache: cache})
	require.NoError(t, err)
	require.Len(t, first.Files, 1)
	assert.False(t, first.Files[0].FromCache)

	second, err := CheckDir(context.Background(), dir, Options{Cache: cache})
	require.NoError(t, err)
	require.Len(t, second.Files, 1)
	assert.True(t, second.Files[0].FromCache)
	assert.Equal(t, bagCodes(first.Files[0].Bag), bagCodes(second.Files[0].Bag))

	// Replayed diagnostics carry the new run's FileID.
	for _, d := range second.Files[0].Bag.Items() {
		assert.Equal(t, second.Files[0].FileID, d.Primary.File)
	}
}

func TestCheckDirCacheInvalidatedByEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.mc")
	require.NoError(t, os.WriteFile(path, []byte(`fn f() { ghost; }`), 0o644))

	cache, err := OpenDiskCache(t.TempDir())
	require.NoError(t, err)

	first, err := CheckDir(context.Background(), dir, Options{Cache: cache})
	require.NoError(t, err)
	assert.True(t, first.HasErrors())

	require.NoError(t, os.WriteFile(path, []byte(`fn f() {}`), 0o644))
	second, err := CheckDir(context.Background(), dir, Options{Cache: cache})
	require.NoError(t, err)
	assert.False(t, second.Files[0].FromCache)
	assert.False(t, second.HasErrors())
}
