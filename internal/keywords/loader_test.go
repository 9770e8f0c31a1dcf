package keywords

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FlattensAndMerges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{
		"networking": {"connection refused": 0.3, "timeout": 0.2}
	}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(`{
		"memory": {"out of memory": 0.5}
	}`), 0o644))

	l := New(nil)
	errs := l.Load(dir)
	assert.Empty(t, errs)

	w := l.Weights()
	assert.Equal(t, 0.3, w["connection refused"])
	assert.Equal(t, 0.2, w["timeout"])
	assert.Equal(t, 0.5, w["out of memory"])
}

func TestLoad_FirstFileWinsOnConflict(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{
		"cat": {"dup": 0.1}
	}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(`{
		"cat": {"dup": 0.9}
	}`), 0o644))

	l := New(nil)
	l.Load(dir)
	assert.Equal(t, 0.1, l.Weights()["dup"])
}

func TestLoad_UnparseableFileSkipped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.json"), []byte(`{"c":{"k":0.4}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`not json`), 0o644))

	l := New(nil)
	errs := l.Load(dir)
	assert.Len(t, errs, 1)
	assert.Equal(t, 0.4, l.Weights()["k"])
}

func TestLoad_MissingDirectoryDegradesGracefully(t *testing.T) {
	l := New(nil)
	errs := l.Load(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Len(t, errs, 1)
	assert.Empty(t, l.Weights())
}
