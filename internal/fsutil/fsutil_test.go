package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExistsAndIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, Exists(dir))
	assert.True(t, Exists(file))
	assert.False(t, Exists(filepath.Join(dir, "missing")))

	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(file))
	assert.False(t, IsDir(filepath.Join(dir, "missing")))
}

func TestCreateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, CreateDir(dir))
	assert.True(t, IsDir(dir))

	// Idempotent.
	require.NoError(t, CreateDir(dir))
}
