package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCUE(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeCUE(t, dir, "a.cue", `package programs

program: pow: {
	steps: [2, 10, "pow"]
	expect: 1024
}
`)
	writeCUE(t, dir, "b.cue", `package programs

program: inv: steps: [0, "inv"]
`)

	res, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, res.FileCount)
	require.Len(t, res.Programs, 2)
	assert.Equal(t, "inv", res.Programs[0].Name)
	assert.Equal(t, "pow", res.Programs[1].Name)
}

func TestLoadDir_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	writeCUE(t, dir, "p.cue", `package programs

program: ok: steps: [1]
program: broken: steps: [1, 2]
`)

	res, err := LoadDir(dir)
	require.Error(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Programs, 1)
	assert.Equal(t, "ok", res.Programs[0].Name)
}

func TestLoadDir_Errors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
		assertCode(t, err, ErrCodeNotFound)
	})

	t.Run("file", func(t *testing.T) {
		dir := t.TempDir()
		writeCUE(t, dir, "x.cue", "package programs\n")
		_, err := LoadDir(filepath.Join(dir, "x.cue"))
		assertCode(t, err, ErrCodeNotFound)
	})

	t.Run("no files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))
		_, err := LoadDir(dir)
		assertCode(t, err, ErrCodeNoFiles)
	})

	t.Run("conflict", func(t *testing.T) {
		dir := t.TempDir()
		writeCUE(t, dir, "c.cue", "package programs\n\nx: 1\nx: 2\n")
		_, err := LoadDir(dir)
		require.Error(t, err)
		var ce *CompileError
		require.ErrorAs(t, err, &ce)
		assert.Contains(t, []string{ErrCodeLoadFailed, ErrCodeBuildFailed}, ce.Code)
	})
}

func TestFindCUEFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeCUE(t, dir, "root.cue", "package programs")
	writeCUE(t, sub, "inner.cue", "package programs")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notcue.txt"), nil, 0644))

	files, err := FindCUEFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, code, ce.Code)
}
