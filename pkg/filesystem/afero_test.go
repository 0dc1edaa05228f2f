package filesystem

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/work", 0755))

	require.NoError(t, WriteFileAtomic(fsys, "/work/out.txt", []byte("first"), 0644))
	require.NoError(t, WriteFileAtomic(fsys, "/work/out.txt", []byte("second"), 0644))

	data, err := afero.ReadFile(fsys, "/work/out.txt")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := afero.ReadDir(fsys, "/work")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	fsys := afero.NewReadOnlyFs(NewMemory())
	err := WriteFileAtomic(fsys, "/missing/out.txt", []byte("x"), 0644)
	assert.Error(t, err)
}

func TestCopyFilePreservesModTime(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, afero.WriteFile(fsys, "/src.txt", []byte("payload"), 0600))
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fsys.Chtimes("/src.txt", stamp, stamp))

	require.NoError(t, CopyFile(fsys, "/src.txt", "/dst.txt"))

	data, err := afero.ReadFile(fsys, "/dst.txt")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	info, err := fsys.Stat("/dst.txt")
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp))
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCopyFileOS(t *testing.T) {
	fsys := NewOS()
	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0644))

	require.NoError(t, CopyFile(fsys, src, filepath.Join(dir, "b")))

	data, err := os.ReadFile(filepath.Join(dir, "b"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestCopyFileRejectsDirectory(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/dir", 0755))
	assert.Error(t, CopyFile(fsys, "/dir", "/copy"))
}

func TestCopyDir(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, afero.WriteFile(fsys, "/rules/a.mdc", []byte("a"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/rules/nested/b.mdc", []byte("b"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/rules.bak/stale.mdc", []byte("old"), 0644))

	require.NoError(t, CopyDir(fsys, "/rules", "/rules.bak"))

	data, err := afero.ReadFile(fsys, "/rules.bak/nested/b.mdc")
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))

	exists, err := Exists(fsys, "/rules.bak/stale.mdc")
	require.NoError(t, err)
	assert.False(t, exists, "previous backup content is replaced")
}

func TestReadFileAndKinds(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, afero.WriteFile(fsys, "/f", []byte("x"), 0644))
	require.NoError(t, fsys.MkdirAll("/d", 0755))

	_, err := ReadFile(fsys, "/d")
	assert.Error(t, err)

	data, err := ReadFile(fsys, "/f")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))

	assert.True(t, IsFile(fsys, "/f"))
	assert.False(t, IsFile(fsys, "/d"))
	assert.True(t, IsDir(fsys, "/d"))
	assert.False(t, IsDir(fsys, "/missing"))
}
