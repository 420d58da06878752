package filesystem

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	err := fs.WriteFile(testFile, testContent, 0644)
	require.NoError(t, err)

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	require.NoError(t, fs.Chmod(testFile, 0600))
	info, err = fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	mtime := time.Date(2023, 8, 27, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fs.Chtimes(testFile, mtime, mtime))
	info, err = fs.Stat(testFile)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))

	subDir := filepath.Join(tmpDir, "sub", "dir")
	require.NoError(t, fs.MkdirAll(subDir, 0755))

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // test.txt and sub/

	require.NoError(t, fs.RemoveAll(filepath.Join(tmpDir, "sub")))
	require.NoError(t, fs.Remove(testFile))
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))
}

func TestSymlinkOperations(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()

	target := filepath.Join(tmpDir, "target")
	require.NoError(t, fs.WriteFile(target, []byte("x"), 0644))

	link := filepath.Join(tmpDir, "link")
	require.NoError(t, fs.Symlink(target, link))

	got, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "Lstat must not follow the link")

	resolved, err := fs.EvalSymlinks(link)
	require.NoError(t, err)
	wantResolved, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, wantResolved, resolved)

	dangling := filepath.Join(tmpDir, "dangling")
	require.NoError(t, fs.Symlink(filepath.Join(tmpDir, "nowhere"), dangling))
	_, err = fs.EvalSymlinks(dangling)
	assert.Error(t, err)
	_, err = fs.Lstat(dangling)
	assert.NoError(t, err)
}
