// pkg/backup/backup_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: real filesystem (temp dir)
// PURPOSE: Test backup naming and faithful copies of files, links and trees

package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func newService(env *testutil.TestEnvironment) *Service {
	return NewService(env.FS, env.BackupDir(), WithClock(func() time.Time { return fixedTime }))
}

func TestBackupMissingPath(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	svc := newService(env)

	location, made, err := svc.Backup(env.HomePath(".absent"))
	require.NoError(t, err)
	assert.False(t, made)
	assert.Empty(t, location)
	testutil.AssertNotExists(t, env.BackupDir())
}

func TestBackupRegularFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithHome(testutil.FileTree{".bashrc": "local bashrc"})
	path := env.HomePath(".bashrc")
	require.NoError(t, os.Chmod(path, 0600))
	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	svc := newService(env)
	location, made, err := svc.Backup(path)
	require.NoError(t, err)
	assert.True(t, made)
	assert.Equal(t, filepath.Join(env.BackupDir(), ".bashrc.backup.20240309_140507"), location)

	testutil.AssertFileContent(t, location, "local bashrc")
	info, err := os.Stat(location)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(mtime))

	// Backup never touches the original
	testutil.AssertFileContent(t, path, "local bashrc")
}

func TestBackupSymlinkIsKeptAsLink(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithHome(testutil.FileTree{
		".vimrc": testutil.Symlink{Target: env.HomePath("missing-target")},
	})

	svc := newService(env)
	location, made, err := svc.Backup(env.HomePath(".vimrc"))
	require.NoError(t, err)
	assert.True(t, made)

	target, err := os.Readlink(location)
	require.NoError(t, err)
	assert.Equal(t, env.HomePath("missing-target"), target)
}

func TestBackupDirectoryPreservesInternalLinks(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithHome(testutil.FileTree{
		"elsewhere": "outside",
		".config": testutil.FileTree{
			"nvim": testutil.FileTree{
				"init.lua": "-- init",
				"lua": testutil.FileTree{
					"plugins.lua": "return {}",
				},
				"relative": testutil.Symlink{Target: "init.lua"},
				"absolute": testutil.Symlink{Target: env.HomePath("elsewhere")},
			},
		},
	})
	script := env.HomePath(".config/nvim/lua/plugins.lua")
	require.NoError(t, os.Chmod(script, 0755))

	svc := newService(env)
	location, made, err := svc.Backup(env.HomePath(".config/nvim"))
	require.NoError(t, err)
	require.True(t, made)
	assert.Equal(t, "nvim.backup.20240309_140507", filepath.Base(location))

	testutil.AssertFileContent(t, filepath.Join(location, "init.lua"), "-- init")
	testutil.AssertFileContent(t, filepath.Join(location, "lua", "plugins.lua"), "return {}")

	info, err := os.Stat(filepath.Join(location, "lua", "plugins.lua"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	for name, want := range map[string]string{
		"relative": "init.lua",
		"absolute": env.HomePath("elsewhere"),
	} {
		linkPath := filepath.Join(location, name)
		linfo, err := os.Lstat(linkPath)
		require.NoError(t, err)
		assert.NotZero(t, linfo.Mode()&os.ModeSymlink, "%s must stay a symlink", name)
		target, err := os.Readlink(linkPath)
		require.NoError(t, err)
		assert.Equal(t, want, target)
	}
}

func TestBackupNameCollision(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithHome(testutil.FileTree{".zshrc": "one"})

	svc := newService(env)
	first, _, err := svc.Backup(env.HomePath(".zshrc"))
	require.NoError(t, err)
	second, _, err := svc.Backup(env.HomePath(".zshrc"))
	require.NoError(t, err)
	third, _, err := svc.Backup(env.HomePath(".zshrc"))
	require.NoError(t, err)

	assert.Equal(t, ".zshrc.backup.20240309_140507", filepath.Base(first))
	assert.Equal(t, ".zshrc.backup.20240309_140507.1", filepath.Base(second))
	assert.Equal(t, ".zshrc.backup.20240309_140507.2", filepath.Base(third))
}

func TestBackupTimestampFormat(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithHome(testutil.FileTree{".zshrc": "one"})

	svc := NewService(env.FS, env.BackupDir(),
		WithClock(func() time.Time { return fixedTime }),
		WithTimestampFormat("2006-01-02"))
	location, _, err := svc.Backup(env.HomePath(".zshrc"))
	require.NoError(t, err)
	assert.Equal(t, ".zshrc.backup.2024-03-09", filepath.Base(location))
}

func TestBackupFailure(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithHome(testutil.FileTree{".zshrc": "one"})

	faulty := testutil.NewFaultyFS(env.FS)
	faulty.FailOn("WriteFile")
	svc := NewService(faulty, env.BackupDir(), WithClock(func() time.Time { return fixedTime }))

	location, made, err := svc.Backup(env.HomePath(".zshrc"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBackup))
	assert.False(t, made)
	assert.Empty(t, location)
	assert.Empty(t, testutil.ListDir(t, env.BackupDir()))
}

func TestBackupRejectsTreeHoldingBackupDir(t *testing.T) {
	tests := []struct {
		name      string
		backupDir func(env *testutil.TestEnvironment) string
		target    func(env *testutil.TestEnvironment) string
	}{
		{
			name:      "backup dir nested in target",
			backupDir: func(env *testutil.TestEnvironment) string { return env.HomePath(".config/backups") },
			target:    func(env *testutil.TestEnvironment) string { return env.HomePath(".config") },
		},
		{
			name:      "target is the backup dir",
			backupDir: func(env *testutil.TestEnvironment) string { return env.HomePath(".config") },
			target:    func(env *testutil.TestEnvironment) string { return env.HomePath(".config") },
		},
		{
			name:      "target is home",
			backupDir: func(env *testutil.TestEnvironment) string { return env.BackupDir() },
			target:    func(env *testutil.TestEnvironment) string { return env.HomeDir },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t)
			env.WithHome(testutil.FileTree{
				".config": testutil.FileTree{"app.conf": "setting=1"},
			})
			svc := NewService(env.FS, tt.backupDir(env), WithClock(func() time.Time { return fixedTime }))

			location, made, err := svc.Backup(tt.target(env))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrBackup))
			assert.Contains(t, err.Error(), "contains the backup directory")
			assert.False(t, made)
			assert.Empty(t, location)
		
			testutil.AssertFileContent(t, env.HomePath(".config/app.conf"), "setting=1")
			testutil.AssertNotExists(t, env.HomePath(".config/backups"))
		})
	}
}

func TestBackupSiblingWithSharedPrefix(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithHome(testutil.FileTree{
		".dotfiles": testutil.FileTree{"note": "kept"},
	})
	svc := NewService(env.FS, env.HomePath(".dotfiles_backup"), WithClock(func() time.Time { return fixedTime }))

	location, made, err := svc.Backup(env.HomePath(".dotfiles"))
	require.NoError(t, err)
	assert.True(t, made)
	testutil.AssertFileContent(t, filepath.Join(location, "note"), "kept")
}
