// pkg/linker/linker_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: real filesystem (temp dir), testutil.ScriptedPresenter
// PURPOSE: Test the single-entry link transaction and its failure paths

package linker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/testutil"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zshrc = types.DotfileEntry{Source: "zsh/zshrc", Destination: ".zshrc", Description: "zsh configuration"}

func setup(t *testing.T) (*testutil.TestEnvironment, *testutil.ScriptedPresenter) {
	t.Helper()
	env := testutil.NewTestEnvironment(t)
	env.WithRepo(testutil.FileTree{
		"zsh": testutil.FileTree{"zshrc": "export ZSH=1"},
	})
	return env, &testutil.ScriptedPresenter{}
}

func newLinker(env *testutil.TestEnvironment, reporter Reporter) *Linker {
	return New(Options{FS: env.FS, Paths: env.Paths, Reporter: reporter})
}

func TestLinkNotLinked(t *testing.T) {
	env, presenter := setup(t)
	l := newLinker(env, presenter)

	outcome, confirmAll, err := l.Link(context.Background(), 1, zshrc, false, false)
	require.NoError(t, err)
	assert.False(t, confirmAll)
	assert.Equal(t, types.ResultLinked, outcome.Result)
	assert.Equal(t, types.StatusNotLinked, outcome.Status)
	assert.NoError(t, outcome.Err)
	assert.Empty(t, outcome.Backup)
	assert.Empty(t, presenter.OverwritePrompts)

	testutil.AssertSymlinkTo(t, env.HomePath(".zshrc"), env.RepoPath("zsh/zshrc"))
	assert.Equal(t, types.StatusAlreadyLinked, l.Classifier().Classify(zshrc))

	// The link target is the absolute source path
	target, err := os.Readlink(env.HomePath(".zshrc"))
	require.NoError(t, err)
	assert.Equal(t, env.RepoPath("zsh/zshrc"), target)
}

func TestLinkIsIdempotent(t *testing.T) {
	env, presenter := setup(t)
	l := newLinker(env, presenter)

	_, _, err := l.Link(context.Background(), 1, zshrc, false, false)
	require.NoError(t, err)
	before := testutil.ListDir(t, env.HomeDir)
	presenter.Messages = nil

	outcome, _, err := l.Link(context.Background(), 1, zshrc, false, false)
	require.NoError(t, err)
	assert.Equal(t, types.ResultAlreadyLinked, outcome.Result)
	assert.Equal(t, before, testutil.ListDir(t, env.HomeDir))
	testutil.AssertNotExists(t, env.BackupDir())
	assert.Len(t, presenter.Lines("info"), 1)
	assert.Contains(t, presenter.Lines("info")[0], "already linked")
}

func TestLinkCreatesParentDirectories(t *testing.T) {
	env, presenter := setup(t)
	l := newLinker(env, presenter)
	entry := types.DotfileEntry{Source: "zsh/zshrc", Destination: ".config/zsh/deep/zshrc", Description: "nested"}

	outcome, _, err := l.Link(context.Background(), 1, entry, false, false)
	require.NoError(t, err)
	assert.Equal(t, types.ResultLinked, outcome.Result)
	testutil.AssertSymlinkTo(t, env.HomePath(".config/zsh/deep/zshrc"), env.RepoPath("zsh/zshrc"))
}

func TestLinkBacksUpBeforeReplacing(t *testing.T) {
	env, presenter := setup(t)
	env.WithHome(testutil.FileTree{".zshrc": "my local zshrc"})
	presenter.Choices = []types.Choice{types.ChoiceYes}
	l := newLinker(env, presenter)

	outcome, confirmAll, err := l.Link(context.Background(), 1, zshrc, false, false)
	require.NoError(t, err)
	assert.False(t, confirmAll)
	assert.Equal(t, types.ResultLinked, outcome.Result)
	assert.Equal(t, types.StatusFileExists, outcome.Status)

	require.Len(t, presenter.OverwritePrompts, 1)
	assert.Equal(t, env.HomePath(".zshrc"), presenter.OverwritePrompts[0].DestinationPath)

	require.NotEmpty(t, outcome.Backup)
	assert.Equal(t, env.BackupDir(), filepath.Dir(outcome.Backup))
	testutil.AssertFileContent(t, outcome.Backup, "my local zshrc")
	testutil.AssertSymlinkTo(t, env.HomePath(".zshrc"), env.RepoPath("zsh/zshrc"))
	assert.Len(t, testutil.ListDir(t, env.BackupDir()), 1)
}

func TestLinkDeclined(t *testing.T) {
	env, presenter := setup(t)
	env.WithHome(testutil.FileTree{".zshrc": "my local zshrc"})
	presenter.Choices = []types.Choice{types.ChoiceNo}
	l := newLinker(env, presenter)

	outcome, _, err := l.Link(context.Background(), 1, zshrc, false, false)
	require.NoError(t, err)
	assert.Equal(t, types.ResultSkipped, outcome.Result)
	testutil.AssertFileContent(t, env.HomePath(".zshrc"), "my local zshrc")
	testutil.AssertNotExists(t, env.BackupDir())
	assert.Contains(t, presenter.Lines("warn")[0], "skipped")
}

func TestLinkChoiceAllRaisesConfirmAll(t *testing.T) {
	env, presenter := setup(t)
	env.WithHome(testutil.FileTree{".zshrc": "local"})
	presenter.Choices = []types.Choice{types.ChoiceAll}
	l := newLinker(env, presenter)

	outcome, confirmAll, err := l.Link(context.Background(), 1, zshrc, false, false)
	require.NoError(t, err)
	assert.True(t, confirmAll)
	assert.Equal(t, types.ResultLinked, outcome.Result)
}

func TestLinkForceSkipsPrompt(t *testing.T) {
	for _, tc := range []struct {
		name       string
		force      bool
		confirmAll bool
	}{
		{name: "force", force: true},
		{name: "confirm all", confirmAll: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			env, presenter := setup(t)
			env.WithHome(testutil.FileTree{".zshrc": "local"})
			l := newLinker(env, presenter)

			outcome, confirmAll, err := l.Link(context.Background(), 1, zshrc, tc.force, tc.confirmAll)
			require.NoError(t, err)
			assert.Equal(t, tc.confirmAll, confirmAll)
			assert.Equal(t, types.ResultLinked, outcome.Result)
			assert.Empty(t, presenter.OverwritePrompts)
			testutil.AssertFileContent(t, outcome.Backup, "local")
		})
	}
}

func TestLinkReplacesLinks(t *testing.T) {
	tests := []struct {
		name   string
		target func(env *testutil.TestEnvironment) string
		status types.LinkStatus
	}{
		{
			name:   "links elsewhere",
			target: func(env *testutil.TestEnvironment) string { return env.HomePath("other") },
			status: types.StatusLinksElsewhere,
		},
		{
			name:   "dangling",
			target: func(env *testutil.TestEnvironment) string { return env.HomePath("gone") },
			status: types.StatusBrokenLink,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, presenter := setup(t)
			env.WithHome(testutil.FileTree{
				"other":  "other file",
				".zshrc": testutil.Symlink{Target: tt.target(env)},
			})
			presenter.Choices = []types.Choice{types.ChoiceYes}
			l := newLinker(env, presenter)

			outcome, _, err := l.Link(context.Background(), 1, zshrc, false, false)
			require.NoError(t, err)
			assert.Equal(t, tt.status, outcome.Status)
			assert.Equal(t, types.ResultLinked, outcome.Result)
			testutil.AssertSymlinkTo(t, env.HomePath(".zshrc"), env.RepoPath("zsh/zshrc"))

			// The old link is backed up as a link and its target is untouched
			backupTarget, err := os.Readlink(outcome.Backup)
			require.NoError(t, err)
			assert.Equal(t, tt.target(env), backupTarget)
			testutil.AssertFileContent(t, env.HomePath("other"), "other file")
		})
	}
}

func TestLinkReplacesDirectory(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithRepo(testutil.FileTree{"nvim": testutil.FileTree{"init.lua": "-- repo"}})
	env.WithHome(testutil.FileTree{
		".config": testutil.FileTree{
			"nvim": testutil.FileTree{
				"init.lua": "-- local",
				"link":     testutil.Symlink{Target: "init.lua"},
			},
		},
	})
	presenter := &testutil.ScriptedPresenter{Choices: []types.Choice{types.ChoiceYes}}
	l := newLinker(env, presenter)
	entry := types.DotfileEntry{Source: "nvim", Destination: ".config/nvim", Description: "neovim"}

	outcome, _, err := l.Link(context.Background(), 1, entry, false, false)
	require.NoError(t, err)
	assert.Equal(t, types.ResultLinked, outcome.Result)
	testutil.AssertSymlinkTo(t, env.HomePath(".config/nvim"), env.RepoPath("nvim"))
	testutil.AssertFileContent(t, filepath.Join(outcome.Backup, "init.lua"), "-- local")

	target, err := os.Readlink(filepath.Join(outcome.Backup, "link"))
	require.NoError(t, err)
	assert.Equal(t, "init.lua", target)
}

func TestLinkMissingSource(t *testing.T) {
	env, presenter := setup(t)
	l := newLinker(env, presenter)
	entry := types.DotfileEntry{Source: "nope", Destination: ".nope", Description: "missing"}

	outcome, _, err := l.Link(context.Background(), 2, entry, false, false)
	require.NoError(t, err)
	assert.Equal(t, types.ResultFailed, outcome.Result)
	assert.Equal(t, types.StatusMissingInRepo, outcome.Status)
	assert.True(t, errors.IsErrorCode(outcome.Err, errors.ErrFileNotFound))
	testutil.AssertNotExists(t, env.HomePath(".nope"))
	assert.Contains(t, presenter.Lines("error")[0], "[2]")
}

func TestLinkInterruptedAtPrompt(t *testing.T) {
	env, presenter := setup(t)
	env.WithHome(testutil.FileTree{".zshrc": "local"})
	l := newLinker(env, presenter)

	outcome, _, err := l.Link(context.Background(), 1, zshrc, false, false)
	require.Error(t, err)
	assert.True(t, errors.IsInterrupted(err))
	assert.Equal(t, types.ResultSkipped, outcome.Result)
	testutil.AssertFileContent(t, env.HomePath(".zshrc"), "local")
	testutil.AssertNotExists(t, env.BackupDir())
}

func TestLinkFilesystemFailures(t *testing.T) {
	tests := []struct {
		name     string
		home     testutil.FileTree
		dest     string
		inject   func(env *testutil.TestEnvironment, fs *testutil.FaultyFS)
		wantCode errors.ErrorCode
		// intact is checked when the original destination must survive
		intact string
	}{
		{
			name: "backup fails",
			home: testutil.FileTree{".zshrc": "local"},
			dest: ".zshrc",
			inject: func(env *testutil.TestEnvironment, fs *testutil.FaultyFS) {
				fs.FailOn("WriteFile")
			},
			wantCode: errors.ErrBackup,
			intact:   "local",
		},
		{
			name: "remove fails",
			home: testutil.FileTree{".zshrc": "local"},
			dest: ".zshrc",
			inject: func(env *testutil.TestEnvironment, fs *testutil.FaultyFS) {
				fs.FailOnPath("Remove", env.HomePath(".zshrc"))
			},
			wantCode: errors.ErrRemove,
			intact:   "local",
		},
		{
			name: "parent creation fails",
			dest: ".config/zsh/zshrc",
			inject: func(env *testutil.TestEnvironment, fs *testutil.FaultyFS) {
				fs.FailOnPath("MkdirAll", env.HomePath(".config/zsh"))
			},
			wantCode: errors.ErrDirCreate,
		},
		{
			name: "symlink fails",
			dest: ".zshrc",
			inject: func(env *testutil.TestEnvironment, fs *testutil.FaultyFS) {
				fs.FailOn("Symlink")
			},
			wantCode: errors.ErrSymlinkCreate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, presenter := setup(t)
			if tt.home != nil {
				env.WithHome(tt.home)
			}
			faulty := testutil.NewFaultyFS(env.FS)
			tt.inject(env, faulty)
			l := New(Options{FS: faulty, Paths: env.Paths, Reporter: presenter})

			entry := types.DotfileEntry{Source: "zsh/zshrc", Destination: tt.dest, Description: "zsh"}
			outcome, _, err := l.Link(context.Background(), 1, entry, true, false)
			require.NoError(t, err, "filesystem failures are per entry")
			assert.Equal(t, types.ResultFailed, outcome.Result)
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(outcome.Err))
			assert.Len(t, presenter.Lines("error"), 1)

			if tt.intact != "" {
				testutil.AssertFileContent(t, env.HomePath(tt.dest), tt.intact)
			}
		})
	}
}

func TestLinkRefusesToReplaceBackupParent(t *testing.T) {
	env, presenter := setup(t)
	env.WithHome(testutil.FileTree{".zshrc": "local"})
	l := newLinker(env, presenter)
	entry := types.DotfileEntry{Source: "zsh", Destination: ".", Description: "whole home"}

	outcome, _, err := l.Link(context.Background(), 1, entry, true, false)
	require.NoError(t, err)
	assert.Equal(t, types.ResultFailed, outcome.Result)
	assert.True(t, errors.IsErrorCode(outcome.Err, errors.ErrBackup))

	testutil.AssertFileContent(t, env.HomePath(".zshrc"), "local")
	info, err := os.Lstat(env.HomeDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
