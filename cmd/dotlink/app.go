package dotlink

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotlink/pkg/backup"
	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/linker"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/manifest"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/arthur-debert/dotlink/pkg/ui"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	format     string
	repo       string
	home       string
	manifest   string
	configFile string
}

// overrides maps flags onto config keys; unset flags are dropped by the loader
func (o *globalOptions) overrides() map[string]interface{} {
	return map[string]interface{}{
		"paths.repo_root": o.repo,
		"paths.home":      o.home,
		"paths.manifest":  o.manifest,
		"ui.format":       o.format,
	}
}

// app is the configuration and I/O a command runs with
type app struct {
	cfg    *config.Config
	format ui.Format
	fs     types.FS
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// workspace is a resolved repository with its loaded manifest
type workspace struct {
	paths    paths.Paths
	manifest *manifest.Manifest
}

func loadApp(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: opts.configFile,
		Overrides:  opts.overrides(),
	})
	if err != nil {
		return nil, err
	}

	format, err := ui.ParseFormat(cfg.UI.Format)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		format: format,
		fs:     filesystem.NewOS(),
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}, nil
}

// workspace resolves the repository and loads its manifest. A repository
// root guessed from the current directory is announced on stderr.
func (a *app) workspace() (*workspace, error) {
	p, err := paths.New(paths.Options{
		RepoRoot:  a.cfg.Paths.RepoRoot,
		Home:      a.cfg.Paths.Home,
		Manifest:  a.cfg.Paths.Manifest,
		BackupDir: a.cfg.Paths.BackupDir,
	})
	if err != nil {
		return nil, err
	}
	if p.UsedFallback() {
		fmt.Fprintf(a.errOut, MsgFallbackWarning+"\n", p.RepoRoot())
	}

	manifestPath, err := p.ManifestPath()
	if err != nil {
		return nil, err
	}
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("cmd")
	logger.Debug().
		Str("repo_root", p.RepoRoot()).
		Str("home", p.HomeDir()).
		Str("manifest", manifestPath).
		Int("entries", m.Len()).
		Msg("Workspace resolved")

	return &workspace{paths: p, manifest: m}, nil
}

func (a *app) presenter() (ui.Presenter, error) {
	return ui.NewPresenter(a.format, a.in, a.out)
}

func (a *app) linker(ws *workspace, reporter linker.Reporter) *linker.Linker {
	return linker.New(linker.Options{
		FS:       a.fs,
		Paths:    ws.paths,
		Backup:   backup.NewService(a.fs, ws.paths.BackupDir(), backup.WithTimestampFormat(a.cfg.Backup.TimestampFormat)),
		Reporter: reporter,
	})
}
