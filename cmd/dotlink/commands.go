package dotlink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/dotlink/internal/version"
	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/hotspot"
	"github.com/arthur-debert/dotlink/pkg/linker"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/session"
	"github.com/arthur-debert/dotlink/pkg/status"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/arthur-debert/dotlink/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			ws, err := a.workspace()
			if err != nil {
				return err
			}

			items := status.NewClassifier(a.fs, ws.paths).ClassifyAll(ws.manifest.Entries)
			log.Info().Str("repo_root", ws.paths.RepoRoot()).Int("entries", len(items)).Msg("Status computed")

			if a.format == ui.FormatJSON {
				for _, warning := range ws.manifest.Warnings {
					log.Warn().Msg(warning)
				}
				return ui.WriteStatusJSON(a.out, items)
			}

			presenter, err := a.presenter()
			if err != nil {
				return err
			}
			for _, warning := range ws.manifest.Warnings {
				presenter.Warn(warning)
			}
			presenter.ShowStatus(items)
			return nil
		},
	}
}

func newLinkCmd(opts *globalOptions) *cobra.Command {
	var (
		all   bool
		force bool
	)

	cmd := &cobra.Command{
		Use:               "link [entry...]",
		Short:             MsgLinkShort,
		Long:              MsgLinkLong,
		Example:           MsgLinkExample,
		GroupID:           "core",
		ValidArgsFunction: entryCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case all && len(args) > 0:
				return errors.New(errors.ErrInvalidInput, MsgErrEntriesAndAll)
			case !all && len(args) == 0:
				return errors.New(errors.ErrInvalidInput, MsgErrNoEntries)
			}

			a, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			presenter, err := a.presenter()
			if err != nil {
				return err
			}
			for _, warning := range ws.manifest.Warnings {
				presenter.Warn(warning)
			}

			var indices []int
			if !all {
				sel, err := session.ParseSelection(strings.Join(args, " "), ws.manifest.Len())
				if err != nil {
					return err
				}
				switch sel.Kind {
				case session.SelectAll:
					all = true
				case session.SelectIndices:
					indices = sel.Indices
				default:
					presenter.Info(MsgNothingSelected)
					return nil
				}
			}

			batch := linker.NewBatch(a.linker(ws, presenter), ws.manifest)
			var summary types.Summary
			if all {
				summary, err = batch.RunAll(cmd.Context(), force)
			} else {
				summary, err = batch.Run(cmd.Context(), indices, force)
			}
			if err != nil {
				if errors.IsInterrupted(err) {
					if len(summary.Outcomes) > 0 {
						presenter.ShowSummary(summary)
					}
					presenter.Warn(session.InterruptedNotice(summary.Count(types.ResultLinked) > 0))
					return nil
				}
				return err
			}

			presenter.ShowSummary(summary)
			if failed := len(summary.Failed()); failed > 0 {
				return errors.Newf(errors.ErrCommandFailed, "%d of %d entries failed", failed, summary.Attempted).
					WithDetail("failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, MsgFlagAll)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)

	return cmd
}

// entryCompletion offers manifest indices with their descriptions
func entryCompletion(opts *globalOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		a, err := loadApp(cmd, opts)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		a.errOut = io.Discard
		ws, err := a.workspace()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		given := make(map[string]bool, len(args))
		for _, arg := range args {
			given[arg] = true
		}

		var completions []string
		for i, entry := range ws.manifest.Entries {
			index := strconv.Itoa(i + 1)
			if given[index] {
				continue
			}
			completions = append(completions, index+"\t"+entry.Description)
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

func newHotspotCmd(opts *globalOptions) *cobra.Command {
	var (
		enable  bool
		disable bool
	)

	cmd := &cobra.Command{
		Use:     "hotspot",
		Short:   MsgHotspotShort,
		Long:    MsgHotspotLong,
		Example: MsgHotspotExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if enable == disable {
				return errors.New(errors.ErrInvalidInput, MsgErrHotspotAction)
			}

			a, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			presenter, err := a.presenter()
			if err != nil {
				return err
			}

			toggler := hotspot.NewToggler(a.cfg.Hotspot, presenter)
			if enable {
				return toggler.Enable(cmd.Context())
			}
			return toggler.Disable(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&enable, "enable", false, MsgFlagEnable)
	cmd.Flags().BoolVar(&disable, "disable", false, MsgFlagDisable)
	cmd.MarkFlagsMutuallyExclusive("enable", "disable")

	return cmd
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GetDefaultConfigContent()
			if !write {
				_, err := io.WriteString(cmd.OutOrStdout(), content)
				return err
			}

			target := opts.configFile
			if target == "" {
				target = config.UserConfigPath()
			}
			if _, err := os.Stat(target); err == nil {
				return errors.Newf(errors.ErrInvalidInput, MsgErrConfigExists, target).
					WithDetail("path", target)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(target))
			}
			if err := os.WriteFile(target, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", target).
					WithDetail("path", target)
			}
			log.Info().Str("path", target).Msg("Default configuration written")
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten+"\n", target)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man <dir>",
		Short:  MsgManShort,
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			logging.LogCommand("man", args)

			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
			}
			header := &doc.GenManHeader{
				Title:   "DOTLINK",
				Section: "1",
				Source:  "dotlink " + version.Version,
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "cannot write man pages to %s", dir)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten+"\n", dir)
			return nil
		},
	}
}
