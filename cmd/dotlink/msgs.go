package dotlink

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Link dotfiles from a repository into your home directory"
	MsgStatusShort     = "Show the link status of every manifest entry"
	MsgLinkShort       = "Link manifest entries without the interactive menu"
	MsgHotspotShort    = "Turn the wireless hotspot on or off"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages into a directory"
	MsgGenConfigShort  = "Print or write the default configuration"

	// Status messages
	MsgVersionFormat   = "dotlink version %s\n  commit: %s\n  built:  %s\n"
	MsgManWritten      = "Man pages written to %s"
	MsgConfigWritten   = "Configuration written to %s"
	MsgLogFileHint     = "Full log: %s"
	MsgNothingSelected = "No entries selected."

	// Error messages
	MsgErrNoEntries     = "give entry numbers or --all"
	MsgErrEntriesAndAll = "entry numbers and --all cannot be combined"
	MsgErrHotspotAction = "choose one of --enable or --disable"
	MsgErrConfigExists  = "config file %s already exists"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat   = "Output format: auto, term, text or json (status only)"
	MsgFlagRepo     = "Dotfiles repository root (default: DOTFILES_ROOT, then the enclosing git work tree)"
	MsgFlagHome     = "Home directory destinations are relative to (default: $HOME)"
	MsgFlagManifest = "Manifest file, relative to the repository root"
	MsgFlagConfig   = "Config file (default: $XDG_CONFIG_HOME/dotlink/config.toml)"
	MsgFlagForce    = "Replace existing destinations without asking"
	MsgFlagAll      = "Link every manifest entry"
	MsgFlagEnable   = "Bring the hotspot online"
	MsgFlagDisable  = "Take the hotspot offline"
	MsgFlagWrite    = "Write the configuration file instead of printing it"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimRight(msgStatusExampleRaw, "\n")

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimRight(msgLinkExampleRaw, "\n")

	//go:embed msgs/hotspot-long.txt
	msgHotspotLongRaw string
	MsgHotspotLong    = strings.TrimSpace(msgHotspotLongRaw)

	//go:embed msgs/hotspot-example.txt
	msgHotspotExampleRaw string
	MsgHotspotExample    = strings.TrimRight(msgHotspotExampleRaw, "\n")

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/gen-config-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/gen-config-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimRight(msgGenConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
