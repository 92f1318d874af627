package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A status line template engine"
	MsgRenderShort     = "Expand a template into a status line"
	MsgCheckShort      = "Check templates for structural problems"
	MsgListShort       = "List configured templates"
	MsgListLong        = "List displays all templates defined in your configuration, sorted by name."
	MsgGenConfigShort  = "Output the default configuration"
	MsgManShort        = "Generate man pages"
	MsgManLong         = "Generate man pages for expando and all of its commands."
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgConfigWritten = "Wrote configuration to %s\n"
	MsgManWritten    = "Wrote man pages to %s\n"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"

	// Version output
	MsgVersionFormat = "expando version %s\n"
	MsgCommitFormat  = "  commit: %s\n"
	MsgBuiltFormat   = "  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat      = "Output format (auto, term, text, json)"
	MsgFlagName        = "Use the named template from the configuration"
	MsgFlagCols        = "Column budget for padding directives (0 = detect terminal width)"
	MsgFlagStartCol    = "Column the line starts at"
	MsgFlagMaxBytes    = "Byte capacity of the output line (0 = use configuration)"
	MsgFlagField       = "Set a field value as char=value (repeatable)"
	MsgFlagNoFilter    = "Disable filter delegation for trailing-pipe templates"
	MsgFlagArrowCursor = "Reserve three leading columns for an arrow cursor"
	MsgFlagWrite       = "Write the configuration to the user config path instead of stdout"
	MsgFlagEffective   = "Output the effective configuration after merging all layers"
	MsgFlagManDir      = "Directory to write man pages into"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/render-example.txt
	msgRenderExampleRaw string
	MsgRenderExample    = strings.TrimSpace(msgRenderExampleRaw)

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/check-example.txt
	msgCheckExampleRaw string
	MsgCheckExample    = strings.TrimSpace(msgCheckExampleRaw)

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimSpace(msgListExampleRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimSpace(msgGenConfigExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
