package sfdelta

import (
	"embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Build delta packages of Salesforce DX source folders"
	MsgCreateShort     = "Copy the units changed since the baseline into the delta folder"
	MsgClassifyShort   = "Show the copy unit each path resolves to"
	MsgClassifyLong    = "Classify resolves each repository-relative path to the unit that would be copied for it, without copying anything."
	MsgMarkShort       = "Record a baseline marker in the state file"
	MsgMarkLong        = "Mark records the given commit, or HEAD when none is given, under the baseline key in the file backend's state file."
	MsgGenConfigShort  = "Output or write the default configuration"
	MsgGenConfigLong   = "Genconfig prints the default configuration. With --write it creates .sfdelta.toml in the repository unless one exists."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgConfigWritten  = "Wrote %s"
	MsgConfigExists   = "Config file already exists, nothing written"
	MsgMarkerRecorded = "Recorded %s = %s in %s"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrFormat     = "invalid output format: %w"
	MsgErrFailures   = "%d unit(s) failed to copy"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun         = "Resolve and report units without writing anything"
	MsgFlagFormat         = "Output format: auto, term, text, json or yaml"
	MsgFlagConfig         = "Configuration file (default .sfdelta.toml in the repository)"
	MsgFlagRepo           = "Repository working directory (default current directory)"
	MsgFlagSourceFolder   = "Source folder to package, relative to the repository"
	MsgFlagOutput         = "Delta folder (default <sourcefolder>_delta)"
	MsgFlagPackage        = "Managed package namespace of the settings object: cmt or ins"
	MsgFlagGitCheckKey    = "Suffix appended to the VBTDeployKey baseline key"
	MsgFlagCustomKey      = "Baseline key in a custom settings object, used with --customsettingobject"
	MsgFlagCustomObject   = "Custom settings object holding the baseline, used with --gitcheckkeycustom"
	MsgFlagKey            = "Baseline key replacing VBTDeployKey"
	MsgFlagBackend        = "Baseline backend: env, file, postgres, s3 or static"
	MsgFlagBaseline       = "Baseline marker to diff against; selects the static backend"
	MsgFlagStateFile      = "State file of the file backend"
	MsgFlagExcludeRenames = "Report renames as a deletion plus an addition"
	MsgFlagStrict         = "Abort on the first unit that fails to copy"
	MsgFlagManifest       = "Write delta-manifest.xml into the delta folder"
	MsgFlagWrite          = "Write .sfdelta.toml instead of printing it"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/create-long.txt
	msgCreateLongRaw string
	MsgCreateLong    = strings.TrimSpace(msgCreateLongRaw)

	// help topics shown by "sfdelta help <topic>"
	//go:embed help/*.md
	helpTopics embed.FS
)

const MsgCreateExample = `  # Package force-app against the marker in SFDELTA_BASELINE_VBTDEPLOYKEY
  sfdelta create

  # Diff against an explicit commit
  sfdelta create --baseline 4f2a9c1

  # Read the marker from the Vlocity CMT settings table
  sfdelta create -p cmt -k EPC --backend postgres

  # Preview as JSON
  sfdelta create --dry-run --format json`

// MsgUsageTemplate is the custom usage template with bold headers
const MsgUsageTemplate = `{{boldUpper "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

{{boldUpper "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

{{boldUpper "Additional help topics:"}}{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
