package sfdelta

import (
	"fmt"

	"github.com/arthur-debert/sfdelta/internal/version"
	"github.com/arthur-debert/sfdelta/pkg/baseline"
	"github.com/arthur-debert/sfdelta/pkg/cobrax/topics"
	"github.com/arthur-debert/sfdelta/pkg/commands"
	"github.com/arthur-debert/sfdelta/pkg/config"
	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/logging"
	"github.com/arthur-debert/sfdelta/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	dryRun     bool
	format     string
	configFile string
	repo       string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "sfdelta",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// no subcommand given
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&opts.repo, "repo", "C", "", MsgFlagRepo)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newCreateCmd(opts))
	rootCmd.AddCommand(newClassifyCmd(opts))
	rootCmd.AddCommand(newMarkCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	initTopics(rootCmd)

	return rootCmd
}

func initTopics(rootCmd *cobra.Command) {
	var renderer topics.Renderer = topics.PlainRenderer{}
	if stdoutIsTerminal() {
		renderer = topics.NewGlamourRenderer()
	}
	manager, err := topics.Load(helpTopics, topics.Options{Renderer: renderer})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	manager.Install(rootCmd)
}

// flagBinding maps a command-line flag onto a configuration key
type flagBinding struct {
	flag string
	key  string
}

var keyBindings = []flagBinding{
	{"package", "baseline.package"},
	{"gitcheckkey", "baseline.key_suffix"},
	{"gitcheckkeycustom", "baseline.custom_key"},
	{"customsettingobject", "baseline.custom_object"},
	{"key", "baseline.key"},
	{"state-file", "baseline.file.path"},
}

var createBindings = append([]flagBinding{
	{"sourcefolder", "source.folder"},
	{"output", "delta.folder"},
	{"backend", "baseline.backend"},
	{"baseline", "baseline.value"},
	{"exclude-renames", "diff.exclude_renames"},
	{"strict", "run.strict"},
	{"manifest", "delta.manifest"},
}, keyBindings...)

// overrides collects the flags the user set
func overrides(cmd *cobra.Command, bindings []flagBinding) map[string]interface{} {
	out := map[string]interface{}{}
	for _, b := range bindings {
		f := cmd.Flags().Lookup(b.flag)
		if f == nil || !f.Changed {
			continue
		}
		if f.Value.Type() == "bool" {
			v, _ := cmd.Flags().GetBool(b.flag)
			out[b.key] = v
			continue
		}
		out[b.key] = f.Value.String()
	}
	return out
}

func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("package", "p", "", MsgFlagPackage)
	cmd.Flags().StringP("gitcheckkey", "k", "", MsgFlagGitCheckKey)
	cmd.Flags().String("gitcheckkeycustom", "", MsgFlagCustomKey)
	cmd.Flags().StringP("customsettingobject", "c", "", MsgFlagCustomObject)
	cmd.Flags().String("key", "", MsgFlagKey)
	cmd.Flags().String("state-file", "", MsgFlagStateFile)
	cmd.MarkFlagsRequiredTogether("gitcheckkeycustom", "customsettingobject")
}

// loadConfig resolves configuration with the command's flags applied last
func (o *globalOptions) loadConfig(cmd *cobra.Command, ov map[string]interface{}) (*config.Config, error) {
	if o.format != "" {
		ov["output.format"] = o.format
	}
	cfg, err := config.Load(config.LoadOptions{
		WorkDir:   o.repo,
		File:      o.configFile,
		Overrides: ov,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	if o.repo != "" && cfg.Diff.Repository == "" {
		cfg.Diff.Repository = o.repo
	}
	return cfg, nil
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) (ui.Renderer, error) {
	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, fmt.Errorf(MsgErrFormat, err)
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

func newCreateCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"createdeltapackage"},
		Short:   MsgCreateShort,
		Long:    MsgCreateLong,
		Example: MsgCreateExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ov := overrides(cmd, createBindings)
			// a marker on the command line means the static backend
			if _, ok := ov["baseline.value"]; ok && !cmd.Flags().Changed("backend") {
				ov["baseline.backend"] = "static"
			}
			cfg, err := opts.loadConfig(cmd, ov)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, cfg)
			if err != nil {
				return err
			}

			log.Info().
				Str("source", cfg.Source.Folder).
				Str("backend", cfg.Baseline.Backend).
				Bool("dry_run", opts.dryRun).
				Msg("Creating delta package")

			summary, err := commands.CreateDeltaPackage(cmd.Context(), commands.CreateDeltaPackageOptions{
				WorkDir: opts.repo,
				Config:  cfg,
				DryRun:  opts.dryRun,
			})
			if summary != nil {
				if rerr := renderer.RenderResult(summary); rerr != nil {
					return rerr
				}
			}
			if err != nil {
				return err
			}
			if len(summary.Failures) > 0 {
				return errors.Newf(errors.ErrFilesystem, MsgErrFailures, len(summary.Failures))
			}
			return nil
		},
	}

	cmd.Flags().StringP("sourcefolder", "d", "", MsgFlagSourceFolder)
	cmd.Flags().StringP("output", "o", "", MsgFlagOutput)
	cmd.Flags().StringP("backend", "b", "", MsgFlagBackend)
	cmd.Flags().String("baseline", "", MsgFlagBaseline)
	cmd.Flags().Bool("exclude-renames", false, MsgFlagExcludeRenames)
	cmd.Flags().Bool("strict", false, MsgFlagStrict)
	cmd.Flags().Bool("manifest", false, MsgFlagManifest)
	addKeyFlags(cmd)

	_ = cmd.RegisterFlagCompletionFunc("backend", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return baseline.Backends, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("package", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{baseline.PackageCMT, baseline.PackageINS}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newClassifyCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "classify <path>...",
		Short:   MsgClassifyShort,
		Long:    MsgClassifyLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, overrides(cmd, []flagBinding{{"sourcefolder", "source.folder"}}))
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, cfg)
			if err != nil {
				return err
			}

			result, err := commands.ClassifyPaths(commands.ClassifyPathsOptions{
				WorkDir:      cfg.Diff.Repository,
				SourceFolder: cfg.Source.Folder,
				Paths:        args,
			})
			if err != nil {
				return err
			}
			return renderer.RenderResult(result)
		},
	}
	cmd.Flags().StringP("sourcefolder", "d", "", MsgFlagSourceFolder)
	return cmd
}

func newMarkCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mark [commit]",
		Short:   MsgMarkShort,
		Long:    MsgMarkLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ov := overrides(cmd, keyBindings)
			// mark only writes the file backend
			ov["baseline.backend"] = "file"
			cfg, err := opts.loadConfig(cmd, ov)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, cfg)
			if err != nil {
				return err
			}

			marker := ""
			if len(args) == 1 {
				marker = args[0]
			}
			result, err := commands.MarkBaseline(cmd.Context(), commands.MarkBaselineOptions{
				WorkDir: opts.repo,
				Config:  cfg,
				Marker:  marker,
			})
			if err != nil {
				return err
			}
			if machineReadable(cfg) {
				return renderer.RenderResult(result)
			}
			return renderer.RenderMessage(fmt.Sprintf(MsgMarkerRecorded, result.Key, result.Marker, result.Path))
		},
	}
	addKeyFlags(cmd)
	return cmd
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.GenConfig(commands.GenConfigOptions{
				WorkDir: opts.repo,
				Write:   write,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case !write:
				_, err = fmt.Fprint(out, result.ConfigContent)
			case len(result.FilesWritten) == 0:
				_, err = fmt.Fprintln(out, MsgConfigExists)
			default:
				_, err = fmt.Fprintf(out, MsgConfigWritten+"\n", result.FilesWritten[0])
			}
			return err
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
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(sfdelta completion bash)

Zsh:
  $ sfdelta completion zsh > "${fpath[1]}/_sfdelta"

Fish:
  $ sfdelta completion fish | source

PowerShell:
  PS> sfdelta completion powershell | Out-String | Invoke-Expression
`,
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

func machineReadable(cfg *config.Config) bool {
	format, err := ui.ParseFormat(cfg.Output.Format)
	return err == nil && (format == ui.FormatJSON || format == ui.FormatYAML)
}
