package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/crules/internal/cli/topics"
	"github.com/arthur-debert/crules/internal/version"
	"github.com/arthur-debert/crules/pkg/config"
	"github.com/arthur-debert/crules/pkg/core"
	"github.com/arthur-debert/crules/pkg/errors"
	"github.com/arthur-debert/crules/pkg/filesystem"
	"github.com/arthur-debert/crules/pkg/logging"
	"github.com/arthur-debert/crules/pkg/paths"
	"github.com/arthur-debert/crules/pkg/rules"
	"github.com/arthur-debert/crules/pkg/templates"
	"github.com/arthur-debert/crules/pkg/ui"
	"github.com/arthur-debert/crules/pkg/ui/confirmations"
	"github.com/arthur-debert/crules/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the flags shared by every command
type globalOptions struct {
	verbosity  int
	force      bool
	format     string
	configFile string
	directory  string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}
	var (
		list   bool
		setup  bool
		legacy bool
		dir    bool
	)

	rootCmd := &cobra.Command{
		Use:     "crules [languages...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeLanguages(opts),
		RunE: runWith(opts, func(cmd *cobra.Command, env *core.Env, r ui.Renderer, args []string) error {
			switch {
			case setup:
				return runSetup(env, r, opts.force)
			case list:
				return runList(env, r)
			case len(args) == 0:
				return errors.New(errors.ErrInvalidInput, MsgErrNoLanguages)
			}

			genOpts := core.GenerateOptions{Languages: args, Force: opts.force}
			if legacy || dir {
				genOpts.Legacy = &legacy
			}
			summary, err := core.GenerateRules(env, genOpts)
			if err != nil {
				return err
			}
			return r.RenderResult(summary)
		}),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVarP(&opts.force, "force", "f", false, MsgFlagForce)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&opts.directory, "directory", "C", "", MsgFlagDirectory)

	rootCmd.Flags().BoolVarP(&list, "list", "l", false, MsgFlagList)
	rootCmd.Flags().BoolVarP(&setup, "setup", "s", false, MsgFlagSetup)
	rootCmd.Flags().BoolVar(&legacy, "legacy", false, MsgFlagLegacy)
	rootCmd.Flags().BoolVar(&dir, "dir", false, MsgFlagDir)
	rootCmd.MarkFlagsMutuallyExclusive("legacy", "dir")
	rootCmd.MarkFlagsMutuallyExclusive("list", "setup")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newSetupCmd(opts))
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newMatchCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())

	if _, err := topics.Initialize(rootCmd, helpTopics(), topics.Options{Renderer: topicRenderer()}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// topicRenderer styles markdown topics only when stdout is a terminal
func topicRenderer() topics.Renderer {
	if ui.IsTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "" {
		return topics.NewGlamourRenderer()
	}
	return &topics.PlainRenderer{}
}

// commandFunc is the body of a command once its environment is ready
type commandFunc func(cmd *cobra.Command, env *core.Env, r ui.Renderer, args []string) error

// runWith builds the environment and renderer for a command and renders
// any error it returns
func runWith(opts *globalOptions, fn commandFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		format, err := ui.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		r, err := ui.NewRenderer(format, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		env, err := newEnv(opts)
		if err == nil {
			err = fn(cmd, env, r, args)
		}
		if err != nil {
			if renderErr := r.RenderError(err); renderErr != nil {
				log.Error().Err(renderErr).Msg("Failed to render error")
				return err
			}
			return &renderedError{err}
		}
		return nil
	}
}

// renderedError marks an error the user has already seen
type renderedError struct {
	error
}

func (e *renderedError) Unwrap() error {
	return e.error
}

// IsRendered reports whether err was already shown to the user
func IsRendered(err error) bool {
	var re *renderedError
	return stderrors.As(err, &re)
}

// newEnv loads the configuration and wires the production collaborators
func newEnv(opts *globalOptions) (*core.Env, error) {
	workDir := opts.directory
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to determine working directory")
		}
		workDir = wd
	}

	configDir := paths.ConfigDir()
	configFile := paths.ConfigFilePath()
	if opts.configFile != "" {
		configFile = paths.ExpandHome(opts.configFile)
		configDir = filepath.Dir(configFile)
	}

	cfg, err := config.Load(config.LoadOptions{ConfigFile: configFile, WorkDir: workDir})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	log.Debug().
		Str("config_file", configFile).
		Str("work_dir", workDir).
		Bool("legacy", cfg.LegacyMode).
		Msg("Configuration loaded")

	// Without a terminal there is nobody to ask; overwrites then need --force
	var confirmer rules.Confirmer
	if console := confirmations.NewConsoleConfirmer(); console.Interactive() {
		confirmer = console
	}

	return &core.Env{
		FS:         filesystem.NewOS(),
		Config:     cfg,
		Diags:      logging.NewDiagnostics(logging.GetLogger("rules")),
		Confirmer:  confirmer,
		Templates:  templates.Default(),
		WorkDir:    workDir,
		ConfigDir:  configDir,
		ConfigFile: configFile,
	}, nil
}

// completeLanguages completes language identifiers from the language directory
func completeLanguages(opts *globalOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		env, err := newEnv(opts)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		list, err := core.ListLanguages(env)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		used := make(map[string]bool, len(args))
		for _, arg := range args {
			used[arg] = true
		}
		var ids []string
		for _, lang := range list.Languages {
			if !used[lang.ID] {
				ids = append(ids, lang.ID)
			}
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}

func runSetup(env *core.Env, r ui.Renderer, force bool) error {
	summary, err := core.Setup(env, force)
	if err != nil {
		return err
	}
	return r.RenderResult(summary)
}

func runList(env *core.Env, r ui.Renderer) error {
	list, err := core.ListLanguages(env)
	if err != nil {
		return err
	}
	return r.RenderResult(list)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: runWith(opts, func(cmd *cobra.Command, env *core.Env, r ui.Renderer, args []string) error {
			return runList(env, r)
		}),
	}
}

func newSetupCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: MsgSetupShort,
		Long:  MsgSetupLong,
		Args:  cobra.NoArgs,
		RunE: runWith(opts, func(cmd *cobra.Command, env *core.Env, r ui.Renderer, args []string) error {
			return runSetup(env, r, opts.force)
		}),
	}
}

func newShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "show <language>",
		Short:             MsgShowShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLanguages(opts),
		RunE: runWith(opts, func(cmd *cobra.Command, env *core.Env, r ui.Renderer, args []string) error {
			doc, err := core.ShowRules(env, args[0])
			if err != nil {
				return err
			}
			return r.RenderResult(doc)
		}),
	}
}

func newMatchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match <path>",
		Short: MsgMatchShort,
		Long:  MsgMatchLong,
		Args:  cobra.ExactArgs(1),
		RunE: runWith(opts, func(cmd *cobra.Command, env *core.Env, r ui.Renderer, args []string) error {
			result, err := core.MatchRules(env, args[0])
			if err != nil {
				return err
			}
			return r.RenderResult(result)
		}),
	}
}

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long:  MsgStatusLong,
		Args:  cobra.NoArgs,
		RunE: runWith(opts, func(cmd *cobra.Command, env *core.Env, r ui.Renderer, args []string) error {
			report, err := core.Status(env)
			if err != nil {
				return err
			}
			return r.RenderResult(report)
		}),
	}
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "gen-config",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		Args:  cobra.NoArgs,
		RunE: runWith(opts, func(cmd *cobra.Command, env *core.Env, r ui.Renderer, args []string) error {
			doc, err := core.GenerateConfig(env, write, opts.force)
			if err != nil {
				return err
			}
			if write {
				return r.RenderMessage(display.Message{
					Level: display.LevelSuccess,
					Text:  fmt.Sprintf(MsgConfigWritten, doc.Path),
				})
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), doc.Content)
			return err
		}),
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "completion <bash|zsh|fish|powershell>",
		Short:     MsgCompletionShort,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
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
