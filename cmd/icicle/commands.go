package icicle

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/icicle/internal/version"
	"github.com/arthur-debert/icicle/pkg/cobrax/topics"
	"github.com/arthur-debert/icicle/pkg/commands"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/paths"
	"github.com/arthur-debert/icicle/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "icicle",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			if _, err := ui.ParseFormat(g.format); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.format, "format", "", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVarP(&g.dir, "dir", "C", "", MsgFlagDir)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{ID: "toolchains", Title: "TOOLCHAINS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "session", Title: "SESSION:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInstallCmd(g))
	rootCmd.AddCommand(newUninstallCmd(g))
	rootCmd.AddCommand(newDefaultCmd(g))
	rootCmd.AddCommand(newListCmd(g))
	rootCmd.AddCommand(newUseCmd(g))
	rootCmd.AddCommand(newCurrentCmd(g))
	rootCmd.AddCommand(newEnvCmd(g))
	rootCmd.AddCommand(newRunCmd(g))
	rootCmd.AddCommand(newPruneCmd(g))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	opts := topics.Options{
		Extensions: []string{".txt", ".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if err := topics.InitializeWithOptions(rootCmd, helpTopics(), opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// versionsCompletion completes installed versions
func versionsCompletion(g *globalOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		rt, err := g.loadRuntime(paths.ModeBootstrap)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		versions, err := rt.Store.List()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return versions, cobra.ShellCompDirectiveNoFileComp
	}
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func newInstallCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "install [version]",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "toolchains",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.loadRuntime(paths.ModeCommand)
			if err != nil {
				return err
			}

			opts := commands.InstallOptions{Runtime: rt, Version: optionalArg(args)}
			if w := g.progressWriter(); w != nil {
				opts.Progress = w
			}
			result, err := commands.Install(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return g.render(cmd, rt, result)
		},
	}
}

func newUninstallCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "uninstall [version]",
		Short:             MsgUninstallShort,
		Long:              MsgUninstallLong,
		GroupID:           "toolchains",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: versionsCompletion(g),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.loadRuntime(paths.ModeCommand)
			if err != nil {
				return err
			}
			result, err := commands.Uninstall(cmd.Context(), commands.UninstallOptions{
				Runtime: rt,
				Version: optionalArg(args),
			})
			if err != nil {
				return err
			}
			return g.render(cmd, rt, result)
		},
	}
}

func newDefaultCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "default <version>",
		Short:             MsgDefaultShort,
		Long:              MsgDefaultLong,
		GroupID:           "toolchains",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: versionsCompletion(g),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.loadRuntime(paths.ModeCommand)
			if err != nil {
				return err
			}
			result, err := commands.SetDefault(cmd.Context(), commands.SetDefaultOptions{
				Runtime: rt,
				Version: optionalArg(args),
			})
			if err != nil {
				return err
			}
			return g.render(cmd, rt, result)
		},
	}
}

func newListCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "toolchains",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.loadRuntime(paths.ModeCommand)
			if err != nil {
				return err
			}
			result, err := commands.List(commands.ListOptions{Runtime: rt})
			if err != nil {
				return err
			}
			return g.render(cmd, rt, result)
		},
	}
}

func newUseCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "use [version|alias]",
		Short:             MsgUseShort,
		Long:              MsgUseLong,
		Example:           MsgUseExample,
		GroupID:           "session",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: versionsCompletion(g),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.loadRuntime(paths.ModeCommand)
			if err != nil {
				return err
			}
			result, err := commands.Use(cmd.Context(), commands.UseOptions{
				Runtime: rt,
				Version: optionalArg(args),
			})
			if err != nil {
				return err
			}
			return g.render(cmd, rt, result)
		},
	}
}

func newCurrentCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "current",
		Short:   MsgCurrentShort,
		Long:    MsgCurrentLong,
		GroupID: "session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.loadRuntime(paths.ModeCommand)
			if err != nil {
				return err
			}
			result, err := commands.Current(commands.CurrentOptions{Runtime: rt})
			if err != nil {
				return err
			}
			return g.render(cmd, rt, result)
		},
	}
}

func newEnvCmd(g *globalOptions) *cobra.Command {
	var (
		shellName string
		ownerPID  int
	)

	cmd := &cobra.Command{
		Use:     "env",
		Short:   MsgEnvShort,
		Long:    MsgEnvLong,
		GroupID: "session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.loadRuntime(paths.ModeBootstrap)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("pid") {
				ownerPID = os.Getppid()
			}
			result, err := commands.Env(commands.EnvOptions{
				Runtime:  rt,
				Shell:    shellName,
				OwnerPID: ownerPID,
			})
			if err != nil {
				return err
			}
			return g.render(cmd, rt, result)
		},
	}

	cmd.Flags().StringVar(&shellName, "shell", "", MsgFlagShell)
	cmd.Flags().IntVar(&ownerPID, "pid", 0, MsgFlagPID)
	_ = cmd.RegisterFlagCompletionFunc("shell", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"bash", "fish", "zsh"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newRunCmd(g *globalOptions) *cobra.Command {
	var toolchain string

	cmd := &cobra.Command{
		Use:     "run <script>",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		GroupID: "session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.loadRuntime(paths.ModeBootstrap)
			if err != nil {
				return err
			}
			result, err := commands.Run(cmd.Context(), commands.RunOptions{
				Runtime:   rt,
				Script:    args[0],
				Toolchain: toolchain,
				Stdin:     cmd.InOrStdin(),
				Stdout:    cmd.OutOrStdout(),
				Stderr:    cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			return g.render(cmd, rt, result)
		},
	}

	cmd.Flags().StringVarP(&toolchain, "toolchain", "t", "", MsgFlagToolchain)
	return cmd
}

func newPruneCmd(g *globalOptions) *cobra.Command {
	var (
		dryRun bool
		maxAge string
	)

	cmd := &cobra.Command{
		Use:     "prune",
		Short:   MsgPruneShort,
		Long:    MsgPruneLong,
		GroupID: "session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.loadRuntime(paths.ModeBootstrap)
			if err != nil {
				return err
			}
			age := rt.Config.Sessions.MaxAge
			if cmd.Flags().Changed("max-age") {
				if age, err = parseDuration(maxAge); err != nil {
					return err
				}
			}
			result, err := commands.Prune(cmd.Context(), commands.PruneOptions{
				Runtime: rt,
				MaxAge:  age,
				DryRun:  dryRun,
			})
			if err != nil {
				return err
			}
			return g.render(cmd, rt, result)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().StringVar(&maxAge, "max-age", "", MsgFlagMaxAge)
	return cmd
}

func newGenConfigCmd(g *globalOptions) *cobra.Command {
	var write, force, effective bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := g.loadRuntime(paths.ModeBootstrap)
			if err != nil {
				return err
			}
			result, err := commands.GenConfig(commands.GenConfigOptions{
				Runtime:   rt,
				Effective: effective,
				Write:     write,
				Force:     force,
			})
			if err != nil {
				return err
			}
			return g.render(cmd, rt, result)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd == nil || helpCmd.Name() != "help" || helpCmd.Run == nil {
				return fmt.Errorf("help command not found")
			}
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	default:
		return fmt.Errorf("unsupported shell %q", shell)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date, logging.LogFilePath())
		},
	}
}
