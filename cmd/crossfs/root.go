package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/crossfs/pkg/crossfs"
	"github.com/arthur-debert/crossfs/pkg/crossfs/config"
)

// app is the state shared by all subcommands once the root command has
// loaded the configuration.
type app struct {
	configFile string
	logLevel   string

	cfg    *config.Config
	logger zerolog.Logger
	fs     *crossfs.FS
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	level, err := crossfs.LogLevelFromString(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	stderr := cmd.ErrOrStderr()
	if f, ok := stderr.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		a.logger = crossfs.NewColorLogger(stderr, level)
	} else {
		a.logger = crossfs.NewLogger(stderr, level)
	}

	a.cfg = cfg
	a.fs = crossfs.NewOS().WithOptions(cfg.Operations(a.logger))
	a.logger.Debug().Str("config", cfg.File).Str("log_level", cfg.LogLevel).Msg("configuration loaded")
	return nil
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "crossfs",
		Short: "Cross-platform path and filesystem utilities",
		Long: `crossfs manipulates POSIX and Windows paths lexically, walks directory
trees in several orders, and copies, removes or lists whole trees.
Batches of operations can be stored as JSON plans and executed later.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/crossfs/config.toml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn or error")

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newEnvCommand())
	rootCmd.AddCommand(newPathCommands(a)...)
	rootCmd.AddCommand(newTreeCommands(a)...)
	rootCmd.AddCommand(newPlanCommand(a))
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "crossfs:", err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  `Print the version number of crossfs`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "crossfs version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
