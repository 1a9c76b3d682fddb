package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/studytime/internal/config"
	"github.com/balkashynov/studytime/internal/db"
	"github.com/balkashynov/studytime/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	ConfigFile string
	Verbose    bool
}

// app is filled in by the root pre-run hook; subcommands read it once
// startup has succeeded.
type app struct {
	opts     *RootOptions
	settings *config.Settings
	theme    tui.Theme
	store    *db.Store
}

// startup loads settings, picks the theme and opens the store. Every error
// here is fatal.
func (a *app) startup(cmd *cobra.Command) error {
	settings, err := config.Load(a.opts.ConfigFile)
	if err != nil {
		return err
	}

	theme, err := tui.ThemeByName(settings.Theme)
	if err != nil {
		return &config.StartupError{Reason: "invalid theme", Err: err}
	}

	var opts []db.Option
	if a.opts.Verbose {
		opts = append(opts, db.WithLogger(cmd.ErrOrStderr(), logger.Info))
	}

	store, err := db.Initialize(settings, opts...)
	if err != nil {
		return err
	}

	a.settings = settings
	a.theme = theme
	a.store = store
	return nil
}

func (a *app) shutdown() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// NewRootCommand creates the studytime command tree
func NewRootCommand() *cobra.Command {
	a := &app{opts: &RootOptions{}}

	cmd := &cobra.Command{
		Use:   "studytime",
		Short: "A study time tracker for the terminal",
		Long: `studytime keeps a list of the subjects you study and times each study session.
Run it without arguments for the interactive menu, or use the subcommands below.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true, // main prints the error
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.startup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.shutdown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tui.Run(a.store, a.theme, cmd.OutOrStdout()); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&a.opts.ConfigFile, "config", "c", config.DefaultConfigFile, "settings file (JSON)")
	cmd.PersistentFlags().BoolVarP(&a.opts.Verbose, "verbose", "v", false, "log SQL and schema checks to stderr")

	cmd.AddCommand(newSubjectCommand(a))
	cmd.AddCommand(newStartCommand(a))
	cmd.AddCommand(newStopCommand(a))
	cmd.AddCommand(newStatusCommand(a))
	cmd.AddCommand(newSessionsCommand(a))
	cmd.AddCommand(newSummaryCommand(a))
	cmd.AddCommand(newVersionCommand())
	cmd.SetHelpCommand(newHelpCommand())

	return cmd
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Needs neither settings nor the store
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "studytime %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// printErr renders a repository error for the user; the command itself
// still succeeds.
func printErr(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
}
