package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wtime/internal/app"
)

var (
	home       string
	configPath string
	appCtx     *app.App

	// wireOpts lets tests swap collaborators before PersistentPreRunE runs.
	wireOpts []app.WireOption
)

// Execute runs the CLI with os.Args.
func Execute() error {
	err := NewRoot().Execute()
	if cerr := closeApp(); err == nil {
		err = cerr
	}
	return err
}

// NewRoot builds the command tree.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "wtime",
		Short:        "A simple stopwatch",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				home = app.DefaultHome()
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			cfg, err := app.Load(home, configPath)
			if err != nil {
				return err
			}
			w, err := app.NewWire(contextOf(cmd), cfg, wireOpts...)
			if err != nil {
				return err
			}
			appCtx = app.New(contextOf(cmd), w)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeApp()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default $WTIME_HOME or ~/.wtime)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")

	root.AddCommand(
		statusCmd(),
		welcomeCmd(),
		contactsCmd(),
		notesCmd(),
		holdCmd(),
		panicCmd(),
		clearCmd(),
	)
	return root
}

// closeApp releases the graph built by PersistentPreRunE. Cobra skips the
// post-run hook when RunE fails, so Execute calls it too.
func closeApp() error {
	if appCtx == nil {
		return nil
	}
	err := appCtx.Close()
	appCtx = nil
	return err
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printf(cmd *cobra.Command, format string, a ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}
