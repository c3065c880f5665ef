// Package main provides the entry point for the pawpal CLI and TUI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	pawpal "github.com/five82/pawpal"
	"github.com/five82/pawpal/internal/apierror"
	"github.com/five82/pawpal/internal/app"
)

var globalConfig string

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "pawpal: %s\n", apierror.FormatMessage(err))
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		settingsPath string
		pollSeconds  int
	)

	rootCmd := &cobra.Command{
		Use:           "pawpal",
		Short:         "Browse adoptable animals from the terminal",
		Version:       pawpal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// the TUI logs to a file; everything else warns on stderr
			if cmd.Parent() != nil {
				slog.SetDefault(app.StderrLogger())
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath:   globalConfig,
				SettingsPath: settingsPath,
				PollEvery:    pollSeconds,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&globalConfig, "config", "", "Config file (default ~/.config/pawpal/config.toml)")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "UI settings file (default ~/.config/pawpal/settings.toml)")
	rootCmd.Flags().IntVar(&pollSeconds, "poll", 0, "API status check interval in seconds (default from config)")

	rootCmd.AddCommand(
		newSearchCmd(),
		newFavoritesCmd(),
		newChangelogCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// withEnv opens the shared environment for one subcommand.
func withEnv(cmd *cobra.Command, fn func(env *app.Env) error) error {
	env, err := app.Open(cmd.Context(), globalConfig)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()
	return fn(env)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pawpal version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pawpal %s\n", pawpal.Version)
		},
	}
}
