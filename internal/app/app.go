package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pawpal "github.com/five82/pawpal"
	"github.com/five82/pawpal/internal/notify"
	"github.com/five82/pawpal/internal/prefs"
	"github.com/five82/pawpal/internal/state"
	"github.com/five82/pawpal/internal/ui"
	"github.com/five82/pawpal/internal/whatsnew"
)

// Options configure the pawpal TUI.
type Options struct {
	ConfigPath   string
	SettingsPath string // empty uses default ~/.config/pawpal/settings.toml
	PollEvery    int    // seconds; zero uses the config value
}

// Run boots the pawpal TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	logFile, err := openLogFile(env.Config.LogPath(), env.Config.SlogLevel())
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	slog.Info("pawpal starting",
		"version", pawpal.Version,
		"api_url", env.Client.BaseURL(),
		"storage", env.StorageDriver,
		"authenticated", env.Config.HasCredentials())
	if !env.Config.HasCredentials() {
		slog.Warn("starting without credentials", "error", errNoCredentials)
	}

	settings := prefs.LoadSettings(opts.SettingsPath)
	store := &state.Store{}

	interval := env.Config.PollInterval()
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start background poller
	StartPoller(ctx, store, env.Client, interval)

	uiOpts := ui.Options{
		Context:       ctx,
		Client:        env.Client,
		Store:         store,
		Prefs:         env.Prefs,
		WhatsNew:      whatsnew.New(pawpal.Changelog, env.Prefs.LastSeen),
		Gate:          &notify.Gate{},
		Config:        &env.Config,
		Backend:       env.Backend,
		StorageDriver: env.StorageDriver,
		Settings:      settings,
		SettingsPath:  opts.SettingsPath,
		Version:       pawpal.Version,
	}
	if err := ui.Run(uiOpts); err != nil {
		if ctx.Err() != nil {
			// interrupted by a signal
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
