package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	pawpal "github.com/five82/pawpal"
	"github.com/five82/pawpal/internal/config"
	"github.com/five82/pawpal/internal/kv"
	"github.com/five82/pawpal/internal/kv/bolt"
	"github.com/five82/pawpal/internal/kv/sqlite"
	"github.com/five82/pawpal/internal/prefs"
	"github.com/five82/pawpal/internal/rescue"
)

// StorageMemory names the in-process fallback used when the database
// cannot be opened.
const StorageMemory = "memory"

// Env bundles the collaborators shared by the TUI and the subcommands.
type Env struct {
	Config        config.Config
	Client        *rescue.Client
	Backend       kv.Store
	StorageDriver string
	Prefs         *prefs.Set
}

// Open loads configuration, opens preference storage and builds the API
// client. Callers must Close the returned Env.
func Open(ctx context.Context, configPath string) (*Env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	backend, driver := openBackend(cfg)

	set, err := prefs.OpenSet(ctx, backend)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("open preferences: %w", err)
	}

	client, err := rescue.NewClient(rescue.Options{
		BaseURL:      cfg.APIURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		UserAgent:    "pawpal/" + pawpal.Version,
		Timeout:      cfg.RequestTimeout(),
	})
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	return &Env{
		Config:        cfg,
		Client:        client,
		Backend:       backend,
		StorageDriver: driver,
		Prefs:         set,
	}, nil
}

// Close releases the preference storage.
func (e *Env) Close() error {
	if e == nil || e.Backend == nil {
		return nil
	}
	return e.Backend.Close()
}

// openBackend opens the configured database. Preferences must stay usable
// even when the file is locked or corrupt, so failures fall back to memory.
func openBackend(cfg config.Config) (kv.Store, string) {
	path := cfg.DatabasePath()

	var (
		store kv.Store
		err   error
	)
	switch cfg.Storage {
	case config.StorageSQLite:
		store, err = sqlite.Open(path)
	default:
		store, err = bolt.Open(path)
	}
	if err != nil {
		slog.Warn("preference storage unavailable, using memory", "driver", cfg.Storage, "path", path, "error", err)
		return kv.NewMemory(), StorageMemory
	}
	slog.Debug("preference storage opened", "driver", cfg.Storage, "path", path)
	if cfg.Storage == config.StorageSQLite {
		return store, config.StorageSQLite
	}
	return store, config.StorageBolt
}

// openLogFile installs a text slog handler writing to path as the default
// logger. The terminal belongs to the TUI, so nothing is logged to stderr.
func openLogFile(path string, level slog.Level) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})))
	return file, nil
}

// StderrLogger returns the warn-level logger used by non-interactive commands.
func StderrLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

var errNoCredentials = errors.New("no API credentials configured (set client_id/client_secret or PAWPAL_CLIENT_ID/PAWPAL_CLIENT_SECRET)")
