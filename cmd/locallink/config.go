package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fwojciec/locallink"
	"github.com/fwojciec/locallink/fs"
	"github.com/fwojciec/locallink/gateway"
	"github.com/fwojciec/locallink/sqlite"
)

const (
	storeFile   = "file"
	storeSQLite = "sqlite"
)

// flags holds raw command-line values.
type flags struct {
	endpoint string
	store    string
	dataDir  string
	key      string
	theme    string
	logPath  string
	clear    bool
}

type config struct {
	endpoint string
	store    string
	dataDir  string
	key      string
	theme    locallink.ThemeMode
	logPath  string
	clear    bool
}

// resolveConfig applies defaults and validates flag values. All env var
// values are passed in as parameters; env is only read in main().
func resolveConfig(f flags, envEndpoint, home string) (config, error) {
	cfg := config{
		endpoint: f.endpoint,
		store:    f.store,
		dataDir:  f.dataDir,
		key:      f.key,
		logPath:  f.logPath,
		clear:    f.clear,
	}

	// Explicit flag overrides env var.
	if cfg.endpoint == "" {
		cfg.endpoint = envEndpoint
	}
	if cfg.endpoint == "" {
		cfg.endpoint = gateway.DefaultEndpoint
	}

	switch cfg.store {
	case "":
		cfg.store = storeFile
	case storeFile, storeSQLite:
	default:
		return config{}, fmt.Errorf("unknown store %q: must be \"file\" or \"sqlite\"", f.store)
	}

	if cfg.dataDir == "" {
		if home == "" {
			home = "."
		}
		cfg.dataDir = filepath.Join(home, ".locallink")
	}
	if cfg.key == "" {
		cfg.key = locallink.DefaultSlotKey
	}
	if cfg.logPath == "" {
		cfg.logPath = filepath.Join(cfg.dataDir, "locallink.log")
	}

	theme, err := locallink.ParseThemeMode(f.theme)
	if err != nil {
		return config{}, err
	}
	cfg.theme = theme
	return cfg, nil
}

// openSlot creates the durable slot selected by cfg.store. The returned
// function releases it.
func openSlot(cfg config, logger *slog.Logger) (locallink.Slot, func() error, error) {
	switch cfg.store {
	case storeSQLite:
		s, err := sqlite.Open(filepath.Join(cfg.dataDir, "locallink.db"), sqlite.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return fs.New(cfg.dataDir, fs.WithLogger(logger)), func() error { return nil }, nil
	}
}

// openLog opens path for appending and returns a text logger writing to
// it. Stdout belongs to the TUI, so logs never go there.
func openLog(path string) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}
