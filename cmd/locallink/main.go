// Command locallink is the LocalLink campus chat client.
//
// Usage:
//
//	locallink [flags]
//
// Flags:
//
//	-endpoint string  Bot endpoint URL (default: $LOCALLINK_ENDPOINT or http://127.0.0.1:8000/chat)
//	-store string     History store: file, sqlite (default: file)
//	-data-dir string  Directory for history and logs (default: ~/.locallink)
//	-key string       Slot key the transcript is saved under (default: localLinkChatMessages)
//	-theme string     Color theme: dark, light (default: dark)
//	-log string       Log file path (default: <data-dir>/locallink.log)
//	-clear            Discard saved history before starting
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/fwojciec/locallink"
	bt "github.com/fwojciec/locallink/bubbletea"
	"github.com/fwojciec/locallink/chat"
	"github.com/fwojciec/locallink/gateway"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "locallink: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var f flags
	flag.StringVar(&f.endpoint, "endpoint", "", "Bot endpoint URL")
	flag.StringVar(&f.store, "store", "", "History store: file, sqlite")
	flag.StringVar(&f.dataDir, "data-dir", "", "Directory for history and logs")
	flag.StringVar(&f.key, "key", "", "Slot key the transcript is saved under")
	flag.StringVar(&f.theme, "theme", "", "Color theme: dark, light")
	flag.StringVar(&f.logPath, "log", "", "Log file path")
	flag.BoolVar(&f.clear, "clear", false, "Discard saved history before starting")
	flag.Parse()

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Env vars are read here and passed as values.
	home, _ := os.UserHomeDir()
	cfg, err := resolveConfig(f, os.Getenv("LOCALLINK_ENDPOINT"), home)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(cfg.logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	slot, closeSlot, err := openSlot(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSlot(); err != nil {
			logger.Error("close slot", "error", err)
		}
	}()

	if cfg.clear {
		if err := slot.Delete(ctx, cfg.key); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
	}

	store := chat.NewStore(slot, chat.WithKey(cfg.key), chat.WithStoreLogger(logger))
	store.Load(ctx)

	gw := gateway.New(cfg.endpoint, gateway.WithLogger(logger))
	flow := chat.NewFlow(store, gw, chat.WithLogger(logger))

	logger.Info("starting",
		"endpoint", gw.Endpoint(),
		"store", cfg.store,
		"key", cfg.key,
		"history", store.Len())

	send := func(ctx context.Context, text string, onEvent func(locallink.Event)) error {
		_, err := flow.Submit(ctx, text, chat.WithEventHandler(onEvent))
		return err
	}

	tuiConfig := bt.DefaultConfig()
	tuiConfig.Theme = cfg.theme
	tuiModel := bt.New(send, store.Messages(), tuiConfig)

	if err := bt.Run(ctx, tuiModel); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}
