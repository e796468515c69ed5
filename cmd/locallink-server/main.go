// Command locallink-server is the LocalLink bot endpoint. It answers
// POST /chat by asking an upstream model for a reply.
//
// Usage:
//
//	OPENROUTER_API_KEY=sk-... locallink-server [flags]
//	GEMINI_API_KEY=gk-...     locallink-server [flags]
//
// Flags:
//
//	-env string  Path to a .env file (default: .env, ignored when missing)
//
// Environment:
//
//	PORT                       Listen port (default: 8000)
//	LOCALLINK_PROVIDER         openrouter, gemini (auto-detected from keys if omitted)
//	OPENROUTER_API_KEY         OpenRouter API key
//	GEMINI_API_KEY             Gemini API key
//	LOCALLINK_MODEL            Model ID (default: provider default)
//	LOCALLINK_ALLOWED_ORIGINS  Comma-separated CORS origins (default: *)
//	LOCALLINK_REFERER          HTTP-Referer sent to OpenRouter
//	LOCALLINK_CATALOG          Path to a services catalog YAML (default: built in)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fwojciec/locallink"
	"github.com/fwojciec/locallink/catalog"
	"github.com/fwojciec/locallink/gemini"
	"github.com/fwojciec/locallink/openrouter"
	"github.com/fwojciec/locallink/server"
	"github.com/joho/godotenv"
)

const defaultEnvPath = ".env"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "locallink-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	envPath := flag.String("env", defaultEnvPath, "Path to a .env file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	// Tolerate a missing default .env; fail on all other errors.
	if err := godotenv.Load(*envPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) || *envPath != defaultEnvPath {
			return fmt.Errorf("load env: %w", err)
		}
	}

	// Env vars are read here and passed as values.
	cfg, err := resolveConfig(env{
		port:           os.Getenv("PORT"),
		provider:       os.Getenv("LOCALLINK_PROVIDER"),
		openrouterKey:  os.Getenv("OPENROUTER_API_KEY"),
		geminiKey:      os.Getenv("GEMINI_API_KEY"),
		model:          os.Getenv("LOCALLINK_MODEL"),
		allowedOrigins: os.Getenv("LOCALLINK_ALLOWED_ORIGINS"),
		referer:        os.Getenv("LOCALLINK_REFERER"),
		catalogPath:    os.Getenv("LOCALLINK_CATALOG"),
	})
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg.catalogPath)
	if err != nil {
		return err
	}

	completer, err := newCompleter(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := server.New(completer,
		server.WithLogger(logger),
		server.WithAllowedOrigins(cfg.allowedOrigins...),
		server.WithSystemPrompt(catalog.Prompt(cat)),
		server.WithModel(cfg.model),
	)

	httpSrv := &http.Server{
		Addr:              cfg.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("listening",
		"addr", cfg.addr,
		"provider", cfg.provider,
		"services", len(cat.Services),
		"faqs", len(cat.FAQs))
	return serve(ctx, httpSrv)
}

func loadCatalog(path string) (locallink.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

func newCompleter(ctx context.Context, cfg config, logger *slog.Logger) (locallink.Completer, error) {
	switch cfg.provider {
	case providerGemini:
		c, err := gemini.New(ctx, cfg.apiKey, gemini.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		opts := []openrouter.Option{openrouter.WithLogger(logger)}
		if cfg.referer != "" {
			opts = append(opts, openrouter.WithReferer(cfg.referer))
		}
		return openrouter.New(cfg.apiKey, opts...), nil
	}
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
