package main

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	providerOpenRouter = "openrouter"
	providerGemini     = "gemini"
	defaultPort        = "8000"
)

// env holds raw environment values.
type env struct {
	port           string
	provider       string
	openrouterKey  string
	geminiKey      string
	model          string
	allowedOrigins string
	referer        string
	catalogPath    string
}

type config struct {
	addr           string
	provider       string
	apiKey         string
	model          string
	allowedOrigins []string
	referer        string
	catalogPath    string
}

// resolveConfig selects the provider and applies defaults. It never reads
// the environment itself.
func resolveConfig(e env) (config, error) {
	port := e.port
	if port == "" {
		port = defaultPort
	}
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return config{}, fmt.Errorf("invalid PORT %q", e.port)
	}

	provider := e.provider
	if provider == "" {
		hasOpenRouter := e.openrouterKey != ""
		hasGemini := e.geminiKey != ""
		switch {
		case hasOpenRouter && hasGemini:
			return config{}, fmt.Errorf("multiple API keys found (OPENROUTER_API_KEY, GEMINI_API_KEY): set LOCALLINK_PROVIDER to select")
		case hasOpenRouter:
			provider = providerOpenRouter
		case hasGemini:
			provider = providerGemini
		default:
			return config{}, fmt.Errorf("no API key found: set OPENROUTER_API_KEY or GEMINI_API_KEY")
		}
	}

	var key string
	switch provider {
	case providerOpenRouter:
		key = e.openrouterKey
		if key == "" {
			return config{}, fmt.Errorf("OPENROUTER_API_KEY not set")
		}
	case providerGemini:
		key = e.geminiKey
		if key == "" {
			return config{}, fmt.Errorf("GEMINI_API_KEY not set")
		}
	default:
		return config{}, fmt.Errorf("unknown provider %q: must be \"openrouter\" or \"gemini\"", provider)
	}

	return config{
		addr:           ":" + port,
		provider:       provider,
		apiKey:         key,
		model:          e.model,
		allowedOrigins: splitOrigins(e.allowedOrigins),
		referer:        e.referer,
		catalogPath:    e.catalogPath,
	}, nil
}

// splitOrigins parses a comma-separated list. Empty input allows any
// origin.
func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
