package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/pevans/patternsfeed/bridge"
	"github.com/pevans/patternsfeed/cache"
	"github.com/pevans/patternsfeed/config"
	"github.com/pevans/patternsfeed/scraper"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// loadConfig loads configuration with precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file (~/.patternsfeed/config.yaml)
// 3. Default values (lowest priority)
func loadConfig() *config.FileConfig {
	cfg, err := config.Load(os.Getenv("PATTERNSFEED_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Continuing with defaults and environment variables...\n\n")
		cfg = config.Default()
	}

	cfg.Lang = getEnv("PATTERNSFEED_LANG", cfg.Lang)
	cfg.Cache.DSN = getEnv("PATTERNSFEED_CACHE_DSN", cfg.Cache.DSN)
	cfg.Log.Level = getEnv("PATTERNSFEED_LOG_LEVEL", cfg.Log.Level)

	return cfg
}

// openCache opens the cache store, exiting on failure.
func openCache(cfg *config.FileConfig) *cache.Store {
	store, err := cache.NewStore(cfg.Cache.DSN, cfg.Cache.TTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open cache: %v\n", err)
		os.Exit(1)
	}
	return store
}

// newBridge builds a bridge from configuration. The returned close function
// releases the cache, if one was opened.
func newBridge(cfg *config.FileConfig, useCache bool) (*bridge.Bridge, func()) {
	fetcher := scraper.NewFetcher(&http.Client{Timeout: cfg.HTTP.Timeout}, cfg.HTTP.UserAgent)
	opts := []bridge.Option{bridge.WithSiteConfig(cfg.Site)}

	closeFn := func() {}
	if useCache && cfg.Cache.IsEnabled() {
		store := openCache(cfg)
		opts = append(opts, bridge.WithCache(store))
		closeFn = func() { store.Close() }
	}

	return bridge.New(fetcher, opts...), closeFn
}
