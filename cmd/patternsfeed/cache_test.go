package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pevans/patternsfeed/cache"
	"github.com/pevans/patternsfeed/config"
	"github.com/pevans/patternsfeed/newsfeed"
)

func testCacheConfig(t *testing.T) *config.FileConfig {
	t.Helper()
	cfg := config.Default()
	cfg.Cache.DSN = filepath.Join(t.TempDir(), "cache.db")
	return cfg
}

func TestHandleCacheCommand_HelpSkipsStore(t *testing.T) {
	cfg := testCacheConfig(t)

	handleCacheCommand(cfg, "help")

	_, err := os.Stat(cfg.Cache.DSN)
	assert.True(t, os.IsNotExist(err), "help should not open the cache")
}

func TestHandleCacheCommand_Clear(t *testing.T) {
	cfg := testCacheConfig(t)

	store, err := cache.NewStore(cfg.Cache.DSN, cfg.Cache.TTL)
	require.NoError(t, err)
	require.NoError(t, store.Set("https://iampatterns.fr/blog/", "fr", []newsfeed.FeedItem{{Title: "Bonjour"}}))
	require.NoError(t, store.Close())

	handleCacheCommand(cfg, "clear")

	store, err = cache.NewStore(cfg.Cache.DSN, cfg.Cache.TTL)
	require.NoError(t, err)
	defer store.Close()
	_, found, err := store.Get("https://iampatterns.fr/blog/", "fr")
	require.NoError(t, err)
	assert.False(t, found)
}
