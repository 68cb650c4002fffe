package main

import (
	"fmt"
	"os"

	"github.com/pevans/patternsfeed/config"
)

func handleCacheCommand(cfg *config.FileConfig, action string) {
	if action == "help" || action == "--help" || action == "-h" {
		printCacheUsage()
		return
	}

	store := openCache(cfg)
	defer store.Close()

	switch action {
	case "stats":
		stats, err := store.Stats()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Printf("Cache: %s\n", cfg.Cache.DSN)
		fmt.Printf("  TTL: %s\n", store.TTL())
		fmt.Printf("  Entries: %d\n", stats.Entries)
		fmt.Printf("  Expired: %d\n", stats.Expired)
		if !stats.OldestEntry.IsZero() {
			fmt.Printf("  Oldest entry: %s\n", stats.OldestEntry.Format("2006-01-02 15:04"))
		}
	case "purge":
		removed, err := store.Purge()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Printf("✓ Removed %d expired entries\n", removed)
	case "clear":
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Println("✓ Cache cleared")
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown cache command: %s\n\n", action)
		printCacheUsage()
		store.Close()
		os.Exit(1)
	}
}
