package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/pevans/patternsfeed/bridge"
	"github.com/pevans/patternsfeed/logging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := loadConfig()
	logging.SetLevel(cfg.Log.Level)

	subcommand := os.Args[1]

	switch subcommand {
	case "fetch":
		handleFetch(cfg, os.Args[2:])
	case "serve":
		handleServe(cfg, os.Args[2:])
	case "cache":
		if len(os.Args) < 3 {
			printCacheUsage()
			os.Exit(1)
		}
		handleCacheCommand(cfg, os.Args[2])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("patternsfeed - " + bridge.Description)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  patternsfeed <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  fetch      Collect posts and print them")
	fmt.Println("  serve      Serve the blog as an RSS/Atom/JSON feed")
	fmt.Println("  cache      Manage the result cache")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Languages:")
	names := make([]string, 0, len(bridge.Languages))
	for name := range bridge.Languages {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-10s %s\n", bridge.Languages[name], name)
	}
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  PATTERNSFEED_CONFIG     Path to config file (default: ~/.patternsfeed/config.yaml)")
	fmt.Println("  PATTERNSFEED_LANG       Default language (default: fr)")
	fmt.Println("  PATTERNSFEED_CACHE_DSN  Path to cache database (default: ~/.patternsfeed/cache.db)")
	fmt.Println("  PATTERNSFEED_LOG_LEVEL  Log level (default: info)")
}

func printCacheUsage() {
	fmt.Println("patternsfeed cache - Manage the result cache")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  patternsfeed cache <action>")
	fmt.Println()
	fmt.Println("Actions:")
	fmt.Println("  stats      Show cache statistics")
	fmt.Println("  purge      Remove expired entries")
	fmt.Println("  clear      Remove all entries")
	fmt.Println("  help       Show this help message")
}
