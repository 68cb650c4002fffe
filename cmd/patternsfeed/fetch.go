package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pevans/patternsfeed/bridge"
	"github.com/pevans/patternsfeed/config"
)

func handleFetch(cfg *config.FileConfig, args []string) {
	// Parse flags for fetch command
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	lang := fs.String("lang", cfg.Lang, "Blog language: fr or en")
	format := fs.String("format", "table", "Output format: table, json, rss, atom, markdown")
	noCache := fs.Bool("no-cache", false, "Bypass the result cache")
	fs.Parse(args)

	write, ok := outputFormats[*format]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: --format must be one of table, json, rss, atom, markdown\n")
		os.Exit(1)
	}

	b, closeFn := newBridge(cfg, !*noCache)
	defer closeFn()

	feed, err := b.Feed(context.Background(), bridge.ParseLanguage(*lang))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeFn()
		os.Exit(1)
	}

	if err := write(os.Stdout, feed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write output: %v\n", err)
		closeFn()
		os.Exit(1)
	}
}
