package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pevans/patternsfeed/config"
	"github.com/pevans/patternsfeed/logging"
	"github.com/pevans/patternsfeed/server"
)

func handleServe(cfg *config.FileConfig, args []string) {
	// Parse flags for serve command
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", getEnv("PATTERNSFEED_ADDR", cfg.Server.Addr), "Listen address (PATTERNSFEED_ADDR)")
	noCache := fs.Bool("no-cache", false, "Bypass the result cache")
	fs.Parse(args)

	log := logging.NewLogger("main")

	b, closeFn := newBridge(cfg, !*noCache)
	defer closeFn()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("addr", *addr).Bool("cache", !*noCache && cfg.Cache.IsEnabled()).Msg("Serving feed")
	if err := server.New(b).Start(ctx, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
		closeFn()
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}
