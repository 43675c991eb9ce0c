package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hopper/internal/platform/web"
)

var (
	flagWebAddr  string
	flagAllowAll bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the browser version",
	Long: `Start an HTTP server with the browser version of the game.

Open the address in a browser: Space or a click jumps, Escape ends the run
or leaves the end screen. Each browser tab plays its own session, simulated
on the server and recorded to the replay database unless --db is empty.

Endpoints:
  /                  - Game page
  /ws                - Game websocket
  /api/replays       - Recorded replays
  /api/replays/{id}  - One replay with its events
  /healthz           - Health check

Examples:
  hopper web
  hopper web --addr :9000 --allow-all-origins`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address")
	webCmd.Flags().BoolVar(&flagAllowAll, "allow-all-origins", false, "Allow all CORS origins")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr, "hopper-web")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runnerCfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := openStore()
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := web.Config{
		Address:  flagWebAddr,
		TickRate: flagFPS,
		Seed:     flagSeed,
		AllowAll: flagAllowAll,
		Runner:   runnerCfg,
	}

	server, err := web.New(cfg, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
