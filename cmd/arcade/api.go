package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-arcade/internal/platform/httpapi"
	"github.com/vovakirdan/tile-arcade/internal/scores"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

var (
	flagAPIAddr string
	flagVerbose bool
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the leaderboard as JSON over HTTP",
	Long: `Start a read-only HTTP API over the scores database.

Endpoints:
  GET /health
  GET /api/modes
  GET /api/scores/{mode}?limit=N
  GET /api/scores/{mode}/best

Examples:
  arcade api
  arcade api --addr :9090 --db ./scores.db
  curl localhost:8080/api/scores/match3?limit=5`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (host:port)")
	apiCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every request")
}

func runAPI(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade-api",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	board := scores.New(store, scores.WithLogger(logger.WithPrefix("scores")))
	server := httpapi.New(board, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving leaderboard on http://localhost:%s\n", portOf(flagAPIAddr))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(ctx, flagAPIAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
