package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pable/csinsights/internal/server"
	"github.com/pable/csinsights/internal/storage"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP backend",
	Long: `Run the HTTP backend:

  GET  /health
  GET  /api/faceit/players/by-nickname/:nickname
  GET  /api/faceit/players/:playerId/matches?game=cs2&limit=20&offset=0
  POST /api/faceit/matches/:matchId/analyze   body: {"map": "mirage"} (optional)

FACEIT routes need FACEIT_API_KEY. Without it, analyze still works and
takes the map from the request body only.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (overrides server.listen and $PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Listen
	if serveListen != "" {
		addr = serveListen
	}

	client := newFaceitClient()
	if !client.HasKey() {
		logger.Warn("FACEIT_API_KEY not set; proxy routes will return 500 and maps will not be resolved")
	}

	var cache *storage.DB
	if cfg.Cache.Enabled {
		db, err := openStorage()
		if err != nil {
			return err
		}
		defer db.Close()
		cache = db
	}

	resolver := server.NewResolver(client, cache, cfg.Cache.TTL, logger)
	srv := server.New(client, resolver, logger, server.Options{Gzip: cfg.Server.Gzip})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
