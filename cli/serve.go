// ABOUTME: HTTP API server subcommand
// ABOUTME: Starts the lead intake API backed by sqlite and Google Places
package cli

import (
	"database/sql"
	"log"

	"github.com/engrity/intake/config"
	"github.com/engrity/intake/places"
	"github.com/engrity/intake/web"
)

// ServeCommand starts the lead intake HTTP API.
func ServeCommand(database *sql.DB, cfg *config.Config) error {
	if cfg.GoogleAPIKey == "" {
		log.Println("warning: GOOGLE_API_KEY not set, address lookups will return no results")
	}

	placesClient := places.NewClient(cfg)
	server := web.NewServer(database, placesClient)

	log.Printf("Starting intake API on port %d...", cfg.Port)
	return server.Start(cfg.Port)
}
