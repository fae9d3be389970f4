package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Routes:
  GET  /health
  GET  /metrics
  GET  /api/tags/suggest?q=&limit=
  POST /api/processing/media/{id}
  GET  /api/media/{id}

Processing routes require a bearer JWT signed with server.jwt_secret.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

// newAPIServer builds the HTTP server from the current settings.
func newAPIServer() (*httpapi.Server, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	cfg := httpapi.Config{
		Addr:        settings.Server.Addr,
		JWTSecret:   settings.Server.JWTSecret,
		CORSOrigins: settings.Server.CORSOrigins,
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	return httpapi.NewServer(httpapi.Ports{
		Enrichment: enrichmentService,
		Suggest:    suggestService,
		Media:      mediaService,
	}, cfg)
}

func runServe(cmd *cobra.Command, _ []string) error {
	server, err := newAPIServer()
	if err != nil {
		return err
	}

	cmd.Printf("Bong-Lore API listening on %s\n", server.Addr())
	return server.Run(cmd.Context())
}
