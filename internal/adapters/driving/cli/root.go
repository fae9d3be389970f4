// Package cli provides the bonglore command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driving"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// Driving ports used by the commands. Set by SetServices before Execute.
var (
	enrichmentService driving.EnrichmentService
	suggestService    driving.TagSuggestionService
	mediaService      driving.MediaService
	settingsService   driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "bonglore",
	Short: "Bong-Lore media enrichment backend",
	Long: `Bong-Lore derives tags, a story and embeddings for uploaded images
and videos, and suggests Bengali cultural tags for free text.

Run 'bonglore serve' to start the HTTP API, or drive the pipeline
directly with 'bonglore enrich' and 'bonglore tags suggest'.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Services holds the driving ports the CLI dispatches to.
type Services struct {
	Enrichment driving.EnrichmentService
	Suggest    driving.TagSuggestionService
	Media      driving.MediaService
	Settings   driving.SettingsService
}

// SetServices injects the driving ports.
func SetServices(s Services) {
	enrichmentService = s.Enrichment
	suggestService = s.Suggest
	mediaService = s.Media
	settingsService = s.Settings
}

// SetVersion sets the version reported by 'bonglore version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Long running commands stop when ctx is
// cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
