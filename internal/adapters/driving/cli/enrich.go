package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

var enrichJSON bool

var enrichCmd = &cobra.Command{
	Use:   "enrich [media-id]",
	Short: "Enrich a media item",
	Long: `Analyze a registered media item and store its tags, story, Bengali
tags and embeddings.

Content analysis failures abort the run. A failed embedding is reported
and left out; the rest of the result is still saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrich,
}

func init() {
	enrichCmd.Flags().BoolVar(&enrichJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	if enrichmentService == nil {
		return errors.New("enrichment service not configured")
	}

	res := enrichmentService.Enrich(cmd.Context(), domain.EnrichRequest{MediaID: args[0]})

	if enrichJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		cmd.Println(string(data))
	}
	if !res.Success {
		return fmt.Errorf("enrichment failed: %s", res.Error)
	}
	if enrichJSON {
		return nil
	}

	cmd.Printf("Enriched %s\n", args[0])
	if res.Media != nil && res.Media.Title != "" {
		cmd.Printf("  Title: %s\n", res.Media.Title)
	}
	cmd.Printf("  Tags: %s\n", joinOrNone(res.Tags))
	if res.Media != nil {
		cmd.Printf("  Bengali tags: %s\n", joinOrNone(res.Media.BengaliTags))
	}
	if res.Story != nil {
		cmd.Printf("  Story: %s\n", res.Story.Summary)
		if res.Story.CulturalContext != "" {
			cmd.Printf("  Cultural context: %s\n", res.Story.CulturalContext)
		}
	}
	if len(res.Failed) > 0 {
		kinds := make([]string, len(res.Failed))
		for i, k := range res.Failed {
			kinds[i] = string(k)
		}
		cmd.Printf("  Embeddings not generated: %s\n", strings.Join(kinds, ", "))
	}

	return nil
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
