package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

var (
	mediaDescription string
	mediaTitle       string
	mediaOwner       string
	mediaMimeType    string
	mediaTags        []string
	mediaListLimit   int
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage media items",
}

var mediaAddCmd = &cobra.Command{
	Use:   "add [uri]",
	Short: "Register a media item",
	Long: `Register an image or video by file path or URL so it can be enriched.

Examples:
  bonglore media add ./photos/durga-puja.jpg -d "Pandal in Kolkata"
  bonglore media add https://example.com/boat.mp4 --tags river,boat`,
	Args: cobra.ExactArgs(1),
	RunE: runMediaAdd,
}

var mediaShowCmd = &cobra.Command{
	Use:   "show [media-id]",
	Short: "Show a media item",
	Args:  cobra.ExactArgs(1),
	RunE:  runMediaShow,
}

var mediaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent media items",
	RunE:  runMediaList,
}

func init() {
	mediaAddCmd.Flags().StringVarP(&mediaDescription, "description", "d", "", "description of the item")
	mediaAddCmd.Flags().StringVar(&mediaTitle, "title", "", "title of the item")
	mediaAddCmd.Flags().StringVar(&mediaOwner, "owner", "", "owning user id")
	mediaAddCmd.Flags().StringVar(&mediaMimeType, "mime-type", "", "declared content type")
	mediaAddCmd.Flags().StringSliceVar(&mediaTags, "tags", nil, "initial tags")
	mediaListCmd.Flags().IntVarP(&mediaListLimit, "limit", "n", 20, "maximum number of items")

	mediaCmd.AddCommand(mediaAddCmd)
	mediaCmd.AddCommand(mediaShowCmd)
	mediaCmd.AddCommand(mediaListCmd)
	rootCmd.AddCommand(mediaCmd)
}

func runMediaAdd(cmd *cobra.Command, args []string) error {
	if mediaService == nil {
		return errors.New("media service not configured")
	}

	item, err := mediaService.Register(cmd.Context(), &domain.MediaItem{
		URI:         args[0],
		OwnerID:     mediaOwner,
		MimeType:    mediaMimeType,
		Description: mediaDescription,
		Title:       mediaTitle,
		Tags:        mediaTags,
	})
	if err != nil {
		return fmt.Errorf("failed to register media: %w", err)
	}

	cmd.Printf("Registered media %s\n", item.ID)
	cmd.Printf("Run 'bonglore enrich %s' to analyze it.\n", item.ID)
	return nil
}

func runMediaShow(cmd *cobra.Command, args []string) error {
	if mediaService == nil {
		return errors.New("media service not configured")
	}

	item, err := mediaService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get media: %w", err)
	}

	cmd.Printf("Media: %s\n", item.ID)
	cmd.Printf("  URI: %s\n", item.URI)
	if item.OwnerID != "" {
		cmd.Printf("  Owner: %s\n", item.OwnerID)
	}
	if item.Title != "" {
		cmd.Printf("  Title: %s\n", item.Title)
	}
	if item.Description != "" {
		cmd.Printf("  Description: %s\n", item.Description)
	}
	cmd.Printf("  Tags: %s\n", joinOrNone(item.Tags))
	cmd.Printf("  Bengali tags: %s\n", joinOrNone(item.BengaliTags))
	if item.Story != nil {
		cmd.Printf("  Story: %s\n", item.Story.Summary)
	}
	has := item.HasEmbeddings()
	for _, kind := range domain.AllEmbeddingKinds() {
		cmd.Printf("  %s embedding: %s\n", kind, yesNo(has[kind]))
	}
	cmd.Printf("  Updated: %s\n", item.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runMediaList(cmd *cobra.Command, _ []string) error {
	if mediaService == nil {
		return errors.New("media service not configured")
	}

	items, err := mediaService.List(cmd.Context(), mediaListLimit)
	if err != nil {
		return fmt.Errorf("failed to list media: %w", err)
	}
	if len(items) == 0 {
		cmd.Println("No media items. Add one with 'bonglore media add'.")
		return nil
	}

	for i := range items {
		title := items[i].Title
		if title == "" {
			title = items[i].URI
		}
		cmd.Printf("%s  %s  [%d tags]\n", items[i].ID, title, len(items[i].Tags))
	}
	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
