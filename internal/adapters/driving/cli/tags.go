package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var suggestLimit int

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Work with tags",
}

var tagsSuggestCmd = &cobra.Command{
	Use:   "suggest [text]",
	Short: "Suggest Bengali cultural tags for text",
	Long: `Suggest tags for free text. Curated Bengali tags come first,
followed by stored tags ranked by how often they have been used.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTagsSuggest,
}

func init() {
	tagsSuggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 10, "maximum number of tags")
	tagsCmd.AddCommand(tagsSuggestCmd)
	rootCmd.AddCommand(tagsCmd)
}

func runTagsSuggest(cmd *cobra.Command, args []string) error {
	if suggestService == nil {
		return errors.New("tag suggestion service not configured")
	}

	tags := suggestService.Suggest(cmd.Context(), strings.Join(args, " "), suggestLimit)
	if len(tags) == 0 {
		cmd.Println("No matching tags.")
		return nil
	}
	for _, tag := range tags {
		cmd.Println(tag)
	}
	return nil
}
