package services

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

// maxTagLength drops model chatter that slipped into the tag list.
const maxTagLength = 48

var (
	// listPrefix strips "1.", "2)", "-", "*" and "#" list markers.
	listPrefix = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•#])\s*`)

	// labelPrefix strips a leading "Tags:" label.
	labelPrefix = regexp.MustCompile(`(?i)^\s*tags?\s*:\s*`)

	// codeFence matches a fenced block, optionally tagged json.
	codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
)

// parseTags splits model output of the form "a|b|c" (commas and newlines
// also separate) into lowercase tags without duplicates, in output order.
func parseTags(output string) []string {
	output = labelPrefix.ReplaceAllString(strings.TrimSpace(output), "")
	fields := strings.FieldsFunc(output, func(r rune) bool {
		return r == '|' || r == ',' || r == '\n'
	})

	tags := []string{}
	seen := make(map[string]bool)
	for _, f := range fields {
		tag := listPrefix.ReplaceAllString(f, "")
		tag = strings.Trim(strings.TrimSpace(tag), `"'.`)
		tag = strings.ToLower(strings.Join(strings.Fields(tag), " "))
		if tag == "" || len(tag) > maxTagLength || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// storyJSON is the story shape requested from the model.
type storyJSON struct {
	Title           string `json:"title"`
	Summary         string `json:"summary"`
	Story           string `json:"story"`
	CulturalContext string `json:"cultural_context"`
}

// parseStory reads a JSON story, tolerating code fences and leading prose.
// Output that is not JSON becomes the summary.
func parseStory(output string) domain.Story {
	text := strings.TrimSpace(output)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		var s storyJSON
		if err := json.Unmarshal([]byte(text[start:end+1]), &s); err == nil {
			summary := strings.TrimSpace(s.Summary)
			if summary == "" {
				summary = strings.TrimSpace(s.Story)
			}
			return domain.Story{
				Title:           strings.TrimSpace(s.Title),
				Summary:         summary,
				CulturalContext: strings.TrimSpace(s.CulturalContext),
			}
		}
	}

	return domain.Story{Summary: text}
}
