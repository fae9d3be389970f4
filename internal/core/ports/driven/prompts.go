package driven

// PromptStore provides access to prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptTags asks the vision model for tags.
	// The template expects a %s placeholder for the caller's description.
	PromptTags = "tags"

	// PromptStory asks the vision model for a JSON story.
	// The template expects %s (tags) and %s (description) placeholders.
	PromptStory = "story"

	// PromptCulturalEmbedding frames text before cultural embedding.
	// The template expects a %s placeholder for the text.
	PromptCulturalEmbedding = "cultural_embedding"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
