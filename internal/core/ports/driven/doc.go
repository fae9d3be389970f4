// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - MediaStore: Media item persistence (fetch, single merge-patch write)
//   - TagStore: User-contributed tags ranked by usage
//   - ContentResolver: Turns a media locator into bytes
//   - VisionService: Describes content from a prompt
//   - EnrichmentLock: At-most-one in-flight enrichment per media item
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Text and cultural embeddings. Without it those fields are never written.
//   - MultimodalEmbeddingService: Content+text embeddings. Without it that field is never written.
//   - PromptStore: Custom prompt templates. Without it built-in prompts are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
