// Package domain defines the core business entities for Bong-Lore.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - MediaItem: an uploaded image or video with its enrichment fields
//   - MediaPatch: the merge patch written once per enrichment run
//   - Story: the narrative produced by content analysis
//   - Tag: a user-contributed tag with its usage count
//   - BengaliCultureTags: the curated cultural tag catalog
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
