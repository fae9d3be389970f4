package driven

import "context"

// EnrichmentLock marks a media item as being enriched.
type EnrichmentLock interface {
	// Acquire claims the marker for mediaID. It returns
	// domain.ErrEnrichmentInProgress if another holder has it.
	// The returned release function must be called exactly once.
	Acquire(ctx context.Context, mediaID string) (release func(), err error)
}
