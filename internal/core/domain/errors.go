package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or backend type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Enrichment Errors.

	// ErrEnrichmentInProgress indicates another enrichment of the same
	// media item is running.
	ErrEnrichmentInProgress = errors.New("enrichment in progress")

	// ErrAnalysisFailed indicates content analysis could not produce tags
	// and a story. Fatal to the enrichment attempt.
	ErrAnalysisFailed = errors.New("content analysis failed")

	// ErrEmbeddingFailed indicates a single embedding derivation failed.
	// Recovered by omitting that embedding from the patch.
	ErrEmbeddingFailed = errors.New("embedding generation failed")

	// ErrStoreQueryFailed indicates the tag store could not be queried.
	// Recovered by returning curated catalog matches only.
	ErrStoreQueryFailed = errors.New("tag store query failed")

	// ErrPersistFailed indicates the merge patch could not be written.
	ErrPersistFailed = errors.New("persisting media patch failed")

	// AI Errors.

	// ErrVisionUnavailable indicates the vision service is not configured.
	// Enrichment is disabled without it.
	ErrVisionUnavailable = errors.New("vision service unavailable")

	// ErrEmbeddingUnavailable indicates an embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrCircuitOpen indicates calls to a provider are short-circuited
	// after repeated failures.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// Authentication Errors.

	// ErrAuthRequired indicates the request carries no credentials.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the credentials are invalid or do not grant
	// access to the requested item.
	ErrAuthInvalid = errors.New("authentication invalid")
)
