package driven

import (
	"context"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

// ContentResolver reads the binary content behind a media locator.
type ContentResolver interface {
	// Resolve fetches the content. The returned MimeType is sniffed from
	// the data when the source does not declare one.
	Resolve(ctx context.Context, locator string) (*domain.MediaContent, error)
}
