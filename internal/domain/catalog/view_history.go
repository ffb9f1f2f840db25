package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ViewHistory records which variants an authenticated user has looked
// at, most recent first. Implementations cap the history length; a
// repeat view moves the variant to the front instead of duplicating it.
type ViewHistory interface {
	// RecordView puts the variant at the front of the user's history.
	RecordView(ctx context.Context, userID string, variantID uuid.UUID) error

	// RecentVariantIDs returns up to limit variant ids, most recent
	// first. A limit <= 0 returns the full history.
	RecentVariantIDs(ctx context.Context, userID string, limit int) ([]uuid.UUID, error)
}
