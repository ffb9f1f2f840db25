package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stylehub/backend/internal/domain/shared"
)

// VariantRepository defines the interface for product variant persistence
type VariantRepository interface {
	// FindByID finds a variant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductVariant, error)

	// FindByIDs finds multiple variants by their IDs. Missing ids are
	// skipped; order of the result is unspecified.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ProductVariant, error)

	// FindAll finds all variants matching the filter. Recognized exact
	// filters: "product_id" (uuid.UUID), "product_ids" ([]uuid.UUID),
	// "status" (bool), "base_color", "actual_color" (string),
	// "min_price"/"max_price" (decimal.Decimal);
	// Search matches SKU and color name case-insensitively.
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductVariant, error)

	// FindByProductID finds all variants of one product, oldest first.
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]ProductVariant, error)

	// FindByProductIDs batch-fetches the variants of every product in the
	// id set in one query, oldest first. Callers group by ProductID in
	// memory; this is the primitive behind page enrichment.
	FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]ProductVariant, error)

	// DistinctProductIDs returns the distinct set of product ids that
	// have at least one variant.
	DistinctProductIDs(ctx context.Context) ([]uuid.UUID, error)

	// Save creates or updates a variant
	Save(ctx context.Context, variant *ProductVariant) error

	// Delete deletes a variant
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByProductIDs removes every variant whose product is in the id
	// set in one operation and reports how many were removed.
	DeleteByProductIDs(ctx context.Context, productIDs []uuid.UUID) (int64, error)

	// Count counts variants matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByProductID counts the variants of one product
	CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error)
}
