package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stylehub/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter. Recognized exact
	// filters: "category_id" (uuid.UUID), "status" (bool); "name" and
	// "sku" (string) each match their own field case-insensitively, and
	// both may apply to one query; Search matches name and SKU
	// case-insensitively. Sorting and pagination happen at the store
	// level.
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByCategory finds all products in a specific category
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs. Missing ids are
	// skipped; order of the result is unspecified.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByIDs removes every product in the id set in one operation
	// and reports how many documents were removed.
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByCategory counts products in a specific category
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
