package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/stylehub/backend/internal/domain/shared"
)

// Product represents a sellable item in the catalog. Variants hold the
// back-reference; the product itself only optionally pins the variant
// shown in listings.
type Product struct {
	shared.BaseEntity
	Name                    string
	SKU                     string
	CategoryID              uuid.UUID
	RepresentativeVariantID *uuid.UUID
	Status                  bool
}

// NewProduct creates a new product under the given category.
func NewProduct(name, sku string, categoryID uuid.UUID) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateSKU(sku); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		SKU:        strings.ToUpper(sku),
		CategoryID: categoryID,
		Status:     true,
	}, nil
}

// Update updates the product's basic information.
func (p *Product) Update(name, sku string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateSKU(sku); err != nil {
		return err
	}
	p.Name = name
	p.SKU = strings.ToUpper(sku)
	p.Touch()
	return nil
}

// Recategorize moves the product to another category.
func (p *Product) Recategorize(categoryID uuid.UUID) {
	p.CategoryID = categoryID
	p.Touch()
}

// PinRepresentativeVariant pins the variant shown for this product in
// listing views. Pass nil to fall back to the oldest variant.
func (p *Product) PinRepresentativeVariant(variantID *uuid.UUID) {
	p.RepresentativeVariantID = variantID
	p.Touch()
}

// SetStatus enables or disables the product.
func (p *Product) SetStatus(status bool) {
	p.Status = status
	p.Touch()
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// validateSKU validates a product or variant SKU
func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
