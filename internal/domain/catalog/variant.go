package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stylehub/backend/internal/domain/shared"
)

// VariantSize is a garment size label
type VariantSize string

// Supported garment sizes
const (
	SizeS   VariantSize = "S"
	SizeM   VariantSize = "M"
	SizeL   VariantSize = "L"
	SizeXL  VariantSize = "XL"
	SizeXXL VariantSize = "XXL"
)

var validSizes = map[VariantSize]bool{
	SizeS: true, SizeM: true, SizeL: true, SizeXL: true, SizeXXL: true,
}

// Color describes a variant's color. ActualColor is the identity used
// for color deduplication in listing views; BaseColor groups shades for
// cross-product color filtering; ColorName is the display label.
type Color struct {
	BaseColor   string
	ActualColor string
	ColorName   string
}

// Image is a stored image reference. Upload and storage happen outside
// this system; only the reference is kept.
type Image struct {
	URL      string
	PublicID string
}

// VariantImages groups the image slots of a variant.
type VariantImages struct {
	Main    Image
	Hover   Image
	Product []Image
}

// Attribute is a free-form name/value pair on a variant.
type Attribute struct {
	Attribute string
	Value     string
}

// SizeStock tracks stock for one size of a variant.
type SizeStock struct {
	Size  VariantSize
	Stock int
}

// ProductVariant is one purchasable color/size combination of a product.
// Variants live in their own collection; the aggregator reconstructs the
// product relationship per request.
type ProductVariant struct {
	shared.BaseEntity
	ProductID  uuid.UUID
	SKU        string
	Price      decimal.Decimal
	Color      Color
	Images     VariantImages
	Attributes []Attribute
	Sizes      []SizeStock
	Status     bool
}

// NewProductVariant creates a variant for the given product.
func NewProductVariant(productID uuid.UUID, sku string, price decimal.Decimal, color Color, sizes []SizeStock) (*ProductVariant, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Variant price cannot be negative")
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}
	if err := validateSizes(sizes); err != nil {
		return nil, err
	}

	return &ProductVariant{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		SKU:        strings.ToUpper(sku),
		Price:      price,
		Color:      color,
		Sizes:      sizes,
		Status:     true,
	}, nil
}

// SetSKU replaces the variant SKU, normalized to upper case.
func (v *ProductVariant) SetSKU(sku string) error {
	if err := validateSKU(sku); err != nil {
		return err
	}
	v.SKU = strings.ToUpper(sku)
	v.Touch()
	return nil
}

// SetPrice updates the variant price.
func (v *ProductVariant) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Variant price cannot be negative")
	}
	v.Price = price
	v.Touch()
	return nil
}

// SetSizes replaces the size/stock list.
func (v *ProductVariant) SetSizes(sizes []SizeStock) error {
	if err := validateSizes(sizes); err != nil {
		return err
	}
	v.Sizes = sizes
	v.Touch()
	return nil
}

// SetColor replaces the variant color.
func (v *ProductVariant) SetColor(color Color) error {
	if err := validateColor(color); err != nil {
		return err
	}
	v.Color = color
	v.Touch()
	return nil
}

// SetImages replaces the image slots.
func (v *ProductVariant) SetImages(images VariantImages) {
	v.Images = images
	v.Touch()
}

// SetAttributes replaces the attribute list.
func (v *ProductVariant) SetAttributes(attributes []Attribute) {
	v.Attributes = attributes
	v.Touch()
}

// SetStatus enables or disables the variant.
func (v *ProductVariant) SetStatus(status bool) {
	v.Status = status
	v.Touch()
}

// TotalStock sums stock across all sizes.
func (v *ProductVariant) TotalStock() int {
	total := 0
	for _, s := range v.Sizes {
		total += s.Stock
	}
	return total
}

func validateColor(color Color) error {
	if color.ActualColor == "" {
		return shared.NewDomainError("INVALID_COLOR", "Variant actual color cannot be empty")
	}
	return nil
}

func validateSizes(sizes []SizeStock) error {
	for _, s := range sizes {
		if !validSizes[s.Size] {
			return shared.NewDomainError("INVALID_SIZE", fmt.Sprintf("Unsupported size %q", s.Size))
		}
		if s.Stock < 0 {
			return shared.NewDomainError("INVALID_STOCK", "Size stock cannot be negative")
		}
	}
	return nil
}
