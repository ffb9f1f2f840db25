package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stylehub/backend/internal/domain/catalog"
)

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name     string
	Level    int
	ParentID *uuid.UUID
}

// UpdateCategoryRequest represents a partial category update. ParentSet
// distinguishes "parent_id was part of the patch" from "leave it alone";
// ParentSet with a nil ParentID re-homes the category to the root.
type UpdateCategoryRequest struct {
	Name      *string
	Level     *int
	ParentID  *uuid.UUID
	ParentSet bool
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Level     int        `json:"level"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CategoryListFilter represents filter options for category list
type CategoryListFilter struct {
	Level    *int
	ParentID *uuid.UUID
	Name     string
	OrderBy  string
	OrderDir string
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Level:     c.Level,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of domain Categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = *ToCategoryResponse(&c)
	}
	return responses
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name       string
	SKU        string
	CategoryID uuid.UUID
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name                    *string
	SKU                     *string
	CategoryID              *uuid.UUID
	Status                  *bool
	RepresentativeVariantID *uuid.UUID
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                      uuid.UUID  `json:"id"`
	Name                    string     `json:"name"`
	SKU                     string     `json:"sku"`
	CategoryID              uuid.UUID  `json:"category_id"`
	RepresentativeVariantID *uuid.UUID `json:"representative_variant_id,omitempty"`
	Status                  bool       `json:"status"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// ProductDetailResponse is a product with its category resolved inline
type ProductDetailResponse struct {
	ProductResponse
	Category *CategoryResponse `json:"category,omitempty"`
}

// ColorOption is one distinct color of a product together with the
// variant that first introduced it.
type ColorOption struct {
	VariantID   uuid.UUID `json:"variant_id"`
	ActualColor string    `json:"actual_color"`
}

// EnrichedProductResponse is a product decorated with the listing data
// assembled from its variants.
type EnrichedProductResponse struct {
	ProductResponse
	RepresentativeVariant *VariantResponse `json:"representative_variant,omitempty"`
	VariantCount          int64            `json:"variant_count"`
	AvailableColors       []ColorOption    `json:"available_colors"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	CategoryID *uuid.UUID
	Name       string
	SKU        string
	Status     *bool
	Page       int
	PageSize   int
	OrderBy    string
	OrderDir   string
}

// BulkDeleteResult reports what a bulk product delete removed.
type BulkDeleteResult struct {
	DeletedProducts int64 `json:"deleted_products"`
	DeletedVariants int64 `json:"deleted_variants"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                      p.ID,
		Name:                    p.Name,
		SKU:                     p.SKU,
		CategoryID:              p.CategoryID,
		RepresentativeVariantID: p.RepresentativeVariantID,
		Status:                  p.Status,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

// ColorInput carries a variant color in requests
type ColorInput struct {
	BaseColor   string
	ActualColor string
	ColorName   string
}

// ImageInput carries a stored image reference in requests
type ImageInput struct {
	URL      string
	PublicID string
}

// ImagesInput carries the image slots of a variant in requests
type ImagesInput struct {
	Main    ImageInput
	Hover   ImageInput
	Product []ImageInput
}

// AttributeInput carries one attribute pair in requests
type AttributeInput struct {
	Attribute string
	Value     string
}

// SizeStockInput carries one size/stock pair in requests
type SizeStockInput struct {
	Size  string
	Stock int
}

// CreateVariantRequest represents a request to create a variant
type CreateVariantRequest struct {
	ProductID  uuid.UUID
	SKU        string
	Price      decimal.Decimal
	Color      ColorInput
	Images     *ImagesInput
	Attributes []AttributeInput
	Sizes      []SizeStockInput
}

// UpdateVariantRequest represents a partial variant update
type UpdateVariantRequest struct {
	SKU        *string
	Price      *decimal.Decimal
	Color      *ColorInput
	Images     *ImagesInput
	Attributes []AttributeInput
	Sizes      []SizeStockInput
	Status     *bool
}

// VariantColorResponse represents a variant color in API responses
type VariantColorResponse struct {
	BaseColor   string `json:"base_color"`
	ActualColor string `json:"actual_color"`
	ColorName   string `json:"color_name"`
}

// VariantImageResponse represents a stored image reference
type VariantImageResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// VariantImagesResponse represents the image slots of a variant
type VariantImagesResponse struct {
	Main    VariantImageResponse   `json:"main"`
	Hover   VariantImageResponse   `json:"hover"`
	Product []VariantImageResponse `json:"product"`
}

// VariantAttributeResponse represents one attribute pair
type VariantAttributeResponse struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// VariantSizeResponse represents one size/stock pair
type VariantSizeResponse struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// VariantResponse represents a variant in API responses
type VariantResponse struct {
	ID         uuid.UUID                  `json:"id"`
	ProductID  uuid.UUID                  `json:"product_id"`
	SKU        string                     `json:"sku"`
	Price      decimal.Decimal            `json:"price"`
	Color      VariantColorResponse       `json:"color"`
	Images     VariantImagesResponse      `json:"images"`
	Attributes []VariantAttributeResponse `json:"attributes"`
	Sizes      []VariantSizeResponse      `json:"sizes"`
	Status     bool                       `json:"status"`
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

// VariantListFilter represents filter options for variant queries
type VariantListFilter struct {
	ProductID   *uuid.UUID
	BaseColor   string
	ActualColor string
	Status      *bool
	Search      string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Page        int
	PageSize    int
	OrderBy     string
	OrderDir    string
}

// ToVariantResponse converts a domain ProductVariant to VariantResponse
func ToVariantResponse(v *catalog.ProductVariant) VariantResponse {
	attributes := make([]VariantAttributeResponse, len(v.Attributes))
	for i, a := range v.Attributes {
		attributes[i] = VariantAttributeResponse{Attribute: a.Attribute, Value: a.Value}
	}
	sizes := make([]VariantSizeResponse, len(v.Sizes))
	for i, s := range v.Sizes {
		sizes[i] = VariantSizeResponse{Size: string(s.Size), Stock: s.Stock}
	}
	productImages := make([]VariantImageResponse, len(v.Images.Product))
	for i, img := range v.Images.Product {
		productImages[i] = VariantImageResponse{URL: img.URL, PublicID: img.PublicID}
	}

	return VariantResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		SKU:       v.SKU,
		Price:     v.Price,
		Color: VariantColorResponse{
			BaseColor:   v.Color.BaseColor,
			ActualColor: v.Color.ActualColor,
			ColorName:   v.Color.ColorName,
		},
		Images: VariantImagesResponse{
			Main:    VariantImageResponse{URL: v.Images.Main.URL, PublicID: v.Images.Main.PublicID},
			Hover:   VariantImageResponse{URL: v.Images.Hover.URL, PublicID: v.Images.Hover.PublicID},
			Product: productImages,
		},
		Attributes: attributes,
		Sizes:      sizes,
		Status:     v.Status,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

// ToVariantResponses converts a slice of domain ProductVariants
func ToVariantResponses(variants []catalog.ProductVariant) []VariantResponse {
	responses := make([]VariantResponse, len(variants))
	for i, v := range variants {
		responses[i] = ToVariantResponse(&v)
	}
	return responses
}
