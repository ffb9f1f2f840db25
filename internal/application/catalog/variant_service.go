package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/shared"
)

// RecentlyViewedLimit caps how many variants a user's history returns.
const RecentlyViewedLimit = 20

// VariantService handles variant queries and lifecycle
type VariantService struct {
	variantRepo catalog.VariantRepository
	productRepo catalog.ProductRepository
	viewHistory catalog.ViewHistory
}

// NewVariantService creates a new VariantService
func NewVariantService(
	variantRepo catalog.VariantRepository,
	productRepo catalog.ProductRepository,
	viewHistory catalog.ViewHistory,
) *VariantService {
	return &VariantService{
		variantRepo: variantRepo,
		productRepo: productRepo,
		viewHistory: viewHistory,
	}
}

// Create creates a variant for an existing product
func (s *VariantService) Create(ctx context.Context, req CreateVariantRequest) (*VariantResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, catalog.NewValidationError("Product not found")
		}
		return nil, err
	}

	sizes := toSizeStocks(req.Sizes)
	variant, err := catalog.NewProductVariant(req.ProductID, req.SKU, req.Price, catalog.Color{
		BaseColor:   req.Color.BaseColor,
		ActualColor: req.Color.ActualColor,
		ColorName:   req.Color.ColorName,
	}, sizes)
	if err != nil {
		return nil, err
	}

	if req.Images != nil {
		variant.SetImages(toVariantImages(*req.Images))
	}
	if len(req.Attributes) > 0 {
		variant.SetAttributes(toAttributes(req.Attributes))
	}

	if err := s.variantRepo.Save(ctx, variant); err != nil {
		return nil, err
	}

	response := ToVariantResponse(variant)
	return &response, nil
}

// GetByID retrieves a variant by ID
func (s *VariantService) GetByID(ctx context.Context, id uuid.UUID) (*VariantResponse, error) {
	variant, err := s.variantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToVariantResponse(variant)
	return &response, nil
}

// Update applies a partial variant update
func (s *VariantService) Update(ctx context.Context, id uuid.UUID, req UpdateVariantRequest) (*VariantResponse, error) {
	variant, err := s.variantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SKU != nil {
		if err := variant.SetSKU(*req.SKU); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := variant.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Color != nil {
		err := variant.SetColor(catalog.Color{
			BaseColor:   req.Color.BaseColor,
			ActualColor: req.Color.ActualColor,
			ColorName:   req.Color.ColorName,
		})
		if err != nil {
			return nil, err
		}
	}
	if req.Sizes != nil {
		if err := variant.SetSizes(toSizeStocks(req.Sizes)); err != nil {
			return nil, err
		}
	}
	if req.Images != nil {
		variant.SetImages(toVariantImages(*req.Images))
	}
	if req.Attributes != nil {
		variant.SetAttributes(toAttributes(req.Attributes))
	}
	if req.Status != nil {
		variant.SetStatus(*req.Status)
	}

	if err := s.variantRepo.Save(ctx, variant); err != nil {
		return nil, err
	}

	response := ToVariantResponse(variant)
	return &response, nil
}

// Delete removes a variant. Variants have no dependents, so the delete
// is unconditional once the variant is found.
func (s *VariantService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.variantRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.variantRepo.Delete(ctx, id)
}

// List returns one page of variants matching the filter
func (s *VariantService) List(ctx context.Context, filter VariantListFilter) (*shared.Paginated[VariantResponse], error) {
	domainFilter := s.buildFilter(filter)

	variants, err := s.variantRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.variantRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToVariantResponses(variants), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// ColorsByProduct returns the distinct colors of a product's variants,
// first-seen order, one entry per actualColor.
func (s *VariantService) ColorsByProduct(ctx context.Context, productID uuid.UUID) ([]ColorOption, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	variants, err := s.variantRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return distinctColors(variants), nil
}

// ColorsByVariant resolves a variant and returns the distinct colors of
// its product.
func (s *VariantService) ColorsByVariant(ctx context.Context, variantID uuid.UUID) ([]ColorOption, error) {
	variant, err := s.variantRepo.FindByID(ctx, variantID)
	if err != nil {
		return nil, err
	}

	variants, err := s.variantRepo.FindByProductID(ctx, variant.ProductID)
	if err != nil {
		return nil, err
	}

	return distinctColors(variants), nil
}

// RelatedVariants returns the sibling variants of the same product,
// excluding the variant itself.
func (s *VariantService) RelatedVariants(ctx context.Context, variantID uuid.UUID) ([]VariantResponse, error) {
	variant, err := s.variantRepo.FindByID(ctx, variantID)
	if err != nil {
		return nil, err
	}

	siblings, err := s.variantRepo.FindByProductID(ctx, variant.ProductID)
	if err != nil {
		return nil, err
	}

	related := make([]catalog.ProductVariant, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ID != variant.ID {
			related = append(related, sibling)
		}
	}

	return ToVariantResponses(related), nil
}

// RepresentativeVariants returns one chosen variant per product that
// has any, using the same selection rule as the product listing.
func (s *VariantService) RepresentativeVariants(ctx context.Context) ([]VariantResponse, error) {
	productIDs, err := s.variantRepo.DistinctProductIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return []VariantResponse{}, nil
	}

	variants, err := s.variantRepo.FindByProductIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID][]catalog.ProductVariant, len(productIDs))
	for _, v := range variants {
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
	}

	// The pinned reference lives on the product; batch-fetch them so a
	// pin can be honored. Products deleted since fall back to oldest.
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}

	representatives := make([]VariantResponse, 0, len(productIDs))
	for _, productID := range productIDs {
		group := byProduct[productID]
		if len(group) == 0 {
			continue
		}

		product, ok := productByID[productID]
		if !ok {
			product = &catalog.Product{}
		}
		if rep := selectRepresentative(product, group); rep != nil {
			representatives = append(representatives, ToVariantResponse(rep))
		}
	}

	return representatives, nil
}

// DistinctProducts returns the ids of products that have at least one
// variant, the set of products "live" in the storefront.
func (s *VariantService) DistinctProducts(ctx context.Context) ([]uuid.UUID, error) {
	return s.variantRepo.DistinctProductIDs(ctx)
}

// ByCategory returns one page of variants whose products belong to the
// category.
func (s *VariantService) ByCategory(ctx context.Context, categoryID uuid.UUID, filter VariantListFilter) (*shared.Paginated[VariantResponse], error) {
	products, err := s.productRepo.FindByCategory(ctx, categoryID, shared.Filter{
		OrderBy:  "created_at",
		OrderDir: "asc",
	})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		page := shared.NewPaginated([]VariantResponse{}, 0, 1, defaultPageSize(filter))
		return &page, nil
	}

	productIDs := make([]uuid.UUID, len(products))
	for i, p := range products {
		productIDs[i] = p.ID
	}

	domainFilter := s.buildFilter(filter)
	domainFilter.Filters["product_ids"] = productIDs

	variants, err := s.variantRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.variantRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToVariantResponses(variants), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// RecordView puts the variant at the front of the user's view history
func (s *VariantService) RecordView(ctx context.Context, userID string, variantID uuid.UUID) error {
	if userID == "" {
		return shared.ErrUnauthorized
	}
	if _, err := s.variantRepo.FindByID(ctx, variantID); err != nil {
		return err
	}
	return s.viewHistory.RecordView(ctx, userID, variantID)
}

// RecentlyViewed returns the user's viewed variants, most recent first.
// Variants deleted since they were viewed are skipped.
func (s *VariantService) RecentlyViewed(ctx context.Context, userID string) ([]VariantResponse, error) {
	if userID == "" {
		return nil, shared.ErrUnauthorized
	}

	ids, err := s.viewHistory.RecentVariantIDs(ctx, userID, RecentlyViewedLimit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []VariantResponse{}, nil
	}

	variants, err := s.variantRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// FindByIDs does not promise order; restore history order.
	byID := make(map[uuid.UUID]*catalog.ProductVariant, len(variants))
	for i := range variants {
		byID[variants[i].ID] = &variants[i]
	}

	ordered := make([]VariantResponse, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, ToVariantResponse(v))
		}
	}

	return ordered, nil
}

// buildFilter translates the API-level filter into the repository filter
func (s *VariantService) buildFilter(filter VariantListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()

	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
		if filter.OrderDir != "" {
			domainFilter.OrderDir = filter.OrderDir
		} else {
			domainFilter.OrderDir = "asc"
		}
	}

	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.BaseColor != "" {
		domainFilter.Filters["base_color"] = filter.BaseColor
	}
	if filter.ActualColor != "" {
		domainFilter.Filters["actual_color"] = filter.ActualColor
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.MinPrice != nil {
		domainFilter.Filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		domainFilter.Filters["max_price"] = *filter.MaxPrice
	}
	if filter.Search != "" {
		domainFilter.Search = filter.Search
	}

	return domainFilter
}

func defaultPageSize(filter VariantListFilter) int {
	if filter.PageSize > 0 {
		return filter.PageSize
	}
	return shared.DefaultFilter().PageSize
}

func toSizeStocks(inputs []SizeStockInput) []catalog.SizeStock {
	if inputs == nil {
		return nil
	}
	sizes := make([]catalog.SizeStock, len(inputs))
	for i, in := range inputs {
		sizes[i] = catalog.SizeStock{Size: catalog.VariantSize(in.Size), Stock: in.Stock}
	}
	return sizes
}

func toAttributes(inputs []AttributeInput) []catalog.Attribute {
	attributes := make([]catalog.Attribute, len(inputs))
	for i, in := range inputs {
		attributes[i] = catalog.Attribute{Attribute: in.Attribute, Value: in.Value}
	}
	return attributes
}

func toVariantImages(in ImagesInput) catalog.VariantImages {
	product := make([]catalog.Image, len(in.Product))
	for i, img := range in.Product {
		product[i] = catalog.Image{URL: img.URL, PublicID: img.PublicID}
	}
	return catalog.VariantImages{
		Main:    catalog.Image{URL: in.Main.URL, PublicID: in.Main.PublicID},
		Hover:   catalog.Image{URL: in.Hover.URL, PublicID: in.Hover.PublicID},
		Product: product,
	}
}
