package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/shared"
)

// ProductService handles product operations, including the denormalized
// listing view assembled from the variant collection.
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	variantRepo  catalog.VariantRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	variantRepo catalog.VariantRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		variantRepo:  variantRepo,
	}
}

// Create creates a new product under an existing category
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(catalog.ErrCodeInvalidCategory, "Category not found")
		}
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.SKU, req.CategoryID)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product with its category resolved inline
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductDetailResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ProductDetailResponse{ProductResponse: ToProductResponse(product)}

	category, err := s.categoryRepo.FindByID(ctx, product.CategoryID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		// Dangling category reference: return the product without it.
	} else {
		detail.Category = ToCategoryResponse(category)
	}

	return detail, nil
}

// List returns one page of products, each enriched with its
// representative variant, variant count, and distinct color list. All
// variants for the page are fetched in a single query and grouped in
// memory; the per-product enrichment then fans out concurrently.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[EnrichedProductResponse], error) {
	domainFilter := s.buildFilter(filter)

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	enriched, err := s.enrichProducts(ctx, products)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(enriched, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update applies a partial product update
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError(catalog.ErrCodeInvalidCategory, "Category not found")
			}
			return nil, err
		}
		product.Recategorize(*req.CategoryID)
	}

	if req.Name != nil || req.SKU != nil {
		name := product.Name
		if req.Name != nil {
			name = *req.Name
		}
		sku := product.SKU
		if req.SKU != nil {
			sku = *req.SKU
		}
		if err := product.Update(name, sku); err != nil {
			return nil, err
		}
	}

	if req.RepresentativeVariantID != nil {
		variant, err := s.variantRepo.FindByID(ctx, *req.RepresentativeVariantID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, catalog.NewValidationError("Representative variant not found")
			}
			return nil, err
		}
		if variant.ProductID != product.ID {
			return nil, catalog.NewValidationError("Representative variant belongs to another product")
		}
		product.PinRepresentativeVariant(req.RepresentativeVariantID)
	}

	if req.Status != nil {
		product.SetStatus(*req.Status)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product. The delete is refused while any variant
// still references it.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	variantCount, err := s.variantRepo.CountByProductID(ctx, product.ID)
	if err != nil {
		return err
	}
	if variantCount > 0 {
		return catalog.NewConflictError(
			fmt.Sprintf("Cannot delete product %q because %d variants reference it", product.Name, variantCount),
			map[string]interface{}{
				"productName":   product.Name,
				"variantsCount": variantCount,
			},
		)
	}

	return s.productRepo.Delete(ctx, id)
}

// BulkDelete removes the named products and then cascades deletion of
// their variants, each in one store operation. Unlike the single
// delete, the bulk path performs no variant-conflict check; it is the
// administrative override for clearing whole product sets.
func (s *ProductService) BulkDelete(ctx context.Context, ids []uuid.UUID) (*BulkDeleteResult, error) {
	if len(ids) == 0 {
		return nil, catalog.NewValidationError("At least one product id is required")
	}

	deletedProducts, err := s.productRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	deletedVariants, err := s.variantRepo.DeleteByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &BulkDeleteResult{
		DeletedProducts: deletedProducts,
		DeletedVariants: deletedVariants,
	}, nil
}

// buildFilter translates the API-level filter into the repository filter
func (s *ProductService) buildFilter(filter ProductListFilter) shared.Filter {
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

	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	// Name and SKU are independent field filters; both may apply to the
	// same query.
	if filter.Name != "" {
		domainFilter.Filters["name"] = filter.Name
	}
	if filter.SKU != "" {
		domainFilter.Filters["sku"] = filter.SKU
	}

	return domainFilter
}

// enrichProducts assembles the listing view for one page of products.
// One batched query fetches every variant of the page's products; the
// per-product selection then runs concurrently, bounded by page size.
func (s *ProductService) enrichProducts(ctx context.Context, products []catalog.Product) ([]EnrichedProductResponse, error) {
	if len(products) == 0 {
		return []EnrichedProductResponse{}, nil
	}

	ids := make([]uuid.UUID, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	variants, err := s.variantRepo.FindByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Group by product, preserving the oldest-first order of the query.
	byProduct := make(map[uuid.UUID][]catalog.ProductVariant, len(products))
	for _, v := range variants {
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
	}

	enriched := make([]EnrichedProductResponse, len(products))
	g, _ := errgroup.WithContext(ctx)
	for i := range products {
		g.Go(func() error {
			product := &products[i]
			enriched[i] = EnrichedProductResponse{
				ProductResponse: ToProductResponse(product),
				VariantCount:    int64(len(byProduct[product.ID])),
				AvailableColors: distinctColors(byProduct[product.ID]),
			}
			if rep := selectRepresentative(product, byProduct[product.ID]); rep != nil {
				response := ToVariantResponse(rep)
				enriched[i].RepresentativeVariant = &response
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return enriched, nil
}

// selectRepresentative picks the variant shown for a product: the
// pinned one when the reference is set and still resolvable, otherwise
// the oldest variant. Returns nil when the product has no variants.
func selectRepresentative(product *catalog.Product, variants []catalog.ProductVariant) *catalog.ProductVariant {
	if product.RepresentativeVariantID != nil {
		for i := range variants {
			if variants[i].ID == *product.RepresentativeVariantID {
				return &variants[i]
			}
		}
	}

	var oldest *catalog.ProductVariant
	for i := range variants {
		if oldest == nil || variants[i].CreatedAt.Before(oldest.CreatedAt) {
			oldest = &variants[i]
		}
	}
	return oldest
}

// distinctColors keeps the first-seen variant per distinct actualColor,
// in order of first appearance. Later variants with a color already
// seen are dropped.
func distinctColors(variants []catalog.ProductVariant) []ColorOption {
	seen := make(map[string]bool, len(variants))
	colors := make([]ColorOption, 0, len(variants))
	for _, v := range variants {
		if seen[v.Color.ActualColor] {
			continue
		}
		seen[v.Color.ActualColor] = true
		colors = append(colors, ColorOption{
			VariantID:   v.ID,
			ActualColor: v.Color.ActualColor,
		})
	}
	return colors
}
