package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/shared"
)

// Blocker detail caps for delete conflicts. Child category names are
// listed in full (the tree is small); product names are sampled.
const maxExampleProducts = 5

// CategoryService handles category tree operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// Create creates a new category after checking the hierarchy invariant
// against its parent.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	var parent *catalog.Category

	if req.ParentID != nil {
		found, err := s.categoryRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError(catalog.ErrCodeInvalidParent, "Parent category not found")
			}
			return nil, err
		}
		parent = found
	}

	category, err := catalog.NewCategory(req.Name, req.Level, parent)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// List retrieves categories matching the filter
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) ([]CategoryResponse, error) {
	domainFilter := shared.Filter{
		Filters: make(map[string]interface{}),
	}

	if filter.Level != nil {
		domainFilter.Filters["level"] = *filter.Level
	}
	if filter.ParentID != nil {
		domainFilter.Filters["parent_id"] = *filter.ParentID
	}
	if filter.Name != "" {
		domainFilter.Search = filter.Name
	}

	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
		domainFilter.OrderDir = filter.OrderDir
		if domainFilter.OrderDir == "" {
			domainFilter.OrderDir = "asc"
		}
	} else {
		domainFilter.OrderBy = "created_at"
		domainFilter.OrderDir = "desc"
	}

	categories, err := s.categoryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToCategoryResponses(categories), nil
}

// Update applies a partial update. Hierarchy checks run only for the
// fields being changed; when one of parent/level is missing from the
// patch, the stored value stands in for it. A level change that no
// longer fits the stored parent fails rather than being accepted.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ParentSet || req.Level != nil {
		level := category.Level
		if req.Level != nil {
			level = *req.Level
		}

		parentID := category.ParentID
		if req.ParentSet {
			parentID = req.ParentID
		}
		// A category parented to itself would never satisfy the level
		// rule and would make the ancestor walk loop forever.
		if parentID != nil && *parentID == id {
			return nil, catalog.NewHierarchyError("Category cannot be its own parent")
		}

		var parent *catalog.Category
		if parentID != nil {
			parent, err = s.categoryRepo.FindByID(ctx, *parentID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return nil, shared.NewDomainError(catalog.ErrCodeInvalidParent, "Parent category not found")
				}
				return nil, err
			}
		}

		if err := category.Move(level, parent); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		if err := category.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// Delete removes a category. The delete is refused while any child
// category or any product still references it; the conflict carries the
// blocker counts and names.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	children, err := s.categoryRepo.FindChildren(ctx, category.ID)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		names := make([]string, len(children))
		for i, child := range children {
			names[i] = child.Name
		}
		return catalog.NewConflictError(
			fmt.Sprintf("Cannot delete category %q because it has %d child categories", category.Name, len(children)),
			map[string]interface{}{
				"categoryName":  category.Name,
				"childrenCount": len(children),
				"childrenNames": names,
			},
		)
	}

	productCount, err := s.productRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return err
	}
	if productCount > 0 {
		examples, err := s.productRepo.FindByCategory(ctx, category.ID, shared.Filter{
			Page:     1,
			PageSize: maxExampleProducts,
			OrderBy:  "created_at",
			OrderDir: "asc",
		})
		if err != nil {
			return err
		}
		names := make([]string, len(examples))
		for i, p := range examples {
			names[i] = p.Name
		}
		return catalog.NewConflictError(
			fmt.Sprintf("Cannot delete category %q because %d products reference it", category.Name, productCount),
			map[string]interface{}{
				"categoryName":    category.Name,
				"productsCount":   productCount,
				"exampleProducts": names,
			},
		)
	}

	return s.categoryRepo.Delete(ctx, id)
}

// AncestorChain walks parent links upward from the category and returns
// the ancestors ordered root-first. The 3-level cap bounds the walk at
// two hops. A missing parent mid-walk means the tree is corrupt and is
// reported rather than papered over.
func (s *CategoryService) AncestorChain(ctx context.Context, id uuid.UUID) ([]CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ancestors := make([]CategoryResponse, 0, catalog.MaxCategoryLevel-1)
	current := category
	for current.ParentID != nil {
		// A chain longer than the level cap means a parent cycle in
		// stored data; stop instead of walking it forever.
		if len(ancestors) >= catalog.MaxCategoryLevel-1 {
			return nil, catalog.NewHierarchyError(
				fmt.Sprintf("Category %q has a cyclic parent chain", category.Name))
		}
		parent, err := s.categoryRepo.FindByID(ctx, *current.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, catalog.NewHierarchyError(
					fmt.Sprintf("Category %q references a missing parent", current.Name))
			}
			return nil, err
		}
		ancestors = append(ancestors, *ToCategoryResponse(parent))
		current = parent
	}

	// Collected leaf-upward; callers expect root-first.
	for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
		ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
	}

	return ancestors, nil
}
