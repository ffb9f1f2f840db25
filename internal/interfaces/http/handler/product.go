package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/stylehub/backend/internal/application/catalog"
	"github.com/stylehub/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// CreateProductRequest represents a request to create a new product
// @Description Request body for creating a new product
type CreateProductRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200" example:"Linen Shirt"`
	SKU        string `json:"sku" binding:"required,min=1,max=50" example:"LIN-SHIRT-01"`
	CategoryID string `json:"category_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// UpdateProductRequest represents a partial product update
// @Description Request body for updating a product
type UpdateProductRequest struct {
	Name                    *string `json:"name" binding:"omitempty,min=1,max=200" example:"Linen Shirt"`
	SKU                     *string `json:"sku" binding:"omitempty,min=1,max=50" example:"LIN-SHIRT-01"`
	CategoryID              *string `json:"category_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Status                  *bool   `json:"status" example:"true"`
	RepresentativeVariantID *string `json:"representative_variant_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
}

// BulkDeleteProductsRequest represents a bulk product delete request
// @Description Request body naming the products to remove. Their variants
// @Description are removed in the same operation.
type BulkDeleteProductsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

// ProductListQuery represents product list query parameters
type ProductListQuery struct {
	Page       int    `form:"_page" binding:"omitempty,min=1"`
	PageSize   int    `form:"_limit" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"_sort"`
	OrderDir   string `form:"_order" binding:"omitempty,oneof=asc desc"`
	CategoryID string `form:"categoryId" binding:"omitempty,uuid"`
	Name       string `form:"_name"`
	SKU        string `form:"_sku"`
	Status     *bool  `form:"_status"`
}

// Create godoc
// @Summary      Create a new product
// @Description  Create a new product in an existing category
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body CreateProductRequest true "Product creation request"
// @Success      201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), catalogapp.CreateProductRequest{
		Name:       req.Name,
		SKU:        req.SKU,
		CategoryID: categoryID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// GetByID godoc
// @Summary      Get product by ID
// @Description  Retrieve a product with its category resolved inline
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ProductDetailResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /catalog/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// List godoc
// @Summary      List products
// @Description  Retrieve a paginated product list enriched with the representative variant, variant count and available colors of each product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        _page query int false "Page number" default(1)
// @Param        _limit query int false "Items per page" default(20)
// @Param        _sort query string false "Sort field"
// @Param        _order query string false "Sort direction" Enums(asc, desc)
// @Param        categoryId query string false "Exact category ID" format(uuid)
// @Param        _name query string false "Case-insensitive name substring"
// @Param        _sku query string false "Case-insensitive SKU substring"
// @Param        _status query bool false "Status filter"
// @Success      200 {object} dto.Response{data=[]catalogapp.EnrichedProductResponse,meta=dto.Meta}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /catalog/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var query ProductListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := catalogapp.ProductListFilter{
		Name:     query.Name,
		SKU:      query.SKU,
		Status:   query.Status,
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
	}
	if query.CategoryID != "" {
		categoryID, err := uuid.Parse(query.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID format")
			return
		}
		filter.CategoryID = &categoryID
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	result, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @Summary      Update a product
// @Description  Partially update a product. A changed category must exist.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body UpdateProductRequest true "Product update request"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id} [patch]
func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	appReq := catalogapp.UpdateProductRequest{
		Name:   req.Name,
		SKU:    req.SKU,
		Status: req.Status,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID format")
			return
		}
		appReq.CategoryID = &categoryID
	}
	if req.RepresentativeVariantID != nil {
		variantID, err := uuid.Parse(*req.RepresentativeVariantID)
		if err != nil {
			h.BadRequest(c, "Invalid representative variant ID format")
			return
		}
		appReq.RepresentativeVariantID = &variantID
	}

	product, err := h.productService.Update(c.Request.Context(), productID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete godoc
// @Summary      Delete a product
// @Description  Delete a product. Rejected while variants still reference it; the error details carry the variant count.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// BulkDelete godoc
// @Summary      Bulk delete products
// @Description  Delete the named products and cascade-delete all of their variants. Unlike single delete, existing variants do not block the operation.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body BulkDeleteProductsRequest true "Product IDs to delete"
// @Success      200 {object} dto.Response{data=catalogapp.BulkDeleteResult}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/bulk-delete [post]
func (h *ProductHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format: "+raw)
			return
		}
		ids = append(ids, id)
	}

	result, err := h.productService.BulkDelete(c.Request.Context(), ids)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
