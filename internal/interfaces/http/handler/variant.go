package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/stylehub/backend/internal/application/catalog"
	"github.com/stylehub/backend/internal/interfaces/http/middleware"
)

// VariantHandler handles product variant API endpoints
type VariantHandler struct {
	BaseHandler
	variantService *catalogapp.VariantService
}

// NewVariantHandler creates a new VariantHandler
func NewVariantHandler(variantService *catalogapp.VariantService) *VariantHandler {
	return &VariantHandler{
		variantService: variantService,
	}
}

// VariantColorRequest carries a variant color in requests
type VariantColorRequest struct {
	BaseColor   string `json:"base_color" binding:"required,min=1,max=50" example:"blue"`
	ActualColor string `json:"actual_color" binding:"required,min=1,max=50" example:"navy"`
	ColorName   string `json:"color_name" binding:"required,min=1,max=100" example:"Deep Navy"`
}

// VariantImageRequest carries a stored image reference in requests
type VariantImageRequest struct {
	URL      string `json:"url" binding:"omitempty,url" example:"https://cdn.stylehub.dev/v/navy-main.jpg"`
	PublicID string `json:"public_id" example:"v/navy-main"`
}

// VariantImagesRequest carries the image slots of a variant in requests
type VariantImagesRequest struct {
	Main    VariantImageRequest   `json:"main"`
	Hover   VariantImageRequest   `json:"hover"`
	Product []VariantImageRequest `json:"product" binding:"omitempty,dive"`
}

// VariantAttributeRequest carries one attribute pair in requests
type VariantAttributeRequest struct {
	Attribute string `json:"attribute" binding:"required,min=1,max=100" example:"material"`
	Value     string `json:"value" binding:"required,min=1,max=200" example:"cotton"`
}

// VariantSizeRequest carries one size/stock pair in requests
type VariantSizeRequest struct {
	Size  string `json:"size" binding:"required,oneof=S M L XL XXL" example:"M"`
	Stock int    `json:"stock" binding:"min=0" example:"12"`
}

// CreateVariantRequest represents a request to create a variant
// @Description Request body for creating a product variant
type CreateVariantRequest struct {
	ProductID  string                    `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	SKU        string                    `json:"sku" binding:"required,min=1,max=50" example:"LIN-SHIRT-01-NVY"`
	Price      decimal.Decimal           `json:"price" binding:"required" example:"79.90"`
	Color      VariantColorRequest       `json:"color" binding:"required"`
	Images     *VariantImagesRequest     `json:"images"`
	Attributes []VariantAttributeRequest `json:"attributes" binding:"omitempty,dive"`
	Sizes      []VariantSizeRequest      `json:"sizes" binding:"omitempty,dive"`
}

// UpdateVariantRequest represents a partial variant update
// @Description Request body for updating a product variant
type UpdateVariantRequest struct {
	SKU        *string                   `json:"sku" binding:"omitempty,min=1,max=50" example:"LIN-SHIRT-01-NVY"`
	Price      *decimal.Decimal          `json:"price" example:"69.90"`
	Color      *VariantColorRequest      `json:"color"`
	Images     *VariantImagesRequest     `json:"images"`
	Attributes []VariantAttributeRequest `json:"attributes" binding:"omitempty,dive"`
	Sizes      []VariantSizeRequest      `json:"sizes" binding:"omitempty,dive"`
	Status     *bool                     `json:"status" example:"true"`
}

// RecordViewRequest marks a variant as viewed by the current user
type RecordViewRequest struct {
	VariantID string `json:"variant_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// VariantListQuery represents variant search query parameters
type VariantListQuery struct {
	Page        int    `form:"_page" binding:"omitempty,min=1"`
	PageSize    int    `form:"_limit" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"_sort"`
	OrderDir    string `form:"_order" binding:"omitempty,oneof=asc desc"`
	ProductID   string `form:"productId" binding:"omitempty,uuid"`
	BaseColor   string `form:"baseColor"`
	ActualColor string `form:"actualColor"`
	Status      *bool  `form:"_status"`
	Search      string `form:"q"`
	MinPrice    string `form:"minPrice" binding:"omitempty,numeric"`
	MaxPrice    string `form:"maxPrice" binding:"omitempty,numeric"`
}

func (q VariantListQuery) toFilter() (catalogapp.VariantListFilter, error) {
	filter := catalogapp.VariantListFilter{
		BaseColor:   q.BaseColor,
		ActualColor: q.ActualColor,
		Status:      q.Status,
		Search:      q.Search,
		Page:        q.Page,
		PageSize:    q.PageSize,
		OrderBy:     q.OrderBy,
		OrderDir:    q.OrderDir,
	}
	if q.ProductID != "" {
		productID, err := uuid.Parse(q.ProductID)
		if err != nil {
			return filter, err
		}
		filter.ProductID = &productID
	}
	if q.MinPrice != "" {
		min, err := decimal.NewFromString(q.MinPrice)
		if err != nil {
			return filter, err
		}
		filter.MinPrice = &min
	}
	if q.MaxPrice != "" {
		max, err := decimal.NewFromString(q.MaxPrice)
		if err != nil {
			return filter, err
		}
		filter.MaxPrice = &max
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}
	return filter, nil
}

func toColorInput(r VariantColorRequest) catalogapp.ColorInput {
	return catalogapp.ColorInput{
		BaseColor:   r.BaseColor,
		ActualColor: r.ActualColor,
		ColorName:   r.ColorName,
	}
}

func toImagesInput(r *VariantImagesRequest) *catalogapp.ImagesInput {
	if r == nil {
		return nil
	}
	product := make([]catalogapp.ImageInput, len(r.Product))
	for i, img := range r.Product {
		product[i] = catalogapp.ImageInput{URL: img.URL, PublicID: img.PublicID}
	}
	return &catalogapp.ImagesInput{
		Main:    catalogapp.ImageInput{URL: r.Main.URL, PublicID: r.Main.PublicID},
		Hover:   catalogapp.ImageInput{URL: r.Hover.URL, PublicID: r.Hover.PublicID},
		Product: product,
	}
}

func toAttributeInputs(reqs []VariantAttributeRequest) []catalogapp.AttributeInput {
	if reqs == nil {
		return nil
	}
	attrs := make([]catalogapp.AttributeInput, len(reqs))
	for i, a := range reqs {
		attrs[i] = catalogapp.AttributeInput{Attribute: a.Attribute, Value: a.Value}
	}
	return attrs
}

func toSizeInputs(reqs []VariantSizeRequest) []catalogapp.SizeStockInput {
	if reqs == nil {
		return nil
	}
	sizes := make([]catalogapp.SizeStockInput, len(reqs))
	for i, s := range reqs {
		sizes[i] = catalogapp.SizeStockInput{Size: s.Size, Stock: s.Stock}
	}
	return sizes
}

// Create godoc
// @Summary      Create a variant
// @Description  Create a variant of an existing product
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        request body CreateVariantRequest true "Variant creation request"
// @Success      201 {object} dto.Response{data=catalogapp.VariantResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/variants [post]
func (h *VariantHandler) Create(c *gin.Context) {
	var req CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	variant, err := h.variantService.Create(c.Request.Context(), catalogapp.CreateVariantRequest{
		ProductID:  productID,
		SKU:        req.SKU,
		Price:      req.Price,
		Color:      toColorInput(req.Color),
		Images:     toImagesInput(req.Images),
		Attributes: toAttributeInputs(req.Attributes),
		Sizes:      toSizeInputs(req.Sizes),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, variant)
}

// GetByID godoc
// @Summary      Get variant by ID
// @Description  Retrieve a variant by its ID
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        id path string true "Variant ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.VariantResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /catalog/variants/{id} [get]
func (h *VariantHandler) GetByID(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	variant, err := h.variantService.GetByID(c.Request.Context(), variantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, variant)
}

// List godoc
// @Summary      Search variants
// @Description  Retrieve a paginated variant list filtered by product, color, status, free text and price range
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        _page query int false "Page number" default(1)
// @Param        _limit query int false "Items per page" default(20)
// @Param        _sort query string false "Sort field"
// @Param        _order query string false "Sort direction" Enums(asc, desc)
// @Param        productId query string false "Exact product ID" format(uuid)
// @Param        baseColor query string false "Exact base color"
// @Param        actualColor query string false "Exact actual color"
// @Param        _status query bool false "Status filter"
// @Param        q query string false "Free-text match on name and SKU"
// @Param        minPrice query number false "Minimum price, inclusive"
// @Param        maxPrice query number false "Maximum price, inclusive"
// @Success      200 {object} dto.Response{data=[]catalogapp.VariantResponse,meta=dto.Meta}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /catalog/variants [get]
func (h *VariantHandler) List(c *gin.Context) {
	var query VariantListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, "Invalid query parameter: "+err.Error())
		return
	}

	result, err := h.variantService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ByColor godoc
// @Summary      List variants by color
// @Description  Retrieve a paginated list of variants matching the base color
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        color path string true "Base color"
// @Param        _page query int false "Page number" default(1)
// @Param        _limit query int false "Items per page" default(20)
// @Param        _sort query string false "Sort field"
// @Param        _order query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]catalogapp.VariantResponse,meta=dto.Meta}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /catalog/variants/by-color/{color} [get]
func (h *VariantHandler) ByColor(c *gin.Context) {
	color := c.Param("color")
	if color == "" {
		h.BadRequest(c, "Color is required")
		return
	}

	var query VariantListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, "Invalid query parameter: "+err.Error())
		return
	}
	filter.BaseColor = color

	result, err := h.variantService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ByCategory godoc
// @Summary      List variants by category
// @Description  Retrieve a paginated list of variants whose parent products belong to the category
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Param        _page query int false "Page number" default(1)
// @Param        _limit query int false "Items per page" default(20)
// @Param        _sort query string false "Sort field"
// @Param        _order query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]catalogapp.VariantResponse,meta=dto.Meta}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /catalog/variants/by-category/{id} [get]
func (h *VariantHandler) ByCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var query VariantListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, "Invalid query parameter: "+err.Error())
		return
	}

	result, err := h.variantService.ByCategory(c.Request.Context(), categoryID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ColorsByProduct godoc
// @Summary      Get distinct colors of a product
// @Description  Retrieve the distinct actual colors of a product's variants, each paired with the variant that first introduced it
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.ColorOption}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /catalog/products/{id}/colors [get]
func (h *VariantHandler) ColorsByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	colors, err := h.variantService.ColorsByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, colors)
}

// ColorsByVariant godoc
// @Summary      Get sibling colors of a variant
// @Description  Retrieve the distinct colors available for the product the variant belongs to
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        id path string true "Variant ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.ColorOption}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /catalog/variants/{id}/colors [get]
func (h *VariantHandler) ColorsByVariant(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	colors, err := h.variantService.ColorsByVariant(c.Request.Context(), variantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, colors)
}

// Related godoc
// @Summary      Get related variants
// @Description  Retrieve the other variants of the product the variant belongs to
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        id path string true "Variant ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.VariantResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /catalog/variants/{id}/related [get]
func (h *VariantHandler) Related(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	variants, err := h.variantService.RelatedVariants(c.Request.Context(), variantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, variants)
}

// Representative godoc
// @Summary      Get representative variants
// @Description  Retrieve one variant per product, preferring the pinned representative and falling back to the oldest variant
// @Tags         variants
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.VariantResponse}
// @Failure      500 {object} dto.ErrorResponse
// @Router       /catalog/variants/representative [get]
func (h *VariantHandler) Representative(c *gin.Context) {
	variants, err := h.variantService.RepresentativeVariants(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, variants)
}

// ProductsUnique godoc
// @Summary      Get products that have variants
// @Description  Retrieve the distinct product IDs that have at least one variant
// @Tags         variants
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=[]string}
// @Failure      500 {object} dto.ErrorResponse
// @Router       /catalog/variants/products-unique [get]
func (h *VariantHandler) ProductsUnique(c *gin.Context) {
	ids, err := h.variantService.DistinctProducts(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ids)
}

// RecentlyViewed godoc
// @Summary      Get recently viewed variants
// @Description  Retrieve the authenticated user's viewed variants, most recent first
// @Tags         variants
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.VariantResponse}
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/variants/recently-viewed [get]
func (h *VariantHandler) RecentlyViewed(c *gin.Context) {
	variants, err := h.variantService.RecentlyViewed(c.Request.Context(), getUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, variants)
}

// RecordView godoc
// @Summary      Record a variant view
// @Description  Put a variant at the front of the authenticated user's view history
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        request body RecordViewRequest true "Viewed variant"
// @Success      204 "No Content"
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/variants/recently-viewed [post]
func (h *VariantHandler) RecordView(c *gin.Context) {
	var req RecordViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	variantID, err := uuid.Parse(req.VariantID)
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	if err := h.variantService.RecordView(c.Request.Context(), getUserID(c), variantID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Update godoc
// @Summary      Update a variant
// @Description  Partially update a variant
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        id path string true "Variant ID" format(uuid)
// @Param        request body UpdateVariantRequest true "Variant update request"
// @Success      200 {object} dto.Response{data=catalogapp.VariantResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/variants/{id} [patch]
func (h *VariantHandler) Update(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	var req UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	appReq := catalogapp.UpdateVariantRequest{
		SKU:        req.SKU,
		Price:      req.Price,
		Images:     toImagesInput(req.Images),
		Attributes: toAttributeInputs(req.Attributes),
		Sizes:      toSizeInputs(req.Sizes),
		Status:     req.Status,
	}
	if req.Color != nil {
		color := toColorInput(*req.Color)
		appReq.Color = &color
	}

	variant, err := h.variantService.Update(c.Request.Context(), variantID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, variant)
}

// Delete godoc
// @Summary      Delete a variant
// @Description  Delete a variant by its ID
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        id path string true "Variant ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/variants/{id} [delete]
func (h *VariantHandler) Delete(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	if err := h.variantService.Delete(c.Request.Context(), variantID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
