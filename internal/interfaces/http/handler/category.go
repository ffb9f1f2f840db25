package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/stylehub/backend/internal/application/catalog"
	"github.com/stylehub/backend/internal/interfaces/http/dto"
	"github.com/stylehub/backend/internal/interfaces/http/middleware"
)

// CategoryHandler handles category-related API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CreateCategoryRequest represents a request to create a new category
// @Description Request body for creating a new category
type CreateCategoryRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=100" example:"Dresses"`
	Level    int     `json:"level" binding:"required,min=1,max=3" example:"2"`
	ParentID *string `json:"parent_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// UpdateCategoryRequest represents a partial category update
// @Description Request body for updating a category. Omitted fields keep
// @Description their stored values; an explicit null parent_id re-homes
// @Description the category to the root level.
type UpdateCategoryRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100" example:"Summer Dresses"`
	Level    *int    `json:"level" binding:"omitempty,min=1,max=3" example:"2"`
	ParentID *string `json:"parent_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// CategoryListQuery represents category list query parameters
type CategoryListQuery struct {
	Level    *int   `form:"_level" binding:"omitempty,min=1,max=3"`
	ParentID string `form:"_parentId" binding:"omitempty,uuid"`
	Name     string `form:"_name"`
	OrderBy  string `form:"_sort"`
	OrderDir string `form:"_order" binding:"omitempty,oneof=asc desc"`
}

// Create godoc
// @Summary      Create a new category
// @Description  Create a new category. Root categories are level 1; child categories must sit exactly one level below their parent.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body CreateCategoryRequest true "Category creation request"
// @Success      201 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	appReq := catalogapp.CreateCategoryRequest{
		Name:  req.Name,
		Level: req.Level,
	}

	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			h.BadRequest(c, "Invalid parent ID format")
			return
		}
		appReq.ParentID = &parentID
	}

	category, err := h.categoryService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, category)
}

// GetByID godoc
// @Summary      Get category by ID
// @Description  Retrieve a category by its ID
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /catalog/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, category)
}

// List godoc
// @Summary      List categories
// @Description  Retrieve categories filtered by level, parent and name substring
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        _level query int false "Exact level filter (1-3)"
// @Param        _parentId query string false "Exact parent category ID" format(uuid)
// @Param        _name query string false "Case-insensitive name substring"
// @Param        _sort query string false "Sort field"
// @Param        _order query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /catalog/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var query CategoryListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := catalogapp.CategoryListFilter{
		Level:    query.Level,
		Name:     query.Name,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
	}
	if query.ParentID != "" {
		parentID, err := uuid.Parse(query.ParentID)
		if err != nil {
			h.BadRequest(c, "Invalid parent ID format")
			return
		}
		filter.ParentID = &parentID
	}

	categories, err := h.categoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, categories)
}

// Ancestors godoc
// @Summary      Get category ancestors
// @Description  Retrieve the ancestor chain of a category ordered root first. The category itself is not included.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /catalog/categories/{id}/ancestors [get]
func (h *CategoryHandler) Ancestors(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	chain, err := h.categoryService.AncestorChain(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, chain)
}

// Update godoc
// @Summary      Update a category
// @Description  Partially update a category. Hierarchy rules are re-validated against the stored values of any omitted fields.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Param        request body UpdateCategoryRequest true "Category update request"
// @Success      200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/categories/{id} [patch]
func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		h.BadRequest(c, "Unable to read request body")
		return
	}

	var req UpdateCategoryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInvalidJSON), dto.ErrCodeInvalidJSON, "Invalid JSON body")
		return
	}

	appReq := catalogapp.UpdateCategoryRequest{
		Name:  req.Name,
		Level: req.Level,
	}

	// "parent_id": null means detach to root, which a nil pointer alone
	// cannot express. Check the raw body for key presence.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err == nil {
		if _, ok := raw["parent_id"]; ok {
			appReq.ParentSet = true
		}
	}

	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			h.BadRequest(c, "Invalid parent ID format")
			return
		}
		appReq.ParentID = &parentID
	}

	category, err := h.categoryService.Update(c.Request.Context(), categoryID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, category)
}

// Delete godoc
// @Summary      Delete a category
// @Description  Delete a category. Rejected while child categories or products still reference it; the error details name the blockers.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), categoryID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
