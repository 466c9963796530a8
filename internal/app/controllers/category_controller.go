package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/app/services"
	"github.com/emres/learnhub/internal/middleware"
)

// CategoryController handles category management
type CategoryController struct {
	categoryService services.CategoryService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService services.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// CreateCategory creates a category
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCategoryRequest true "Category data"
// @Success 201 {object} dto.APIResponse{data=dto.CategoryResponse} "Category created"
// @Failure 409 {object} dto.APIResponse "Category already exists"
// @Router /admin/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	category, err := c.categoryService.CreateCategory(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(
		dto.ToCategoryResponse(category), "Category created successfully"))
}

// GetAllCategories lists every category
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryResponse} "Categories"
// @Router /categories [get]
func (c *CategoryController) GetAllCategories(ctx *gin.Context) {
	categories, err := c.categoryService.GetAllCategories(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		items = append(items, dto.ToCategoryResponse(cat))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items, ""))
}

// GetCategory retrieves one category by numeric ID or slug
// @Summary Get category details
// @Tags categories
// @Produce json
// @Param id path string true "Category ID or slug"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse} "Category"
// @Failure 404 {object} dto.APIResponse "Category not found"
// @Router /categories/{id} [get]
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	param := ctx.Param("id")

	var category *models.Category
	var err error
	if id, parseErr := strconv.ParseInt(param, 10, 64); parseErr == nil {
		category, err = c.categoryService.GetCategory(ctx, id)
	} else {
		category, err = c.categoryService.GetCategoryBySlug(ctx, param)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToCategoryResponse(category), ""))
}

// UpdateCategory edits a category
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Category changes"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse} "Updated category"
// @Router /admin/categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	category, err := c.categoryService.UpdateCategory(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.ToCategoryResponse(category), "Category updated successfully"))
}

// DeleteCategory removes a category
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse "Category deleted"
// @Router /admin/categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.categoryService.DeleteCategory(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Category deleted successfully"))
}
