// internal/handlers/category.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/mvshop-backend/internal/i18n"
	"github.com/javajoker/mvshop-backend/internal/services"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, categories)
}

// GET /api/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id", "category")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, category)
}

// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, i18n.KeyCategoryCreated, category)
}

// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := utils.ParseUUIDParam(c, "id", "category")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, i18n.KeyCategoryUpdated, category)
}

// DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id", "category")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, i18n.KeyCategoryDeleted, nil)
}
