// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/mvshop-backend/internal/services"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /api/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := services.ProductListParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if categoryIDStr := c.Query("category"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			params.CategoryID = &categoryID
		}
	}

	if sellerIDStr := c.Query("seller"); sellerIDStr != "" {
		if sellerID, err := uuid.Parse(sellerIDStr); err == nil {
			params.SellerID = &sellerID
		}
	}

	products, total, err := h.productService.List(c.Request.Context(), params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	result := utils.CreatePaginationResult(products, total, params.PaginationParams)
	utils.SetPaginationHeaders(c, result)
	utils.PaginatedResponse(c, result)
}

// GET /api/products/featured
func (h *ProductHandler) GetFeatured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))

	products, err := h.productService.Featured(c.Request.Context(), limit)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, products)
}

// GET /api/products/search?q=
func (h *ProductHandler) Search(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	if q := c.Query("q"); q != "" {
		params.Search = q
	}

	products, total, err := h.productService.Search(c.Request.Context(), params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params))
}

// GET /api/products/category/:categoryId
func (h *ProductHandler) GetByCategory(c *gin.Context) {
	categoryID, err := utils.ParseUUIDParam(c, "categoryId", "category")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	products, err := h.productService.ByCategory(c.Request.Context(), categoryID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, products)
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id", "product")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}
