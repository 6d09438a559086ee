// internal/handlers/seller.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/mvshop-backend/internal/i18n"
	"github.com/javajoker/mvshop-backend/internal/middleware"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/services"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SellerHandler struct {
	sellerService *services.SellerService
	uploader      services.ImageUploader
}

func NewSellerHandler(sellerService *services.SellerService, uploader services.ImageUploader) *SellerHandler {
	return &SellerHandler{
		sellerService: sellerService,
		uploader:      uploader,
	}
}

// POST /api/seller/register
func (h *SellerHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.SellerRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	registration, err := h.sellerService.Register(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, i18n.KeySellerRegistered, registration)
}

// GET /api/seller/products
func (h *SellerHandler) ListProducts(c *gin.Context) {
	seller, ok := h.seller(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	products, total, err := h.sellerService.ListProducts(c.Request.Context(), seller, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params))
}

// POST /api/seller/products
func (h *SellerHandler) CreateProduct(c *gin.Context) {
	seller, ok := h.seller(c)
	if !ok {
		return
	}
	userID, _ := utils.GetUserIDFromContext(c)

	var patch services.ProductPatch
	if err := bindProduct(c, h.uploader, &patch, &patch); err != nil {
		utils.HandleError(c, err)
		return
	}

	product, err := h.sellerService.CreateProduct(c.Request.Context(), seller, userID, &patch)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, i18n.KeyProductCreated, product)
}

// PUT /api/seller/products/:id
func (h *SellerHandler) UpdateProduct(c *gin.Context) {
	seller, ok := h.seller(c)
	if !ok {
		return
	}
	userID, _ := utils.GetUserIDFromContext(c)

	productID, err := utils.ParseUUIDParam(c, "id", "product")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var patch services.ProductPatch
	if err := bindProduct(c, h.uploader, &patch, &patch); err != nil {
		utils.HandleError(c, err)
		return
	}

	product, err := h.sellerService.UpdateProduct(c.Request.Context(), seller, userID, productID, &patch)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, i18n.KeyProductUpdated, product)
}

// DELETE /api/seller/products/:id
func (h *SellerHandler) DeleteProduct(c *gin.Context) {
	seller, ok := h.seller(c)
	if !ok {
		return
	}
	userID, _ := utils.GetUserIDFromContext(c)

	productID, err := utils.ParseUUIDParam(c, "id", "product")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := h.sellerService.DeleteProduct(c.Request.Context(), seller, userID, productID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, i18n.KeyProductDeleted, nil)
}

// GET /api/seller/stats
func (h *SellerHandler) Stats(c *gin.Context) {
	seller, ok := h.seller(c)
	if !ok {
		return
	}

	stats, err := h.sellerService.Stats(c.Request.Context(), seller)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /api/seller/reviews
func (h *SellerHandler) Reviews(c *gin.Context) {
	seller, ok := h.seller(c)
	if !ok {
		return
	}

	reviews, err := h.sellerService.ListReviews(c.Request.Context(), seller)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, reviews)
}

// GET /api/seller/products/export
func (h *SellerHandler) ExportProducts(c *gin.Context) {
	seller, ok := h.seller(c)
	if !ok {
		return
	}

	f, err := h.sellerService.ExportProducts(c.Request.Context(), seller)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close workbook")
		}
	}()

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		logrus.WithError(err).WithField("seller_id", seller.ID).Error("failed to stream export")
	}
}

// seller returns the profile stored by middleware.ApprovedSeller.
func (h *SellerHandler) seller(c *gin.Context) (*models.Seller, bool) {
	seller, ok := middleware.SellerFromContext(c)
	if !ok {
		utils.ForbiddenResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeySellerNotApproved))
		return nil, false
	}
	return seller, true
}
