// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/mvshop-backend/internal/i18n"
	"github.com/javajoker/mvshop-backend/internal/services"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
	uploader     services.ImageUploader
}

func NewAdminHandler(adminService *services.AdminService, uploader services.ImageUploader) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		uploader:     uploader,
	}
}

// POST /api/admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	adminID, _ := utils.GetUserIDFromContext(c)

	var req services.AdminProductRequest
	if err := bindProduct(c, h.uploader, &req, &req.ProductPatch); err != nil {
		utils.HandleError(c, err)
		return
	}
	if req.Seller == "" {
		req.Seller = c.PostForm("seller")
	}

	product, err := h.adminService.CreateProduct(c.Request.Context(), adminID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, i18n.KeyProductCreated, product)
}

// PUT /api/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	adminID, _ := utils.GetUserIDFromContext(c)

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

	product, err := h.adminService.UpdateProduct(c.Request.Context(), adminID, productID, &patch)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, i18n.KeyProductUpdated, product)
}

// DELETE /api/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	adminID, _ := utils.GetUserIDFromContext(c)

	productID, err := utils.ParseUUIDParam(c, "id", "product")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := h.adminService.DeleteProduct(c.Request.Context(), adminID, productID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, i18n.KeyProductDeleted, nil)
}

// PUT /api/products/:id/approve
func (h *AdminHandler) ApproveProduct(c *gin.Context) {
	adminID, _ := utils.GetUserIDFromContext(c)

	productID, err := utils.ParseUUIDParam(c, "id", "product")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	product, err := h.adminService.Approve(c.Request.Context(), adminID, productID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, i18n.KeyProductApproved, product)
}

// PUT /api/products/:id/reject
func (h *AdminHandler) RejectProduct(c *gin.Context) {
	adminID, _ := utils.GetUserIDFromContext(c)

	productID, err := utils.ParseUUIDParam(c, "id", "product")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// The body is optional; an empty reason falls back to the default.
	var req services.RejectRequest
	_ = c.ShouldBindJSON(&req)

	product, err := h.adminService.Reject(c.Request.Context(), adminID, productID, req.Reason)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, i18n.KeyProductRejected, product)
}

// GET /api/admin/products/pending
func (h *AdminHandler) PendingProducts(c *gin.Context) {
	products, err := h.adminService.ListPendingProducts(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, products)
}

// GET /api/admin/sellers/pending
func (h *AdminHandler) PendingSellers(c *gin.Context) {
	sellers, err := h.adminService.ListPendingSellers(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, sellers)
}

// PUT /api/admin/sellers/:id/approve
func (h *AdminHandler) ApproveSeller(c *gin.Context) {
	adminID, _ := utils.GetUserIDFromContext(c)

	sellerID, err := utils.ParseUUIDParam(c, "id", "seller")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	seller, err := h.adminService.ApproveSeller(c.Request.Context(), adminID, sellerID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, i18n.KeySellerApproved, seller)
}
