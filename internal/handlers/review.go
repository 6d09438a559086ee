// internal/handlers/review.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/mvshop-backend/internal/i18n"
	"github.com/javajoker/mvshop-backend/internal/services"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// GET /api/products/:id/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	productID, err := utils.ParseUUIDParam(c, "id", "product")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	reviews, err := h.reviewService.ListForProduct(c.Request.Context(), productID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, reviews)
}

// POST /api/products/:id/reviews
func (h *ReviewHandler) AddReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID, err := utils.ParseUUIDParam(c, "id", "product")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var req services.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	reviewer := services.Reviewer{UserID: userID, Name: utils.GetUserNameFromContext(c)}
	reviews, err := h.reviewService.Add(c.Request.Context(), productID, reviewer, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, i18n.KeyReviewAdded, reviews)
}

// PATCH /api/products/:id/reviews
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID, err := utils.ParseUUIDParam(c, "id", "product")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var req services.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), productID, userID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, i18n.KeyReviewUpdated, review)
}

// DELETE /api/products/:id/reviews
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID, err := utils.ParseUUIDParam(c, "id", "product")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), productID, userID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, i18n.KeyReviewDeleted, nil)
}

// GET /api/products/vendor/:vendorId/reviews
func (h *ReviewHandler) VendorReviews(c *gin.Context) {
	vendorID, err := utils.ParseUUIDParam(c, "vendorId", "vendor")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	reviews, err := h.reviewService.ListForVendor(c.Request.Context(), vendorID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, reviews)
}
