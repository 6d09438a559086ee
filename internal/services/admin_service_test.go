package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/events"
	"github.com/javajoker/mvshop-backend/internal/models"
)

func TestAdminService_ApproveTwiceKeepsFirstDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	product := env.createProduct(t, "SKU-A1")
	adminID := uuid.New()

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	env.admin.now = func() time.Time { return first }
	approved, err := env.admin.Approve(ctx, adminID, product.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	require.NotNil(t, approved.ApprovalDate)
	assert.Equal(t, adminID, *approved.ApprovedBy)

	env.admin.now = func() time.Time { return first.Add(48 * time.Hour) }
	again, err := env.admin.Approve(ctx, adminID, product.ID)
	require.NoError(t, err)
	assert.True(t, first.Equal(*again.ApprovalDate))
	assert.Contains(t, env.publisher.types(), events.ProductApproved)
}

func TestAdminService_RejectDefaultsReason(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	product := env.createProduct(t, "SKU-A2")

	_, err := env.admin.Approve(ctx, uuid.New(), product.ID)
	require.NoError(t, err)

	adminID := uuid.New()
	rejected, err := env.admin.Reject(ctx, adminID, product.ID, "   ")
	require.NoError(t, err)
	assert.False(t, rejected.IsApproved)
	assert.Equal(t, models.DefaultRejectionReason, rejected.RejectionReason)
	require.NotNil(t, rejected.ApprovedBy)
	assert.Equal(t, adminID, *rejected.ApprovedBy)

	stored, err := env.store.Products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, adminID, *stored.ApprovedBy)

	rejected, err = env.admin.Reject(ctx, uuid.New(), product.ID, "Blurry photos")
	require.NoError(t, err)
	assert.Equal(t, "Blurry photos", rejected.RejectionReason)

	_, err = env.admin.Reject(ctx, uuid.New(), uuid.New(), "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAdminService_ProductsOfAnySeller(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	adminID := uuid.New()

	req := &AdminProductRequest{ProductPatch: *env.validPatch("SKU-A3"), Seller: env.seller.ID.String()}
	req.IsFeatured = boolPtr(true)
	product, err := env.admin.CreateProduct(ctx, adminID, req)
	require.NoError(t, err)
	assert.Equal(t, env.seller.ID, product.SellerID)
	assert.True(t, product.IsFeatured)

	_, err = env.admin.CreateProduct(ctx, adminID, &AdminProductRequest{ProductPatch: *env.validPatch("SKU-A4"), Seller: uuid.New().String()})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = env.admin.CreateProduct(ctx, adminID, &AdminProductRequest{ProductPatch: *env.validPatch("SKU-A5")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	updated, err := env.admin.UpdateProduct(ctx, adminID, product.ID, &ProductPatch{Price: floatPtr(19.5)})
	require.NoError(t, err)
	assert.InDelta(t, 19.5, updated.Price, 1e-9)

	require.NoError(t, env.admin.DeleteProduct(ctx, adminID, product.ID))
	assert.ErrorIs(t, env.admin.DeleteProduct(ctx, adminID, product.ID), apperrors.ErrNotFound)
}

func TestAdminService_PendingQueues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pending := env.createProduct(t, "SKU-A6")
	published := env.createProduct(t, "SKU-A7")
	_, err := env.admin.Approve(ctx, uuid.New(), published.ID)
	require.NoError(t, err)

	products, err := env.admin.ListPendingProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, pending.ID, products[0].ID)

	_, waiting := env.createSeller(t, "waiting@example.com", false)
	sellers, err := env.admin.ListPendingSellers(ctx)
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, waiting.ID, sellers[0].ID)

	approved, err := env.admin.ApproveSeller(ctx, uuid.New(), waiting.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	assert.NotNil(t, approved.ApprovedAt)

	sellers, err = env.admin.ListPendingSellers(ctx)
	require.NoError(t, err)
	assert.Empty(t, sellers)
	assert.Contains(t, env.publisher.types(), events.SellerApproved)
}
