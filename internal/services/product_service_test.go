package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

func TestProductService_GetCountsViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	product := env.createProduct(t, "SKU-P1")

	got, err := env.catalog.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Views)

	got, err = env.catalog.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Views)

	_, err = env.catalog.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductService_FeaturedAndSearchOnlyPublished(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	adminID := uuid.New()

	hidden := env.createProduct(t, "SKU-P2")
	req := &AdminProductRequest{ProductPatch: *env.validPatch("SKU-P3"), Seller: env.seller.ID.String()}
	req.Name = strPtr("Wireless Keyboard")
	req.IsFeatured = boolPtr(true)
	shown, err := env.admin.CreateProduct(ctx, adminID, req)
	require.NoError(t, err)
	_, err = env.admin.Approve(ctx, adminID, shown.ID)
	require.NoError(t, err)

	featured, err := env.catalog.Featured(ctx, 0)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, shown.ID, featured[0].ID)

	found, total, err := env.catalog.Search(ctx, utils.NormalizePagination(utils.PaginationParams{Search: "wireless"}))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, found, 1)
	assert.NotEqual(t, hidden.ID, found[0].ID)

	_, _, err = env.catalog.Search(ctx, utils.PaginationParams{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	all, total, err := env.catalog.List(ctx, ProductListParams{PaginationParams: utils.NormalizePagination(utils.PaginationParams{})})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)
}

func TestProductService_ByCategoryMatchesSubCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent := env.category.ID.String()
	child, err := env.categories.Create(ctx, &CategoryRequest{Name: "Mice", ParentCategory: &parent})
	require.NoError(t, err)

	patch := env.validPatch("SKU-P4")
	childRef := child.ID.String()
	patch.SubCategory = &childRef
	product, err := env.sellers.CreateProduct(ctx, env.seller, env.sellerUser.ID, patch)
	require.NoError(t, err)

	bySub, err := env.catalog.ByCategory(ctx, child.ID)
	require.NoError(t, err)
	require.Len(t, bySub, 1)
	assert.Equal(t, product.ID, bySub[0].ID)

	byParent, err := env.catalog.ByCategory(ctx, env.category.ID)
	require.NoError(t, err)
	assert.Len(t, byParent, 1)
}
