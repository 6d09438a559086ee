package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
)

func TestCategoryService_TreeAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent := env.category.ID.String()
	child, err := env.categories.Create(ctx, &CategoryRequest{Name: "Mobile Phones", ParentCategory: &parent})
	require.NoError(t, err)
	assert.Equal(t, "mobile-phones", child.Slug)
	assert.Equal(t, 1, child.Level)

	tree, err := env.categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Subcategories, 1)
	assert.Equal(t, child.ID, tree[0].Subcategories[0].ID)

	childRef := child.ID.String()
	_, err = env.categories.Create(ctx, &CategoryRequest{Name: "Too Deep", ParentCategory: &childRef})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	err = env.categories.Delete(ctx, env.category.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	patch := env.validPatch("SKU-CAT")
	patch.SubCategory = &childRef
	_, err = env.sellers.CreateProduct(ctx, env.seller, env.sellerUser.ID, patch)
	require.NoError(t, err)

	err = env.categories.Delete(ctx, child.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCategoryService_ResolveCustomRejectsBlank(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.categories.ResolveCustom(context.Background(), "   ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
