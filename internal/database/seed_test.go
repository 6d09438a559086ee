package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/mvshop-backend/internal/config"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository/memory"
)

func TestSeedInitialDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cfg := config.SeedConfig{Enabled: true, AdminEmail: "admin@example.com", AdminPassword: "changeme"}

	require.NoError(t, SeedInitialData(ctx, store, cfg))
	first, err := store.Categories.List(ctx)
	require.NoError(t, err)

	require.NoError(t, SeedInitialData(ctx, store, cfg))
	second, err := store.Categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, second, len(first))

	admin, err := store.Accounts.FindUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, admin.CheckPassword("changeme"))

	laptops, err := store.Categories.FindBySlug(ctx, "laptops")
	require.NoError(t, err)
	electronics, err := store.Categories.FindBySlug(ctx, "electronics")
	require.NoError(t, err)
	assert.Equal(t, 1, laptops.Level)
	require.NotNil(t, laptops.ParentCategoryID)
	assert.Equal(t, electronics.ID, *laptops.ParentCategoryID)
}
