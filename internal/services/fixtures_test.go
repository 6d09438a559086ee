package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/mvshop-backend/internal/events"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
	"github.com/javajoker/mvshop-backend/internal/repository/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event *events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

type testEnv struct {
	store      *repository.Store
	orders     *memory.OrderStore
	publisher  *recordingPublisher
	categories *CategoryService
	catalog    *ProductService
	reviews    *ReviewService
	sellers    *SellerService
	admin      *AdminService
	auth       *AuthService

	category   *models.Category
	seller     *models.Seller
	sellerUser *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	publisher := &recordingPublisher{}

	env := &testEnv{
		store:     store,
		orders:    store.Orders.(*memory.OrderStore),
		publisher: publisher,
	}
	env.categories = NewCategoryService(store.Categories, store.Products)
	env.catalog = NewProductService(store.Products, env.categories, publisher)
	env.reviews = NewReviewService(store.Products, publisher)
	env.sellers = NewSellerService(store, env.catalog, env.reviews, publisher)
	env.admin = NewAdminService(store, env.catalog, publisher)

	env.category = &models.Category{Name: "Electronics", Slug: "electronics", IsActive: true}
	require.NoError(t, store.Categories.Create(ctx, env.category))

	env.sellerUser, env.seller = env.createSeller(t, "shop@example.com", true)
	return env
}

func (env *testEnv) createSeller(t *testing.T, email string, approved bool) (*models.User, *models.Seller) {
	t.Helper()
	user := &models.User{Name: "Seller", Email: email, Role: models.RoleSeller}
	require.NoError(t, user.SetPassword("secret123"))
	seller := &models.Seller{ShopName: "Shop " + email, Email: email}
	require.NoError(t, env.store.Accounts.CreateSellerAccount(context.Background(), user, seller))
	if approved {
		seller.Approve(time.Now())
		require.NoError(t, env.store.Accounts.UpdateSeller(context.Background(), seller))
	}
	return user, seller
}

func (env *testEnv) validPatch(sku string) *ProductPatch {
	category := env.category.ID.String()
	return &ProductPatch{
		Name:        strPtr("Wireless Mouse"),
		Description: strPtr("Ergonomic wireless mouse"),
		Price:       floatPtr(25),
		Category:    &category,
		Brand:       strPtr("Logi"),
		SKU:         strPtr(sku),
		Stock:       intPtr(20),
	}
}

func (env *testEnv) createProduct(t *testing.T, sku string) *models.Product {
	t.Helper()
	product, err := env.sellers.CreateProduct(context.Background(), env.seller, env.sellerUser.ID, env.validPatch(sku))
	require.NoError(t, err)
	return product
}

func reviewer(name string) Reviewer {
	return Reviewer{UserID: uuid.New(), Name: name}
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
