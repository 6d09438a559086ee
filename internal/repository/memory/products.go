// Package memory implements the catalog store in process memory. It backs
// STORE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
)

// ProductStore is an in-memory implementation of repository.ProductStore.
type ProductStore struct {
	mu    sync.RWMutex
	store map[uuid.UUID]*models.Product
}

var _ repository.ProductStore = (*ProductStore)(nil)

func NewProductStore() *ProductStore {
	return &ProductStore{store: make(map[uuid.UUID]*models.Product)}
}

func (r *ProductStore) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.store {
		if existing.SKU == product.SKU {
			return apperrors.Conflict("sku already exists")
		}
	}

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.Version == 0 {
		product.Version = 1
	}
	now := time.Now()
	product.CreatedAt, product.UpdatedAt = now, now

	r.store[product.ID] = cloneProduct(product)
	return nil
}

func (r *ProductStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.store[id]
	if !ok {
		return nil, apperrors.NotFound("product")
	}
	return cloneProduct(product), nil
}

func (r *ProductStore) FindOwned(ctx context.Context, id, sellerID uuid.UUID) (*models.Product, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, apperrors.NotFound("product")
	}
	return product, nil
}

func (r *ProductStore) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	r.mu.RLock()
	matched := make([]models.Product, 0, len(r.store))
	for _, product := range r.store {
		if matches(product, filter) {
			matched = append(matched, *cloneProduct(product))
		}
	}
	r.mu.RUnlock()

	sortProducts(matched, filter.Sort, filter.Order)

	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []models.Product{}, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *ProductStore) SKUExists(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, product := range r.store {
		if product.SKU == sku && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ProductStore) Update(ctx context.Context, product *models.Product, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[product.ID]
	if !ok {
		return apperrors.NotFound("product")
	}
	if stored.Version != expectedVersion {
		return apperrors.Conflict("product was modified concurrently, reload and retry")
	}
	for id, other := range r.store {
		if id != product.ID && other.SKU == product.SKU {
			return apperrors.Conflict("sku already exists")
		}
	}

	product.Version = expectedVersion + 1
	product.Views = stored.Views
	product.CreatedAt = stored.CreatedAt
	product.UpdatedAt = time.Now()
	r.store[product.ID] = cloneProduct(product)
	return nil
}

func (r *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return apperrors.NotFound("product")
	}
	delete(r.store, id)
	return nil
}

func (r *ProductStore) IncrementViews(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.store[id]
	if !ok {
		return apperrors.NotFound("product")
	}
	product.Views++
	return nil
}

func (r *ProductStore) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, product := range r.store {
		if inCategory(product, categoryID) {
			count++
		}
	}
	return count, nil
}

func inCategory(p *models.Product, categoryID uuid.UUID) bool {
	return p.CategoryID == categoryID || (p.SubCategoryID != nil && *p.SubCategoryID == categoryID)
}

func matches(p *models.Product, f repository.ProductFilter) bool {
	if f.SellerID != nil && p.SellerID != *f.SellerID {
		return false
	}
	if f.CategoryID != nil && !inCategory(p, *f.CategoryID) {
		return false
	}
	if f.IsActive != nil && p.IsActive != *f.IsActive {
		return false
	}
	if f.IsApproved != nil && p.IsApproved != *f.IsApproved {
		return false
	}
	if f.IsFeatured != nil && p.IsFeatured != *f.IsFeatured {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.Brand), q) {
			return false
		}
	}
	return true
}

func sortProducts(products []models.Product, field, order string) {
	less := func(a, b *models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	switch field {
	case "price":
		less = func(a, b *models.Product) bool { return a.Price < b.Price }
	case "name":
		less = func(a, b *models.Product) bool { return a.Name < b.Name }
	case "ratings":
		less = func(a, b *models.Product) bool { return a.Ratings < b.Ratings }
	case "total_sold":
		less = func(a, b *models.Product) bool { return a.TotalSold < b.TotalSold }
	case "views":
		less = func(a, b *models.Product) bool { return a.Views < b.Views }
	case "stock":
		less = func(a, b *models.Product) bool { return a.Stock < b.Stock }
	}

	sort.SliceStable(products, func(i, j int) bool {
		if order == "asc" {
			return less(&products[i], &products[j])
		}
		return less(&products[j], &products[i])
	})
}

// cloneProduct deep-copies the slices so callers cannot mutate stored state.
func cloneProduct(p *models.Product) *models.Product {
	c := *p
	c.Images = append(models.ProductImages{}, p.Images...)
	c.Tags = append(pq.StringArray{}, p.Tags...)
	c.Features = append(pq.StringArray{}, p.Features...)
	c.Specifications = append(models.Specifications{}, p.Specifications...)
	c.Variants = make(models.Variants, len(p.Variants))
	for i, variant := range p.Variants {
		variant.Options = append([]models.VariantOption{}, variant.Options...)
		c.Variants[i] = variant
	}
	c.SEO.Keywords = append(pq.StringArray(nil), p.SEO.Keywords...)
	c.Reviews = make(models.Reviews, len(p.Reviews))
	for i, review := range p.Reviews {
		review.Images = append([]string{}, review.Images...)
		c.Reviews[i] = review
	}
	if p.ComparePrice != nil {
		v := *p.ComparePrice
		c.ComparePrice = &v
	}
	if p.Weight != nil {
		v := *p.Weight
		c.Weight = &v
	}
	return &c
}
