package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
)

type CategoryStore struct {
	mu    sync.RWMutex
	store map[uuid.UUID]*models.Category
}

var _ repository.CategoryStore = (*CategoryStore)(nil)

func NewCategoryStore() *CategoryStore {
	return &CategoryStore{store: make(map[uuid.UUID]*models.Category)}
}

func (r *CategoryStore) Create(ctx context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.store {
		if existing.Slug == category.Slug {
			return apperrors.Conflict("category slug already exists")
		}
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	now := time.Now()
	category.CreatedAt, category.UpdatedAt = now, now

	copy := *category
	copy.Subcategories = nil
	r.store[copy.ID] = &copy
	return nil
}

func (r *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.store[id]
	if !ok {
		return nil, apperrors.NotFound("category")
	}
	copy := *category
	return &copy, nil
}

func (r *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, category := range r.store {
		if category.Slug == slug {
			copy := *category
			return &copy, nil
		}
	}
	return nil, apperrors.NotFound("category")
}

func (r *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Category, 0, len(r.store))
	for _, category := range r.store {
		result = append(result, *category)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *CategoryStore) Update(ctx context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[category.ID]
	if !ok {
		return apperrors.NotFound("category")
	}
	for id, other := range r.store {
		if id != category.ID && other.Slug == category.Slug {
			return apperrors.Conflict("category slug already exists")
		}
	}

	category.CreatedAt = stored.CreatedAt
	category.UpdatedAt = time.Now()
	copy := *category
	copy.Subcategories = nil
	r.store[copy.ID] = &copy
	return nil
}

func (r *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return apperrors.NotFound("category")
	}
	delete(r.store, id)
	return nil
}

func (r *CategoryStore) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, category := range r.store {
		if category.ParentCategoryID != nil && *category.ParentCategoryID == id {
			count++
		}
	}
	return count, nil
}
