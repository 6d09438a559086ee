package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
)

type CategoryStore struct {
	db *gorm.DB
}

var _ repository.CategoryStore = (*CategoryStore)(nil)

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (r *CategoryStore) Create(ctx context.Context, category *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(category).Error, "category slug")
}

func (r *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err, "category")
	}
	return &category, nil
}

func (r *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, translate(err, "category")
	}
	return &category, nil
}

func (r *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, translate(err, "category")
	}
	return categories, nil
}

func (r *CategoryStore) Update(ctx context.Context, category *models.Category) error {
	result := r.db.WithContext(ctx).Model(category).
		Select("*").Omit("created_at").
		Updates(category)
	if result.Error != nil {
		return translate(result.Error, "category slug")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("category")
	}
	return nil
}

func (r *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "category")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("category")
	}
	return nil
}

func (r *CategoryStore) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("parent_category_id = ?", id).
		Count(&count).Error
	if err != nil {
		return 0, translate(err, "category")
	}
	return count, nil
}
