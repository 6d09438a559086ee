package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

type ProductStore struct {
	db *gorm.DB
}

var _ repository.ProductStore = (*ProductStore)(nil)

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (r *ProductStore) Create(ctx context.Context, product *models.Product) error {
	if product.Version == 0 {
		product.Version = 1
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return translate(err, "sku")
	}
	return nil
}

func (r *ProductStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err, "product")
	}
	return &product, nil
}

func (r *ProductStore) FindOwned(ctx context.Context, id, sellerID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", id, sellerID).
		First(&product).Error
	if err != nil {
		return nil, translate(err, "product")
	}
	return &product, nil
}

func (r *ProductStore) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.SellerID != nil {
		query = query.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.CategoryID != nil {
		query = query.Where("(category_id = ? OR sub_category_id = ?)", *filter.CategoryID, *filter.CategoryID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsApproved != nil {
		query = query.Where("is_approved = ?", *filter.IsApproved)
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(name ILIKE ? OR description ILIKE ? OR brand ILIKE ?)", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "product")
	}

	params := utils.PaginationParams{Sort: filter.Sort, Order: filter.Order}
	if params.Order != "asc" {
		params.Order = "desc"
	}
	query = utils.ApplySort(query, params, repository.ProductSortFields)
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, translate(err, "product")
	}
	return products, total, nil
}

func (r *ProductStore) SKUExists(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("sku = ? AND id <> ?", sku, excludeID).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "product")
	}
	return count > 0, nil
}

func (r *ProductStore) Update(ctx context.Context, product *models.Product, expectedVersion int64) error {
	product.Version = expectedVersion + 1
	result := r.db.WithContext(ctx).Model(product).
		Where("version = ?", expectedVersion).
		Select("*").Omit("created_at", "views").
		Updates(product)
	if result.Error != nil {
		product.Version = expectedVersion
		return translate(result.Error, "sku")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	product.Version = expectedVersion
	if _, err := r.FindByID(ctx, product.ID); err != nil {
		return err
	}
	return apperrors.Conflict("product was modified concurrently, reload and retry")
}

func (r *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "product")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("product")
	}
	return nil
}

func (r *ProductStore) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error, "product")
}

func (r *ProductStore) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("category_id = ? OR sub_category_id = ?", categoryID, categoryID).
		Count(&count).Error
	if err != nil {
		return 0, translate(err, "product")
	}
	return count, nil
}
