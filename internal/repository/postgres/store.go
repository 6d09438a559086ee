// Package postgres implements the catalog store on gorm and PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
)

// NewStore wires every store to db. The caller keeps ownership of db.
func NewStore(db *gorm.DB) *repository.Store {
	return &repository.Store{
		Products:   NewProductStore(db),
		Categories: NewCategoryStore(db),
		Accounts:   NewAccountStore(db),
		Orders:     NewOrderStore(db),
		Audit:      NewAuditStore(db),
	}
}

// translate maps gorm errors onto the application taxonomy.
func translate(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict(resource + " already exists")
	default:
		return apperrors.Internal(err)
	}
}

type OrderStore struct {
	db *gorm.DB
}

var _ repository.OrderStore = (*OrderStore)(nil)

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (r *OrderStore) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Where("seller_id = ?", sellerID).Find(&orders).Error; err != nil {
		return nil, translate(err, "order")
	}
	return orders, nil
}

type AuditStore struct {
	db *gorm.DB
}

var _ repository.AuditStore = (*AuditStore)(nil)

func NewAuditStore(db *gorm.DB) *AuditStore {
	return &AuditStore{db: db}
}

func (r *AuditStore) Create(ctx context.Context, entry *models.AuditLog) error {
	return translate(r.db.WithContext(ctx).Create(entry).Error, "audit log")
}
