// Package repository declares the catalog store consumed by the services.
// postgres holds the gorm implementation and memory an in-process one.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/javajoker/mvshop-backend/internal/models"
)

// ProductSortFields are the columns products may be ordered by.
var ProductSortFields = []string{"created_at", "price", "name", "ratings", "total_sold", "views", "stock"}

// ProductFilter narrows a product listing. Nil pointers mean "any".
type ProductFilter struct {
	SellerID *uuid.UUID
	// CategoryID matches either the category or the sub-category.
	CategoryID *uuid.UUID
	Search     string
	IsActive   *bool
	IsApproved *bool
	IsFeatured *bool

	Sort   string
	Order  string
	Offset int
	// Limit 0 returns every match.
	Limit int
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// FindOwned returns the product only when sellerID owns it.
	FindOwned(ctx context.Context, id, sellerID uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	SKUExists(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error)
	// Update writes product if its stored version still equals
	// expectedVersion and bumps product.Version. A stale version yields a
	// Conflict error.
	Update(ctx context.Context, product *models.Product, expectedVersion int64) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountChildren(ctx context.Context, id uuid.UUID) (int64, error)
}

type AccountStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	// CreateSellerAccount stores the user and its seller profile atomically.
	CreateSellerAccount(ctx context.Context, user *models.User, seller *models.Seller) error
	FindSellerByID(ctx context.Context, id uuid.UUID) (*models.Seller, error)
	FindSellerByUserID(ctx context.Context, userID uuid.UUID) (*models.Seller, error)
	ListSellers(ctx context.Context, approved *bool) ([]models.Seller, error)
	UpdateSeller(ctx context.Context, seller *models.Seller) error
}

type OrderStore interface {
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Order, error)
}

type AuditStore interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// Store bundles the stores of one backend.
type Store struct {
	Products   ProductStore
	Categories CategoryStore
	Accounts   AccountStore
	Orders     OrderStore
	Audit      AuditStore
}
