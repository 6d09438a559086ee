// internal/services/admin_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/events"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
)

// AdminService moderates products and sellers. Admins may act on any
// product regardless of owner.
type AdminService struct {
	accounts repository.AccountStore
	products repository.ProductStore
	catalog  *ProductService
	events   eventEmitter
	now      func() time.Time
}

type AdminProductRequest struct {
	ProductPatch
	Seller string `json:"seller"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

func NewAdminService(store *repository.Store, catalog *ProductService, publisher events.Publisher) *AdminService {
	return &AdminService{
		accounts: store.Accounts,
		products: store.Products,
		catalog:  catalog,
		events:   newEventEmitter(publisher),
		now:      time.Now,
	}
}

// CreateProduct adds a product on behalf of an existing seller.
func (s *AdminService) CreateProduct(ctx context.Context, adminID uuid.UUID, req *AdminProductRequest) (*models.Product, error) {
	sellerID, err := uuid.Parse(strings.TrimSpace(req.Seller))
	if err != nil {
		return nil, apperrors.Validation([]apperrors.FieldError{
			{Field: "seller", Tag: "required", Message: "seller is required"},
		})
	}

	if _, err := s.accounts.FindSellerByID(ctx, sellerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("seller")
		}
		return nil, err
	}

	return s.catalog.Create(ctx, sellerID, &req.ProductPatch, Actor{UserID: adminID, Role: models.RoleAdmin})
}

func (s *AdminService) UpdateProduct(ctx context.Context, adminID, productID uuid.UUID, patch *ProductPatch) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.catalog.Update(ctx, product, patch, Actor{UserID: adminID, Role: models.RoleAdmin})
}

func (s *AdminService) DeleteProduct(ctx context.Context, adminID, productID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	return s.catalog.Delete(ctx, product, Actor{UserID: adminID, Role: models.RoleAdmin})
}

// Approve publishes a product. Approving twice keeps the first approval
// date.
func (s *AdminService) Approve(ctx context.Context, adminID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	expectedVersion := product.Version

	product.SetApproval(true, s.now())
	product.ApprovedBy = &adminID

	err = s.products.Update(ctx, product, expectedVersion)
	moderationDecisions.WithLabelValues("product", "approved").Inc()
	if err != nil {
		return nil, err
	}

	s.events.emit(ctx, events.ProductApproved, events.AggregateProduct, product.ID, adminID, productEventData(product))
	return product, nil
}

// Reject withdraws approval and records why.
func (s *AdminService) Reject(ctx context.Context, adminID, productID uuid.UUID, reason string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	expectedVersion := product.Version

	product.SetApproval(false, s.now())
	product.ApprovedBy = &adminID
	product.RejectionReason = strings.TrimSpace(reason)
	if product.RejectionReason == "" {
		product.RejectionReason = models.DefaultRejectionReason
	}

	err = s.products.Update(ctx, product, expectedVersion)
	moderationDecisions.WithLabelValues("product", "rejected").Inc()
	if err != nil {
		return nil, err
	}

	data := productEventData(product)
	data["reason"] = product.RejectionReason
	s.events.emit(ctx, events.ProductRejected, events.AggregateProduct, product.ID, adminID, data)
	return product, nil
}

func (s *AdminService) ListPendingProducts(ctx context.Context) ([]models.Product, error) {
	no := false
	products, _, err := s.products.List(ctx, repository.ProductFilter{
		IsApproved: &no,
		Sort:       "created_at",
		Order:      "asc",
	})
	return products, err
}

func (s *AdminService) ListPendingSellers(ctx context.Context) ([]models.Seller, error) {
	no := false
	return s.accounts.ListSellers(ctx, &no)
}

// ApproveSeller lets a vendor log in and manage products.
func (s *AdminService) ApproveSeller(ctx context.Context, adminID, sellerID uuid.UUID) (*models.Seller, error) {
	seller, err := s.accounts.FindSellerByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	seller.Approve(s.now())
	err = s.accounts.UpdateSeller(ctx, seller)
	moderationDecisions.WithLabelValues("seller", "approved").Inc()
	if err != nil {
		return nil, err
	}

	s.events.emit(ctx, events.SellerApproved, events.AggregateSeller, seller.ID, adminID, map[string]interface{}{
		"user_id":   seller.UserID,
		"shop_name": seller.ShopName,
	})
	return seller, nil
}
