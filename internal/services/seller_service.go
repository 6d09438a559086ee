// internal/services/seller_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/events"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

// SellerService scopes every product operation to the products the calling
// seller owns.
type SellerService struct {
	accounts repository.AccountStore
	products repository.ProductStore
	orders   repository.OrderStore
	catalog  *ProductService
	reviews  *ReviewService
	events   eventEmitter
}

type SellerRegisterRequest struct {
	Name         string              `json:"name" validate:"required,max=100"`
	Email        string              `json:"email" validate:"required,email"`
	Password     string              `json:"password" validate:"required,min=6"`
	Phone        string              `json:"phone" validate:"omitempty,max=30"`
	ShopName     string              `json:"shop_name" validate:"required,max=100"`
	Description  string              `json:"description" validate:"max=1000"`
	Address      models.Address      `json:"address"`
	BusinessInfo models.BusinessInfo `json:"business_info"`
}

type SellerRegistration struct {
	User   *models.User   `json:"user"`
	Seller *models.Seller `json:"seller"`
}

type SellerStats struct {
	TotalSales      float64 `json:"total_sales"`
	TotalOrders     int     `json:"total_orders"`
	TotalProducts   int64   `json:"total_products"`
	TotalCustomers  int     `json:"total_customers"`
	LowStockCount   int     `json:"low_stock_count"`
	PendingApproval int     `json:"pending_approval"`
}

func NewSellerService(store *repository.Store, catalog *ProductService, reviews *ReviewService, publisher events.Publisher) *SellerService {
	return &SellerService{
		accounts: store.Accounts,
		products: store.Products,
		orders:   store.Orders,
		catalog:  catalog,
		reviews:  reviews,
		events:   newEventEmitter(publisher),
	}
}

// Register creates a seller-role user with a pending vendor profile.
func (s *SellerService) Register(ctx context.Context, req *SellerRegisterRequest) (*SellerRegistration, error) {
	if err := utils.ValidationFailure(req); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	_, err := s.accounts.FindUserByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.InvalidInput("user with this email already exists")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Role:  models.RoleSeller,
		Phone: req.Phone,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	seller := &models.Seller{
		ShopName:     strings.TrimSpace(req.ShopName),
		Email:        email,
		Phone:        req.Phone,
		Description:  req.Description,
		Address:      req.Address,
		BusinessInfo: req.BusinessInfo,
	}
	if err := s.accounts.CreateSellerAccount(ctx, user, seller); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.InvalidInput("user with this email already exists")
		}
		return nil, err
	}

	s.events.emit(ctx, events.SellerRegistered, events.AggregateSeller, seller.ID, user.ID, map[string]interface{}{
		"shop_name": seller.ShopName,
		"email":     seller.Email,
	})
	return &SellerRegistration{User: user, Seller: seller}, nil
}

// ResolveSeller binds an authenticated user to its approved seller profile.
func (s *SellerService) ResolveSeller(ctx context.Context, userID uuid.UUID) (*models.Seller, error) {
	seller, err := s.accounts.FindSellerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("seller")
		}
		return nil, err
	}
	if !seller.IsApproved {
		return nil, apperrors.Forbidden("seller account is pending approval")
	}
	return seller, nil
}

func (s *SellerService) ListProducts(ctx context.Context, seller *models.Seller, params utils.PaginationParams) ([]models.Product, int64, error) {
	return s.catalog.List(ctx, ProductListParams{
		PaginationParams: params,
		SellerID:         &seller.ID,
	})
}

// CreateProduct adds a product owned by seller. Sellers cannot feature
// their own products.
func (s *SellerService) CreateProduct(ctx context.Context, seller *models.Seller, userID uuid.UUID, patch *ProductPatch) (*models.Product, error) {
	patch.IsFeatured = nil
	return s.catalog.Create(ctx, seller.ID, patch, Actor{UserID: userID, Role: models.RoleSeller})
}

func (s *SellerService) UpdateProduct(ctx context.Context, seller *models.Seller, userID, productID uuid.UUID, patch *ProductPatch) (*models.Product, error) {
	product, err := s.products.FindOwned(ctx, productID, seller.ID)
	if err != nil {
		return nil, err
	}
	patch.IsFeatured = nil
	return s.catalog.Update(ctx, product, patch, Actor{UserID: userID, Role: models.RoleSeller})
}

func (s *SellerService) DeleteProduct(ctx context.Context, seller *models.Seller, userID, productID uuid.UUID) error {
	product, err := s.products.FindOwned(ctx, productID, seller.ID)
	if err != nil {
		return err
	}
	return s.catalog.Delete(ctx, product, Actor{UserID: userID, Role: models.RoleSeller})
}

// Stats summarizes the seller's inventory and delivered orders.
func (s *SellerService) Stats(ctx context.Context, seller *models.Seller) (*SellerStats, error) {
	products, total, err := s.products.List(ctx, repository.ProductFilter{SellerID: &seller.ID})
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListBySeller(ctx, seller.ID)
	if err != nil {
		return nil, err
	}

	stats := &SellerStats{
		TotalOrders:   len(orders),
		TotalProducts: total,
	}

	customers := make(map[uuid.UUID]struct{})
	for _, order := range orders {
		customers[order.UserID] = struct{}{}
		if order.OrderStatus == models.OrderStatusDelivered {
			stats.TotalSales += order.TotalPrice
		}
	}
	stats.TotalCustomers = len(customers)

	for i := range products {
		if products[i].IsLowStock() {
			stats.LowStockCount++
		}
		if !products[i].IsApproved {
			stats.PendingApproval++
		}
	}

	return stats, nil
}

func (s *SellerService) ListReviews(ctx context.Context, seller *models.Seller) ([]SellerReview, error) {
	return s.reviews.ListForSeller(ctx, seller.ID)
}
