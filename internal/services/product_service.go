// internal/services/product_service.go
package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/events"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

// ProductService serves the public catalog and holds the write path shared
// by sellers and admins.
type ProductService struct {
	products   repository.ProductStore
	categories *CategoryService
	events     eventEmitter
	now        func() time.Time
}

// Actor identifies who performs a product write.
type Actor struct {
	UserID uuid.UUID
	Role   models.Role
}

type ProductListParams struct {
	utils.PaginationParams
	CategoryID *uuid.UUID
	SellerID   *uuid.UUID
}

func NewProductService(products repository.ProductStore, categories *CategoryService, publisher events.Publisher) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		events:     newEventEmitter(publisher),
		now:        time.Now,
	}
}

// List returns every product, newest first unless params say otherwise.
func (s *ProductService) List(ctx context.Context, params ProductListParams) ([]models.Product, int64, error) {
	return s.products.List(ctx, repository.ProductFilter{
		CategoryID: params.CategoryID,
		SellerID:   params.SellerID,
		Search:     params.Search,
		Sort:       params.Sort,
		Order:      params.Order,
		Offset:     params.Offset(),
		Limit:      params.Limit,
	})
}

// Featured returns active, approved, featured products.
func (s *ProductService) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit < 1 || limit > 50 {
		limit = 8
	}
	yes := true
	products, _, err := s.products.List(ctx, repository.ProductFilter{
		IsActive:   &yes,
		IsApproved: &yes,
		IsFeatured: &yes,
		Sort:       "created_at",
		Order:      "desc",
		Limit:      limit,
	})
	return products, err
}

// Search matches name, description and brand of active, approved products.
func (s *ProductService) Search(ctx context.Context, params utils.PaginationParams) ([]models.Product, int64, error) {
	if params.Search == "" {
		return nil, 0, apperrors.InvalidInput("search query is required")
	}
	yes := true
	return s.products.List(ctx, repository.ProductFilter{
		Search:     params.Search,
		IsActive:   &yes,
		IsApproved: &yes,
		Sort:       params.Sort,
		Order:      params.Order,
		Offset:     params.Offset(),
		Limit:      params.Limit,
	})
}

// ByCategory returns products whose category or sub-category is categoryID.
func (s *ProductService) ByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error) {
	products, _, err := s.products.List(ctx, repository.ProductFilter{
		CategoryID: &categoryID,
		Sort:       "created_at",
		Order:      "desc",
	})
	return products, err
}

// Get returns one product and counts the view.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.products.IncrementViews(ctx, id); err != nil {
		logrus.WithError(err).WithField("product_id", id).Warn("failed to count product view")
	} else {
		product.Views++
	}
	return product, nil
}

// Create builds a product for sellerID from patch.
func (s *ProductService) Create(ctx context.Context, sellerID uuid.UUID, patch *ProductPatch, actor Actor) (*models.Product, error) {
	product := models.NewProduct(sellerID)

	fields, custom := s.apply(product, patch)
	if patch.Price == nil {
		fields = append(fields, apperrors.FieldError{Field: "price", Tag: "required", Message: "price is required"})
	}
	if patch.ImageURL == "" {
		product.SetPrimaryImage(models.PlaceholderImageURL)
	}
	if err := s.validate(ctx, product, fields, custom); err != nil {
		return nil, err
	}
	if err := s.resolveCustomCategory(ctx, product, custom); err != nil {
		return nil, err
	}

	err := s.products.Create(ctx, product)
	productWrites.WithLabelValues("create", string(actor.Role)).Inc()
	if err != nil {
		return nil, err
	}

	s.events.emit(ctx, events.ProductCreated, events.AggregateProduct, product.ID, actor.UserID, productEventData(product))
	return product, nil
}

// Update merges patch into product and writes it if nobody changed it since
// it was loaded.
func (s *ProductService) Update(ctx context.Context, product *models.Product, patch *ProductPatch, actor Actor) (*models.Product, error) {
	expectedVersion := product.Version

	fields, custom := s.apply(product, patch)
	if err := s.validate(ctx, product, fields, custom); err != nil {
		return nil, err
	}
	if err := s.resolveCustomCategory(ctx, product, custom); err != nil {
		return nil, err
	}

	err := s.products.Update(ctx, product, expectedVersion)
	productWrites.WithLabelValues("update", string(actor.Role)).Inc()
	if err != nil {
		return nil, err
	}

	s.events.emit(ctx, events.ProductUpdated, events.AggregateProduct, product.ID, actor.UserID, productEventData(product))
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, product *models.Product, actor Actor) error {
	err := s.products.Delete(ctx, product.ID)
	productWrites.WithLabelValues("delete", string(actor.Role)).Inc()
	if err != nil {
		return err
	}

	s.events.emit(ctx, events.ProductDeleted, events.AggregateProduct, product.ID, actor.UserID, productEventData(product))
	return nil
}

// apply copies the patch onto product. A custom category name takes the
// place of the category id and is returned for resolveCustomCategory.
func (s *ProductService) apply(product *models.Product, patch *ProductPatch) ([]apperrors.FieldError, string) {
	custom := ""
	if patch.CustomCategory != nil {
		custom = strings.TrimSpace(*patch.CustomCategory)
	}
	if custom == "" {
		return patch.ApplyTo(product), ""
	}

	withoutCategory := *patch
	withoutCategory.Category = nil
	return withoutCategory.ApplyTo(product), custom
}

// resolveCustomCategory finds or creates the custom category. It runs only
// after validation passed so a rejected write leaves no category behind.
func (s *ProductService) resolveCustomCategory(ctx context.Context, product *models.Product, custom string) error {
	if custom == "" {
		return nil
	}
	category, err := s.categories.ResolveCustom(ctx, custom)
	if err != nil {
		return err
	}
	product.CategoryID = category.ID
	return nil
}

// validate adds the checks that need the store to the entity's own rules and
// reports all violations together. With a custom category pending, the
// category reference is not checked.
func (s *ProductService) validate(ctx context.Context, product *models.Product, fields []apperrors.FieldError, custom string) error {
	if err := product.Validate(); err != nil {
		for _, field := range apperrors.Fields(err) {
			if custom != "" && field.Field == "category" {
				continue
			}
			fields = append(fields, field)
		}
	}

	if custom == "" && product.CategoryID != uuid.Nil {
		ok, err := s.categories.Exists(ctx, product.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			fields = append(fields, apperrors.FieldError{Field: "category", Tag: "exists", Message: "category does not exist"})
		}
	}
	if product.SubCategoryID != nil {
		ok, err := s.categories.Exists(ctx, *product.SubCategoryID)
		if err != nil {
			return err
		}
		if !ok {
			fields = append(fields, apperrors.FieldError{Field: "sub_category", Tag: "exists", Message: "sub_category does not exist"})
		}
	}
	if product.SKU != "" {
		taken, err := s.products.SKUExists(ctx, product.SKU, product.ID)
		if err != nil {
			return err
		}
		if taken {
			fields = append(fields, apperrors.FieldError{Field: "sku", Tag: "unique", Message: "sku already exists"})
		}
	}

	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}

func productEventData(p *models.Product) map[string]interface{} {
	return map[string]interface{}{
		"seller_id":   p.SellerID,
		"sku":         p.SKU,
		"name":        p.Name,
		"price":       p.Price,
		"stock":       p.Stock,
		"is_active":   p.IsActive,
		"is_approved": p.IsApproved,
		"version":     p.Version,
	}
}
