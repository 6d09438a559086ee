// internal/services/review_service.go
package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/events"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
)

type ReviewService struct {
	products repository.ProductStore
	events   eventEmitter
	now      func() time.Time
}

// Reviewer is the authenticated user writing a review.
type Reviewer struct {
	UserID uuid.UUID
	Name   string
}

type ReviewRequest struct {
	Rating  *int     `json:"rating"`
	Comment *string  `json:"comment"`
	Images  []string `json:"images"`
}

// SellerReview is a review annotated with the product it belongs to.
type SellerReview struct {
	models.Review
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
}

func NewReviewService(products repository.ProductStore, publisher events.Publisher) *ReviewService {
	return &ReviewService{
		products: products,
		events:   newEventEmitter(publisher),
		now:      time.Now,
	}
}

// Add records the reviewer's first review of a product and returns the
// product's reviews.
func (s *ReviewService) Add(ctx context.Context, productID uuid.UUID, reviewer Reviewer, req *ReviewRequest) (models.Reviews, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	expectedVersion := product.Version

	now := s.now()
	review := models.Review{
		UserID:    reviewer.UserID,
		Name:      reviewer.Name,
		Rating:    derefInt(req.Rating),
		Comment:   derefString(req.Comment),
		Images:    req.Images,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := product.AddReview(review); err != nil {
		reviewOperations.WithLabelValues("add", "rejected").Inc()
		return nil, err
	}

	err = s.products.Update(ctx, product, expectedVersion)
	reviewOperations.WithLabelValues("add", outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	added, _ := product.ReviewBy(reviewer.UserID)
	s.events.emit(ctx, events.ReviewAdded, events.AggregateProduct, product.ID, reviewer.UserID, reviewEventData(product, added))
	return product.Reviews, nil
}

// Update overwrites the supplied fields of the caller's own review.
func (s *ReviewService) Update(ctx context.Context, productID, userID uuid.UUID, req *ReviewRequest) (*models.Review, error) {
	if req.Rating == nil && req.Comment == nil {
		return nil, apperrors.InvalidInput("rating or comment is required")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	expectedVersion := product.Version

	review, err := product.UpdateReview(userID, req.Rating, req.Comment, s.now())
	if err != nil {
		reviewOperations.WithLabelValues("update", "rejected").Inc()
		return nil, err
	}

	err = s.products.Update(ctx, product, expectedVersion)
	reviewOperations.WithLabelValues("update", outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	s.events.emit(ctx, events.ReviewUpdated, events.AggregateProduct, product.ID, userID, reviewEventData(product, review))
	return review, nil
}

// Delete removes the caller's review and recomputes the product rating.
func (s *ReviewService) Delete(ctx context.Context, productID, userID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	expectedVersion := product.Version

	removed, _ := product.ReviewBy(userID)
	var snapshot *models.Review
	if removed != nil {
		copy := *removed
		snapshot = &copy
	}
	if err := product.RemoveReview(userID); err != nil {
		reviewOperations.WithLabelValues("delete", "rejected").Inc()
		return err
	}

	err = s.products.Update(ctx, product, expectedVersion)
	reviewOperations.WithLabelValues("delete", outcome(err)).Inc()
	if err != nil {
		return err
	}

	s.events.emit(ctx, events.ReviewDeleted, events.AggregateProduct, product.ID, userID, reviewEventData(product, snapshot))
	return nil
}

func (s *ReviewService) ListForProduct(ctx context.Context, productID uuid.UUID) (models.Reviews, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return product.Reviews, nil
}

// ListForSeller flattens the reviews of every product sellerID owns, newest
// first.
func (s *ReviewService) ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]SellerReview, error) {
	reviews, _, err := s.sellerReviews(ctx, sellerID)
	return reviews, err
}

// ListForVendor is the public variant of ListForSeller. A vendor without
// products is reported as not found.
func (s *ReviewService) ListForVendor(ctx context.Context, sellerID uuid.UUID) ([]SellerReview, error) {
	reviews, productCount, err := s.sellerReviews(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if productCount == 0 {
		return nil, apperrors.NotFound("products for this vendor")
	}
	return reviews, nil
}

func (s *ReviewService) sellerReviews(ctx context.Context, sellerID uuid.UUID) ([]SellerReview, int, error) {
	products, _, err := s.products.List(ctx, repository.ProductFilter{SellerID: &sellerID})
	if err != nil {
		return nil, 0, err
	}

	reviews := []SellerReview{}
	for _, product := range products {
		for _, review := range product.Reviews {
			reviews = append(reviews, SellerReview{
				Review:      review,
				ProductID:   product.ID,
				ProductName: product.Name,
			})
		}
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, len(products), nil
}

func reviewEventData(p *models.Product, review *models.Review) map[string]interface{} {
	return map[string]interface{}{
		"review":      review,
		"seller_id":   p.SellerID,
		"ratings":     p.Ratings,
		"num_reviews": p.NumReviews,
	}
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
