package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/events"
)

func TestReviewService_AddKeepsAggregatesInSync(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	product := env.createProduct(t, "SKU-R1")

	reviews, err := env.reviews.Add(ctx, product.ID, reviewer("Ann"), &ReviewRequest{Rating: intPtr(5), Comment: strPtr("Great")})
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	_, err = env.reviews.Add(ctx, product.ID, reviewer("Bob"), &ReviewRequest{Rating: intPtr(3), Comment: strPtr("Fine")})
	require.NoError(t, err)

	stored, err := env.store.Products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.NumReviews)
	assert.Len(t, stored.Reviews, stored.NumReviews)
	assert.InDelta(t, 4.0, stored.Ratings, 1e-9)
	assert.InDelta(t, 4.0, stored.AverageRating(), 1e-9)
	assert.Contains(t, env.publisher.types(), events.ReviewAdded)
}

func TestReviewService_AddRejectsDuplicateAndInvalid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	product := env.createProduct(t, "SKU-R2")
	ann := reviewer("Ann")

	_, err := env.reviews.Add(ctx, product.ID, ann, &ReviewRequest{Rating: intPtr(4), Comment: strPtr("Nice")})
	require.NoError(t, err)

	_, err = env.reviews.Add(ctx, product.ID, ann, &ReviewRequest{Rating: intPtr(1), Comment: strPtr("Changed my mind")})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateReview)

	_, err = env.reviews.Add(ctx, product.ID, reviewer("Bob"), &ReviewRequest{Rating: intPtr(6), Comment: strPtr("Too good")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = env.reviews.Add(ctx, product.ID, reviewer("Cid"), &ReviewRequest{Rating: intPtr(4)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = env.reviews.Add(ctx, uuid.New(), reviewer("Dee"), &ReviewRequest{Rating: intPtr(4), Comment: strPtr("Ok")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	stored, err := env.store.Products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.NumReviews)
}

func TestReviewService_UpdateCommentKeepsRating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	product := env.createProduct(t, "SKU-R3")
	ann := reviewer("Ann")

	_, err := env.reviews.Add(ctx, product.ID, ann, &ReviewRequest{Rating: intPtr(2), Comment: strPtr("Meh")})
	require.NoError(t, err)

	review, err := env.reviews.Update(ctx, product.ID, ann.UserID, &ReviewRequest{Comment: strPtr("Grew on me")})
	require.NoError(t, err)
	assert.Equal(t, 2, review.Rating)
	assert.Equal(t, "Grew on me", review.Comment)

	review, err = env.reviews.Update(ctx, product.ID, ann.UserID, &ReviewRequest{Rating: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)

	stored, err := env.store.Products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, stored.Ratings, 1e-9)
}

func TestReviewService_UpdateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	product := env.createProduct(t, "SKU-R4")
	ann := reviewer("Ann")

	_, err := env.reviews.Add(ctx, product.ID, ann, &ReviewRequest{Rating: intPtr(3), Comment: strPtr("Ok")})
	require.NoError(t, err)

	_, err = env.reviews.Update(ctx, product.ID, ann.UserID, &ReviewRequest{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = env.reviews.Update(ctx, product.ID, ann.UserID, &ReviewRequest{Rating: intPtr(0)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = env.reviews.Update(ctx, product.ID, uuid.New(), &ReviewRequest{Rating: intPtr(5)})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReviewService_DeleteRecomputesRatings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	product := env.createProduct(t, "SKU-R5")
	ann, bob := reviewer("Ann"), reviewer("Bob")

	_, err := env.reviews.Add(ctx, product.ID, ann, &ReviewRequest{Rating: intPtr(5), Comment: strPtr("Great")})
	require.NoError(t, err)
	_, err = env.reviews.Add(ctx, product.ID, bob, &ReviewRequest{Rating: intPtr(1), Comment: strPtr("Broke")})
	require.NoError(t, err)

	require.NoError(t, env.reviews.Delete(ctx, product.ID, bob.UserID))
	stored, err := env.store.Products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.NumReviews)
	assert.InDelta(t, 5.0, stored.Ratings, 1e-9)

	require.NoError(t, env.reviews.Delete(ctx, product.ID, ann.UserID))
	stored, err = env.store.Products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.NumReviews)
	assert.Zero(t, stored.Ratings)

	err = env.reviews.Delete(ctx, product.ID, ann.UserID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, env.publisher.types(), events.ReviewDeleted)
}

func TestReviewService_StaleWriteConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	product := env.createProduct(t, "SKU-R6")

	stale, err := env.store.Products.FindByID(ctx, product.ID)
	require.NoError(t, err)

	_, err = env.reviews.Add(ctx, product.ID, reviewer("Ann"), &ReviewRequest{Rating: intPtr(5), Comment: strPtr("Great")})
	require.NoError(t, err)

	stale.Name = "Renamed"
	err = env.store.Products.Update(ctx, stale, stale.Version)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestReviewService_SellerAndVendorListings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.createProduct(t, "SKU-R7")
	second := env.createProduct(t, "SKU-R8")

	_, err := env.reviews.Add(ctx, first.ID, reviewer("Ann"), &ReviewRequest{Rating: intPtr(5), Comment: strPtr("Great")})
	require.NoError(t, err)
	_, err = env.reviews.Add(ctx, second.ID, reviewer("Bob"), &ReviewRequest{Rating: intPtr(4), Comment: strPtr("Good")})
	require.NoError(t, err)

	reviews, err := env.reviews.ListForSeller(ctx, env.seller.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.False(t, reviews[0].CreatedAt.Before(reviews[1].CreatedAt))

	empty, err := env.reviews.ListForSeller(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)

	vendor, err := env.reviews.ListForVendor(ctx, env.seller.ID)
	require.NoError(t, err)
	assert.Len(t, vendor, 2)

	_, err = env.reviews.ListForVendor(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
