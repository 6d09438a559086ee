package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
)

func intPtr(i int) *int          { return &i }
func strPtr(s string) *string    { return &s }

func assertAggregates(t *testing.T, p *Product) {
	t.Helper()
	assert.Equal(t, len(p.Reviews), p.NumReviews)
	assert.InDelta(t, p.Reviews.Mean(), p.Ratings, 1e-9)
	assert.InDelta(t, p.Ratings, p.AverageRating(), 1e-9)
}

func TestAddReviewRecomputesMean(t *testing.T) {
	p := validProduct()

	require.NoError(t, p.AddReview(Review{UserID: uuid.New(), Name: "A", Rating: 5, Comment: "great"}))
	require.NoError(t, p.AddReview(Review{UserID: uuid.New(), Name: "B", Rating: 3, Comment: "ok"}))

	assert.Equal(t, 2, p.NumReviews)
	assert.Equal(t, 4.0, p.Ratings)
	assert.False(t, p.Reviews[0].IsVerified)
	assert.NotEqual(t, uuid.Nil, p.Reviews[0].ID)
	assertAggregates(t, p)
}

func TestAddReviewRejectsDuplicateWithoutChangingState(t *testing.T) {
	p := validProduct()
	user := uuid.New()
	require.NoError(t, p.AddReview(Review{UserID: user, Rating: 5, Comment: "great"}))

	err := p.AddReview(Review{UserID: user, Rating: 1, Comment: "changed my mind"})

	assert.ErrorIs(t, err, apperrors.ErrDuplicateReview)
	assert.Len(t, p.Reviews, 1)
	assert.Equal(t, 5.0, p.Ratings)
	assertAggregates(t, p)
}

func TestAddReviewValidatesInput(t *testing.T) {
	tests := []struct {
		name    string
		rating  int
		comment string
	}{
		{"missing rating", 0, "fine"},
		{"rating too high", 6, "fine"},
		{"missing comment", 4, ""},
		{"comment too long", 4, strings.Repeat("x", MaxCommentLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			err := p.AddReview(Review{UserID: uuid.New(), Rating: tt.rating, Comment: tt.comment})
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Empty(t, p.Reviews)
			assert.Zero(t, p.NumReviews)
		})
	}
}

func TestUpdateReviewKeepsOmittedFields(t *testing.T) {
	p := validProduct()
	user := uuid.New()
	require.NoError(t, p.AddReview(Review{UserID: user, Rating: 4, Comment: "solid"}))
	require.NoError(t, p.AddReview(Review{UserID: uuid.New(), Rating: 2, Comment: "meh"}))

	now := time.Now()
	review, err := p.UpdateReview(user, nil, strPtr("solid, still works"), now)
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "solid, still works", review.Comment)
	assert.Equal(t, now, review.UpdatedAt)

	_, err = p.UpdateReview(user, intPtr(5), nil, now)
	require.NoError(t, err)
	assert.Equal(t, 3.5, p.Ratings)
	assertAggregates(t, p)
}

func TestUpdateReviewErrors(t *testing.T) {
	p := validProduct()
	user := uuid.New()
	require.NoError(t, p.AddReview(Review{UserID: user, Rating: 4, Comment: "solid"}))

	_, err := p.UpdateReview(uuid.New(), intPtr(5), nil, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = p.UpdateReview(user, intPtr(9), nil, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, 4, p.Reviews[0].Rating)
}

func TestRemoveReviewRecomputes(t *testing.T) {
	p := validProduct()
	a, b := uuid.New(), uuid.New()
	require.NoError(t, p.AddReview(Review{UserID: a, Rating: 5, Comment: "great"}))
	require.NoError(t, p.AddReview(Review{UserID: b, Rating: 1, Comment: "broke"}))

	require.NoError(t, p.RemoveReview(b))
	assert.Equal(t, 5.0, p.Ratings)
	assertAggregates(t, p)

	require.NoError(t, p.RemoveReview(a))
	assert.Zero(t, p.Ratings)
	assert.Zero(t, p.NumReviews)

	assert.ErrorIs(t, p.RemoveReview(a), apperrors.ErrNotFound)
}
