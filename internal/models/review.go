// internal/models/review.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 500
)

// Review lives inside its product's document; it has no table of its own.
type Review struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user"`
	Name       string    `json:"name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Images     []string  `json:"images"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Reviews []Review

func (r Reviews) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	return string(b), err
}

func (r *Reviews) Scan(value interface{}) error {
	return scanJSON(value, r)
}

// Mean is the average rating, 0 for an empty set.
func (r Reviews) Mean() float64 {
	if len(r) == 0 {
		return 0
	}
	sum := 0
	for _, review := range r {
		sum += review.Rating
	}
	return float64(sum) / float64(len(r))
}

func (r Reviews) indexOf(userID uuid.UUID) int {
	for i, review := range r {
		if review.UserID == userID {
			return i
		}
	}
	return -1
}

// ValidateReview checks the rating range and comment length.
func ValidateReview(rating int, comment string) error {
	var fields []apperrors.FieldError
	if rating < MinRating || rating > MaxRating {
		fields = append(fields, apperrors.FieldError{Field: "rating", Tag: "range", Message: "rating must be between 1 and 5"})
	}
	switch n := utf8.RuneCountInString(comment); {
	case n == 0:
		fields = append(fields, apperrors.FieldError{Field: "comment", Tag: "required", Message: "comment is required"})
	case n > MaxCommentLength:
		fields = append(fields, apperrors.FieldError{Field: "comment", Tag: "max", Message: "comment must be at most 500 characters"})
	}
	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}

// ReviewBy returns the review written by userID.
func (p *Product) ReviewBy(userID uuid.UUID) (*Review, bool) {
	if i := p.Reviews.indexOf(userID); i >= 0 {
		return &p.Reviews[i], true
	}
	return nil, false
}

// AddReview appends review. A user may review a product once.
func (p *Product) AddReview(review Review) error {
	if p.Reviews.indexOf(review.UserID) >= 0 {
		return apperrors.DuplicateReview()
	}
	if err := ValidateReview(review.Rating, review.Comment); err != nil {
		return err
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	if review.Images == nil {
		review.Images = []string{}
	}
	p.Reviews = append(p.Reviews, review)
	p.recomputeRatings()
	return nil
}

// UpdateReview overwrites the supplied fields of the caller's review and keeps
// the rest.
func (p *Product) UpdateReview(userID uuid.UUID, rating *int, comment *string, now time.Time) (*Review, error) {
	i := p.Reviews.indexOf(userID)
	if i < 0 {
		return nil, apperrors.NotFound("review")
	}
	review := p.Reviews[i]
	if review.UserID != userID {
		return nil, apperrors.Forbidden("not authorized to update this review")
	}

	if rating != nil {
		review.Rating = *rating
	}
	if comment != nil {
		review.Comment = *comment
	}
	if err := ValidateReview(review.Rating, review.Comment); err != nil {
		return nil, err
	}
	review.UpdatedAt = now

	p.Reviews[i] = review
	p.recomputeRatings()
	return &p.Reviews[i], nil
}

// RemoveReview deletes the caller's review.
func (p *Product) RemoveReview(userID uuid.UUID) error {
	i := p.Reviews.indexOf(userID)
	if i < 0 {
		return apperrors.NotFound("review")
	}
	reviews := make(Reviews, 0, len(p.Reviews)-1)
	reviews = append(reviews, p.Reviews[:i]...)
	p.Reviews = append(reviews, p.Reviews[i+1:]...)
	p.recomputeRatings()
	return nil
}

func (p *Product) recomputeRatings() {
	p.NumReviews = len(p.Reviews)
	p.Ratings = p.Reviews.Mean()
}
