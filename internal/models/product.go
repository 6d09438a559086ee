// internal/models/product.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

const (
	DefaultLowStockThreshold = 10
	DefaultRejectionReason   = "Rejected by admin"
	PlaceholderImageURL      = "https://res.cloudinary.com/demo/image/upload/v1690000000/products/default-product.png"
)

type Dimensions struct {
	Length float64 `json:"length" validate:"gte=0"`
	Width  float64 `json:"width" validate:"gte=0"`
	Height float64 `json:"height" validate:"gte=0"`
}

type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Specifications is an ordered key/value list stored as jsonb.
type Specifications []Specification

func (s Specifications) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *Specifications) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// VariantOption is one purchasable choice of a variant. A nil Price means
// the product price applies.
type VariantOption struct {
	Value string   `json:"value" validate:"required,max=100"`
	Price *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock int      `json:"stock" validate:"gte=0"`
	SKU   string   `json:"sku,omitempty" validate:"max=100"`
}

type Variant struct {
	Name    string          `json:"name" validate:"required,max=100"`
	Options []VariantOption `json:"options" validate:"dive"`
}

// Variants is stored as jsonb, e.g. [{"name":"Size","options":[{"value":"M","stock":3}]}].
type Variants []Variant

func (v Variants) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	return string(b), err
}

func (v *Variants) Scan(value interface{}) error {
	return scanJSON(value, v)
}

type ProductImage struct {
	URL       string `json:"url"`
	Alt       string `json:"alt,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

type ProductImages []ProductImage

func (i ProductImages) Value() (driver.Value, error) {
	if i == nil {
		return "[]", nil
	}
	b, err := json.Marshal(i)
	return string(b), err
}

func (i *ProductImages) Scan(value interface{}) error {
	return scanJSON(value, i)
}

type ShippingInfo struct {
	FreeShipping bool    `json:"free_shipping"`
	ShippingCost float64 `json:"shipping_cost" validate:"gte=0"`
}

type SEO struct {
	MetaTitle       string         `json:"meta_title,omitempty" gorm:"size:255" validate:"max=255"`
	MetaDescription string         `json:"meta_description,omitempty" gorm:"type:text"`
	Keywords        pq.StringArray `json:"keywords,omitempty" gorm:"type:text[]"`
}

type Product struct {
	BaseModel
	Name              string         `json:"name" gorm:"size:100;not null" validate:"required,max=100"`
	Description       string         `json:"description" gorm:"type:text;not null" validate:"required,max=2000"`
	ShortDescription  string         `json:"short_description,omitempty" gorm:"size:200" validate:"max=200"`
	Price             float64        `json:"price" gorm:"type:decimal(12,2);not null" validate:"gte=0"`
	ComparePrice      *float64       `json:"compare_price,omitempty" gorm:"type:decimal(12,2)" validate:"omitempty,gte=0"`
	Images            ProductImages  `json:"images" gorm:"type:jsonb"`
	CategoryID        uuid.UUID      `json:"category" gorm:"type:uuid;not null;index"`
	SubCategoryID     *uuid.UUID     `json:"sub_category,omitempty" gorm:"type:uuid;index"`
	Brand             string         `json:"brand" gorm:"size:100;not null" validate:"required,max=100"`
	SellerID          uuid.UUID      `json:"seller" gorm:"type:uuid;not null;index"`
	SKU               string         `json:"sku" gorm:"size:100;not null;uniqueIndex" validate:"required,max=100"`
	Stock             int            `json:"stock" gorm:"not null" validate:"gte=0"`
	LowStockThreshold int            `json:"low_stock_threshold" gorm:"not null" validate:"gte=0"`
	Weight            *float64       `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Dimensions        Dimensions     `json:"dimensions" gorm:"embedded;embeddedPrefix:dimension_"`
	Tags              pq.StringArray `json:"tags" gorm:"type:text[]"`
	Features          pq.StringArray `json:"features" gorm:"type:text[]"`
	Specifications    Specifications `json:"specifications" gorm:"type:jsonb"`
	Variants          Variants       `json:"variants" gorm:"type:jsonb" validate:"dive"`
	ShippingInfo      ShippingInfo   `json:"shipping_info" gorm:"embedded;embeddedPrefix:shipping_"`
	SEO               SEO            `json:"seo" gorm:"embedded;embeddedPrefix:seo_"`

	IsActive        bool       `json:"is_active" gorm:"not null;index"`
	IsFeatured      bool       `json:"is_featured" gorm:"not null;index"`
	IsApproved      bool       `json:"is_approved" gorm:"not null;index"`
	ApprovalDate    *time.Time `json:"approval_date,omitempty"`
	ApprovedBy      *uuid.UUID `json:"approved_by,omitempty" gorm:"type:uuid"`
	RejectionReason string     `json:"rejection_reason,omitempty" gorm:"type:text"`

	Ratings    float64 `json:"ratings" gorm:"not null"`
	NumReviews int     `json:"num_reviews" gorm:"not null"`
	Reviews    Reviews `json:"reviews" gorm:"type:jsonb"`
	TotalSold  int     `json:"total_sold" gorm:"not null"`
	Views      int64   `json:"views" gorm:"not null"`

	// Version is bumped on every write and checked by compare-and-swap updates.
	Version int64 `json:"version" gorm:"not null"`
}

// NewProduct returns a product with the catalog defaults applied.
func NewProduct(sellerID uuid.UUID) *Product {
	return &Product{
		SellerID:          sellerID,
		LowStockThreshold: DefaultLowStockThreshold,
		IsActive:          true,
		Images:            ProductImages{},
		Tags:              pq.StringArray{},
		Features:          pq.StringArray{},
		Specifications:    Specifications{},
		Variants:          Variants{},
		Reviews:           Reviews{},
		Version:           1,
	}
}

// Validate checks every field constraint and reports all violations together.
// SKU uniqueness needs a store lookup and is checked by the caller.
func (p *Product) Validate() error {
	var fields []apperrors.FieldError
	if err := utils.ValidateStruct(p); err != nil {
		fields = utils.GetValidationErrors(err)
	}
	fields = append(fields, p.referenceErrors()...)

	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}

func (p *Product) referenceErrors() []apperrors.FieldError {
	var fields []apperrors.FieldError
	if p.CategoryID == uuid.Nil {
		fields = append(fields, apperrors.FieldError{Field: "category", Tag: "required", Message: "category is required"})
	}
	if p.SellerID == uuid.Nil {
		fields = append(fields, apperrors.FieldError{Field: "seller", Tag: "required", Message: "seller is required"})
	}
	return fields
}

// AverageRating is the mean of the embedded review ratings, 0 without reviews.
func (p *Product) AverageRating() float64 {
	return p.Reviews.Mean()
}

// DiscountPercentage is the rounded percentage saved against ComparePrice.
func (p *Product) DiscountPercentage() int {
	if p.ComparePrice == nil || *p.ComparePrice <= p.Price {
		return 0
	}
	compare := *p.ComparePrice
	return int(math.Round((compare - p.Price) / compare * 100))
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

func (p *Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock <= p.LowStockThreshold
}

// SetApproval applies an approval decision. ApprovalDate is stamped only on
// the first transition to approved.
func (p *Product) SetApproval(approved bool, now time.Time) {
	if approved && !p.IsApproved && p.ApprovalDate == nil {
		p.ApprovalDate = &now
	}
	p.IsApproved = approved
	if approved {
		p.RejectionReason = ""
	}
}

// PrimaryImage returns the url of the primary image, or the first image.
func (p *Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// SetPrimaryImage replaces the primary image with url.
func (p *Product) SetPrimaryImage(url string) {
	images := ProductImages{{URL: url, Alt: p.Name, IsPrimary: true}}
	for _, img := range p.Images {
		if !img.IsPrimary {
			images = append(images, img)
		}
	}
	p.Images = images
}

// MarshalJSON adds the derived fields next to the stored ones.
func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		AverageRating      float64 `json:"average_rating"`
		DiscountPercentage int     `json:"discount_percentage"`
		InStock            bool    `json:"in_stock"`
		LowStock           bool    `json:"low_stock"`
	}{
		product:            product(p),
		AverageRating:      p.AverageRating(),
		DiscountPercentage: p.DiscountPercentage(),
		InStock:            p.InStock(),
		LowStock:           p.IsLowStock(),
	})
}
