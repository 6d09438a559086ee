// internal/services/product_input.go
package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/models"
)

// FlexibleStrings accepts either a list of strings or one comma-separated
// string, and normalizes both to trimmed non-empty entries.
type FlexibleStrings []string

func (f *FlexibleStrings) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = normalizeStrings(list)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = SplitList(s)
		return nil
	}

	return fmt.Errorf("expected a string or a list of strings")
}

// SplitList splits a comma-separated value into trimmed non-empty entries.
func SplitList(s string) FlexibleStrings {
	return normalizeStrings(strings.Split(s, ","))
}

func normalizeStrings(in []string) FlexibleStrings {
	out := FlexibleStrings{}
	for _, item := range in {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// FlexibleSpecs accepts specifications as a JSON array of {key,value} or as
// a string holding that JSON. Malformed input decodes to an empty list.
type FlexibleSpecs models.Specifications

func (f *FlexibleSpecs) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleSpecs(ParseSpecifications(s))
		return nil
	}
	*f = FlexibleSpecs(decodeSpecs(data))
	return nil
}

// ParseSpecifications decodes a JSON-encoded specification list.
func ParseSpecifications(raw string) models.Specifications {
	if strings.TrimSpace(raw) == "" {
		return models.Specifications{}
	}
	return decodeSpecs([]byte(raw))
}

func decodeSpecs(data []byte) models.Specifications {
	var specs models.Specifications
	if err := json.Unmarshal(data, &specs); err != nil {
		return models.Specifications{}
	}

	out := models.Specifications{}
	for _, spec := range specs {
		spec.Key = strings.TrimSpace(spec.Key)
		spec.Value = strings.TrimSpace(spec.Value)
		if spec.Key != "" {
			out = append(out, spec)
		}
	}
	return out
}

// ProductPatch carries product attributes from a request. Nil fields are
// left untouched, so the same type serves create and partial update.
type ProductPatch struct {
	Name              *string              `json:"name"`
	Description       *string              `json:"description"`
	ShortDescription  *string              `json:"short_description"`
	Price             *float64             `json:"price"`
	ComparePrice      *float64             `json:"compare_price"`
	Category          *string              `json:"category"`
	SubCategory       *string              `json:"sub_category"`
	CustomCategory    *string              `json:"custom_category"`
	Brand             *string              `json:"brand"`
	SKU               *string              `json:"sku"`
	Stock             *int                 `json:"stock"`
	LowStockThreshold *int                 `json:"low_stock_threshold"`
	Weight            *float64             `json:"weight"`
	Dimensions        *models.Dimensions   `json:"dimensions"`
	Tags              *FlexibleStrings     `json:"tags"`
	Features          *FlexibleStrings     `json:"features"`
	Specifications    *FlexibleSpecs       `json:"specifications"`
	Variants          *models.Variants     `json:"variants"`
	ShippingInfo      *models.ShippingInfo `json:"shipping_info"`
	SEO               *models.SEO          `json:"seo"`
	IsActive          *bool                `json:"is_active"`
	IsFeatured        *bool                `json:"is_featured"`

	// ImageURL is set after an upload and replaces the primary image.
	ImageURL string `json:"-"`
}

// ApplyTo copies the supplied fields onto p. Unparsable references are
// returned as field errors.
func (in *ProductPatch) ApplyTo(p *models.Product) []apperrors.FieldError {
	var fields []apperrors.FieldError

	setTrimmed(&p.Name, in.Name)
	setString(&p.Description, in.Description)
	setString(&p.ShortDescription, in.ShortDescription)
	setTrimmed(&p.Brand, in.Brand)
	setTrimmed(&p.SKU, in.SKU)

	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.ComparePrice != nil {
		v := *in.ComparePrice
		p.ComparePrice = &v
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.LowStockThreshold != nil {
		p.LowStockThreshold = *in.LowStockThreshold
	}
	if in.Weight != nil {
		v := *in.Weight
		p.Weight = &v
	}
	if in.Dimensions != nil {
		p.Dimensions = *in.Dimensions
	}

	if in.Category != nil {
		id, err := uuid.Parse(strings.TrimSpace(*in.Category))
		if err != nil {
			fields = append(fields, apperrors.FieldError{Field: "category", Tag: "uuid", Message: "category is not a valid id"})
		} else {
			p.CategoryID = id
		}
	}
	if in.SubCategory != nil {
		if raw := strings.TrimSpace(*in.SubCategory); raw == "" {
			p.SubCategoryID = nil
		} else if id, err := uuid.Parse(raw); err != nil {
			fields = append(fields, apperrors.FieldError{Field: "sub_category", Tag: "uuid", Message: "sub_category is not a valid id"})
		} else {
			p.SubCategoryID = &id
		}
	}

	if in.Tags != nil {
		p.Tags = pq.StringArray(*in.Tags)
	}
	if in.Features != nil {
		p.Features = pq.StringArray(*in.Features)
	}
	if in.Specifications != nil {
		p.Specifications = models.Specifications(*in.Specifications)
	}
	if in.Variants != nil {
		p.Variants = normalizeVariants(*in.Variants)
	}
	if in.ShippingInfo != nil {
		p.ShippingInfo = *in.ShippingInfo
	}
	if in.SEO != nil {
		p.SEO = *in.SEO
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	if in.ImageURL != "" {
		p.SetPrimaryImage(in.ImageURL)
	}

	return fields
}

// normalizeVariants trims names and values. Empty variant names and empty
// option values are left for validation to report.
func normalizeVariants(in models.Variants) models.Variants {
	out := make(models.Variants, 0, len(in))
	for _, variant := range in {
		v := models.Variant{Name: strings.TrimSpace(variant.Name), Options: make([]models.VariantOption, 0, len(variant.Options))}
		for _, opt := range variant.Options {
			opt.Value = strings.TrimSpace(opt.Value)
			opt.SKU = strings.TrimSpace(opt.SKU)
			v.Options = append(v.Options, opt)
		}
		out = append(out, v)
	}
	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
