// internal/handlers/product_form.go
package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/services"
)

const maxProductForm = 32 << 20

// bindProduct decodes a product write from either a JSON body into dst or a
// multipart form into patch. A multipart "image" file is uploaded and set as
// the primary image.
func bindProduct(c *gin.Context, uploader services.ImageUploader, dst interface{}, patch *services.ProductPatch) error {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		if err := c.ShouldBindJSON(dst); err != nil {
			return apperrors.InvalidInput(fmt.Sprintf("invalid request body: %v", err))
		}
		return nil
	}

	if err := c.Request.ParseMultipartForm(maxProductForm); err != nil {
		return apperrors.InvalidInput("invalid multipart form")
	}
	form := c.Request.MultipartForm

	if fields := decodeProductForm(form.Value, patch); len(fields) > 0 {
		return apperrors.Validation(fields)
	}

	if files := form.File["image"]; len(files) > 0 {
		if uploader == nil {
			return apperrors.InvalidInput("image upload is not available")
		}
		url, err := uploader.UploadProductImage(c.Request.Context(), files[0])
		if err != nil {
			return err
		}
		patch.ImageURL = url
	}
	return nil
}

// decodeProductForm copies the form fields present in values onto patch.
// Values that fail to parse are returned as field errors.
func decodeProductForm(values map[string][]string, patch *services.ProductPatch) []apperrors.FieldError {
	d := formDecoder{values: values}

	patch.Name = d.string("name")
	patch.Description = d.string("description")
	patch.ShortDescription = d.string("short_description")
	patch.Category = d.string("category")
	patch.SubCategory = d.string("sub_category")
	patch.CustomCategory = d.string("custom_category")
	patch.Brand = d.string("brand")
	patch.SKU = d.string("sku")

	patch.Price = d.float("price")
	patch.ComparePrice = d.float("compare_price")
	patch.Weight = d.float("weight")
	patch.Stock = d.int("stock")
	patch.LowStockThreshold = d.int("low_stock_threshold")
	patch.IsActive = d.bool("is_active")
	patch.IsFeatured = d.bool("is_featured")

	patch.Tags = d.list("tags")
	patch.Features = d.list("features")
	if raw, ok := d.raw("specifications"); ok {
		specs := services.FlexibleSpecs(services.ParseSpecifications(raw))
		patch.Specifications = &specs
	}

	if raw, ok := d.raw("dimensions"); ok {
		var dims models.Dimensions
		if d.object("dimensions", raw, &dims) {
			patch.Dimensions = &dims
		}
	}
	if raw, ok := d.raw("variants"); ok {
		var variants models.Variants
		if d.object("variants", raw, &variants) {
			patch.Variants = &variants
		}
	}
	if raw, ok := d.raw("shipping_info"); ok {
		var info models.ShippingInfo
		if d.object("shipping_info", raw, &info) {
			patch.ShippingInfo = &info
		}
	}
	if raw, ok := d.raw("seo"); ok {
		var seo models.SEO
		if d.object("seo", raw, &seo) {
			patch.SEO = &seo
		}
	}

	return d.errs
}

type formDecoder struct {
	values map[string][]string
	errs   []apperrors.FieldError
}

func (d *formDecoder) raw(key string) (string, bool) {
	v, ok := d.values[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func (d *formDecoder) fail(key, tag, message string) {
	d.errs = append(d.errs, apperrors.FieldError{Field: key, Tag: tag, Message: message})
}

func (d *formDecoder) string(key string) *string {
	v, ok := d.raw(key)
	if !ok {
		return nil
	}
	return &v
}

func (d *formDecoder) float(key string) *float64 {
	v, ok := d.raw(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		d.fail(key, "numeric", key+" must be a number")
		return nil
	}
	return &f
}

func (d *formDecoder) int(key string) *int {
	v, ok := d.raw(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		d.fail(key, "numeric", key+" must be a whole number")
		return nil
	}
	return &i
}

func (d *formDecoder) bool(key string) *bool {
	v, ok := d.raw(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		d.fail(key, "boolean", key+" must be true or false")
		return nil
	}
	return &b
}

// list accepts repeated keys, a JSON array or a comma-separated string.
func (d *formDecoder) list(key string) *services.FlexibleStrings {
	v, ok := d.values[key]
	if !ok {
		return nil
	}

	var out services.FlexibleStrings
	if len(v) == 1 && strings.HasPrefix(strings.TrimSpace(v[0]), "[") {
		if err := json.Unmarshal([]byte(v[0]), &out); err != nil {
			d.fail(key, "list", key+" must be a list")
			return nil
		}
		return &out
	}

	out = services.SplitList(strings.Join(v, ","))
	return &out
}

func (d *formDecoder) object(key, raw string, dst interface{}) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		d.fail(key, "json", key+" must be valid JSON")
		return false
	}
	return true
}
