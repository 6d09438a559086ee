package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/mvshop-backend/internal/services"
)

func TestDecodeProductForm(t *testing.T) {
	var patch services.ProductPatch
	errs := decodeProductForm(map[string][]string{
		"name":          {"Desk Lamp"},
		"price":         {"39.90"},
		"stock":         {"5"},
		"is_active":     {"false"},
		"tags":          {"home", "office , desk"},
		"features":      {`["Dimmable"," USB "]`},
		"shipping_info": {`{"free_shipping":true}`},
		"compare_price": {""},
		"variants":      {`[{"name":"Shade","options":[{"value":"Warm","stock":2}]}]`},
	}, &patch)
	require.Empty(t, errs)

	assert.Equal(t, "Desk Lamp", *patch.Name)
	assert.InDelta(t, 39.90, *patch.Price, 1e-9)
	assert.Equal(t, 5, *patch.Stock)
	assert.False(t, *patch.IsActive)
	assert.Nil(t, patch.ComparePrice)
	assert.Nil(t, patch.Description)
	assert.Equal(t, services.FlexibleStrings{"home", "office", "desk"}, *patch.Tags)
	assert.Equal(t, services.FlexibleStrings{"Dimmable", "USB"}, *patch.Features)
	require.NotNil(t, patch.ShippingInfo)
	require.NotNil(t, patch.Variants)
	require.Len(t, *patch.Variants, 1)
	assert.Equal(t, "Warm", (*patch.Variants)[0].Options[0].Value)
}

func TestDecodeProductFormReportsBadValues(t *testing.T) {
	var patch services.ProductPatch
	errs := decodeProductForm(map[string][]string{
		"price":      {"cheap"},
		"stock":      {"1.5"},
		"is_active":  {"maybe"},
		"dimensions": {"{"},
		"variants":   {"[{"},
	}, &patch)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"price", "stock", "is_active", "dimensions", "variants"}, fields)
}
