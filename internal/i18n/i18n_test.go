package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize("en"))

	assert.Equal(t, "Product created", T("en", KeyProductCreated))
	assert.Equal(t, "สร้างสินค้าแล้ว", T("th", KeyProductCreated))
	assert.Equal(t, "Invalid request", T("en", KeyValidationInvalid, "request"))

	// unknown language falls back to the default catalog
	assert.Equal(t, "Review added", T("fr", KeyReviewAdded))
	// unknown key comes back unchanged
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))

	assert.True(t, IsSupported("th"))
	assert.False(t, IsSupported("zh_TW"))
}
