// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthAccessDenied       = "auth.access_denied"

	// Sellers
	KeySellerRegistered  = "seller.registered"
	KeySellerNotApproved = "seller.not_approved"
	KeySellerApproved    = "seller.approved"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductApproved = "product.approved"
	KeyProductRejected = "product.rejected"

	// Reviews
	KeyReviewAdded   = "review.added"
	KeyReviewUpdated = "review.updated"
	KeyReviewDeleted = "review.deleted"

	// Categories
	KeyCategoryCreated = "category.created"
	KeyCategoryUpdated = "category.updated"
	KeyCategoryDeleted = "category.deleted"

	// Validation and generic errors
	KeyValidationInvalid = "validation.invalid"
	KeyRateLimited       = "error.rate_limited"
	KeyInternalError     = "error.internal"
)
