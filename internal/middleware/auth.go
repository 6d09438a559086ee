// internal/middleware/auth.go
package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/mvshop-backend/internal/i18n"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

// SellerKey is the context key under which ApprovedSeller stores the
// caller's *models.Seller.
const SellerKey = "seller"

// SellerResolver maps an authenticated user to its approved seller profile.
type SellerResolver interface {
	ResolveSeller(ctx context.Context, userID uuid.UUID) (*models.Seller, error)
}

func AuthRequired(jwt *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}

		claims, err := jwt.Validate(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// RoleRequired admits callers whose token carries one of roles. It must run
// after AuthRequired.
func RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := utils.GetUserRoleFromContext(c)
		if exists {
			for _, allowed := range roles {
				if role == string(allowed) {
					c.Next()
					return
				}
			}
		}

		utils.ForbiddenResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyAuthAccessDenied))
		c.Abort()
	}
}

func AdminRequired() gin.HandlerFunc {
	return RoleRequired(models.RoleAdmin)
}

// ApprovedSeller loads the caller's seller profile and rejects callers that
// have none or whose profile is still pending.
func ApprovedSeller(resolver SellerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := utils.GetUserIDFromContext(c)
		if !ok {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		seller, err := resolver.ResolveSeller(c.Request.Context(), userID)
		if err != nil {
			utils.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(SellerKey, seller)
		c.Next()
	}
}

// SellerFromContext returns the seller stored by ApprovedSeller.
func SellerFromContext(c *gin.Context) (*models.Seller, bool) {
	v, exists := c.Get(SellerKey)
	if !exists {
		return nil, false
	}
	seller, ok := v.(*models.Seller)
	return seller, ok
}

func OptionalAuth(jwt *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		if claims, err := jwt.Validate(parts[1]); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *utils.JWTClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("user_name", claims.Name)
	c.Set("user_role", claims.Role)
}
