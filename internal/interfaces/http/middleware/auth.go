// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront/internal/domain/admin"
	"github.com/your-org/storefront/internal/pkg/auth"
)

const adminClaimsKey = "admin_claims"

// AdminAuth guards the admin panel routes. It accepts only a bearer
// token that matches the live admin session.
func AdminAuth(adminService *admin.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		claims, err := adminService.Authenticate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(adminClaimsKey, claims)
		c.Next()
	}
}

// GetAdminClaims returns the authenticated admin claims, if any.
func GetAdminClaims(c *gin.Context) (*auth.Claims, bool) {
	value, ok := c.Get(adminClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
