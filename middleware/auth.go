package middleware

import (
	"strings"

	"storefront-api/models"
	"storefront-api/utils"

	"github.com/gin-gonic/gin"
)

// OptionalAuth resolves the viewer from a bearer token when one is present.
// Guests pass through untouched; a malformed or expired token is treated as
// a guest rather than rejected, because every checkout endpoint works for
// anonymous users.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := utils.ValidateToken(tokenParts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_type", claims.UserType)
		c.Next()
	}
}

// Viewer reconstructs the pricing tier from context values set by the auth
// middleware. The zero value is a guest.
func Viewer(c *gin.Context) models.Viewer {
	viewer := models.Viewer{}
	if id, ok := c.Get("user_id"); ok {
		if userID, ok := id.(int64); ok {
			viewer.UserID = userID
		}
	}
	if email, ok := c.Get("user_email"); ok {
		if address, ok := email.(string); ok {
			viewer.Email = address
		}
	}
	if userType, ok := c.Get("user_type"); ok {
		if tier, ok := userType.(string); ok {
			viewer.IsWholesaler = strings.EqualFold(tier, "WHOLESALER")
		}
	}
	return viewer
}
