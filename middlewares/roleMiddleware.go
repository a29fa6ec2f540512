package middlewares

import (
	"net/http"

	"civiclens-be/models"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group on the role claim set by AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimed := models.Role(c.GetString(CtxRole))
		for _, role := range roles {
			if claimed == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}
