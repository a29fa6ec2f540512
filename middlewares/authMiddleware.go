package middlewares

import (
	"log"
	"net/http"
	"strings"

	authUtils "civiclens-be/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	CtxExternalID = "external_id"
	CtxRole       = "role"
	CtxEmail      = "email"
	CtxFullName   = "full_name"
	CtxPictureURL = "picture_url"
)

// AuthMiddleware verifies the identity provider's session token, taken from
// the Authorization header or the auth_token cookie, and exposes its claims
// to handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			c.Abort()
			return
		}

		claims, err := authUtils.ParseSessionToken(tokenString)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
			c.Abort()
			return
		}

		c.Set(CtxExternalID, claims.ExternalID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxFullName, claims.FullName)
		c.Set(CtxPictureURL, claims.PictureURL)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if authHeader != "" {
		if strings.HasPrefix(authHeader, "Bearer ") {
			return authHeader[7:]
		}
		return authHeader
	}

	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}
