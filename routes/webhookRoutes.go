package routes

import (
	"civiclens-be/controllers"
	"civiclens-be/middlewares"

	"github.com/gin-gonic/gin"
)

// WebhookRoutes sets up the identity-provider sync routes
func WebhookRoutes(r *gin.Engine) {
	webhook := r.Group("/api/webhook")
	{
		webhook.GET("/is-auth", middlewares.AuthMiddleware(), controllers.IsAuth)
		webhook.POST("/is-auth", middlewares.AuthMiddleware(), controllers.IsAuth)
	}
}
