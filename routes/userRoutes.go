package routes

import (
	"civiclens-be/controllers"
	"civiclens-be/middlewares"

	"github.com/gin-gonic/gin"
)

// UserRoutes sets up the profile and inbox routes
func UserRoutes(r *gin.Engine) {
	user := r.Group("/api/user", middlewares.AuthMiddleware())
	{
		user.PUT("/update", controllers.UpdateProfile)
		user.GET("/notifications", controllers.ListNotifications)
		user.PATCH("/notifications/:id/read", controllers.MarkNotificationRead)
	}
}
