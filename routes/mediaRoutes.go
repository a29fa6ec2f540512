package routes

import (
	"civiclens-be/controllers"
	"civiclens-be/middlewares"

	"github.com/gin-gonic/gin"
)

// MediaRoutes sets up the image CDN routes
func MediaRoutes(r *gin.Engine) {
	r.DELETE("/api/imagekit-delete", middlewares.AuthMiddleware(), controllers.DeleteImage)
}
