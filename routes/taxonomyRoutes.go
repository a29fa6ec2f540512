package routes

import (
	"civiclens-be/controllers"

	"github.com/gin-gonic/gin"
)

// TaxonomyRoutes sets up the public department and category listings
func TaxonomyRoutes(r *gin.Engine) {
	r.GET("/api/departments", controllers.ListDepartments)
	r.GET("/api/categories", controllers.ListCategories)
}
