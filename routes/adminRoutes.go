package routes

import (
	"civiclens-be/controllers"
	"civiclens-be/middlewares"
	"civiclens-be/models"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the master-admin console routes
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin",
		middlewares.AuthMiddleware(),
		middlewares.RequireRole(models.RoleMasterAdmin))
	{
		admin.GET("/dashboard", controllers.GetDashboard)
		admin.GET("/authorities", controllers.ListAuthorities)
		admin.POST("/authorities", controllers.CreateAuthority)
		admin.PATCH("/authorities/:id", controllers.UpdateAuthority)
		admin.GET("/users", controllers.ListUsers)
		admin.PATCH("/users/:id", controllers.UpdateUserRole)
		admin.GET("/departments", controllers.ListDepartments)
		admin.POST("/departments", controllers.CreateDepartment)
		admin.GET("/categories", controllers.ListCategories)
		admin.POST("/categories", controllers.CreateCategory)
	}
}
