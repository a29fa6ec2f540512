package routes

import (
	"civiclens-be/controllers"
	"civiclens-be/middlewares"
	"civiclens-be/models"

	"github.com/gin-gonic/gin"
)

// AgentRoutes sets up the analysis-agent routes
func AgentRoutes(r *gin.Engine) {
	agent := r.Group("/api/agent", middlewares.AuthMiddleware())
	{
		agent.POST("/get-tags", controllers.GetTags)
		agent.POST("/analyze/:id",
			middlewares.RequireRole(models.RoleAuthority, models.RoleMasterAdmin),
			controllers.AnalyzePost)
	}
}
