package routes

import (
	"civiclens-be/controllers"
	"civiclens-be/middlewares"
	"civiclens-be/models"

	"github.com/gin-gonic/gin"
)

// dailyPostLimit caps how many reports one user may file per day
const dailyPostLimit = 5

// PostRoutes sets up the civic-issue and comment routes
func PostRoutes(r *gin.Engine) {
	post := r.Group("/api/post")
	{
		post.GET("", controllers.GetAllPosts)
		post.GET("/:id", controllers.GetPost)
		post.GET("/:id/comments", controllers.ListComments)
		post.GET("/:id/resolution", controllers.GetResolution)

		authed := post.Group("", middlewares.AuthMiddleware())
		{
			authed.POST("/create", middlewares.PostRateLimiter(dailyPostLimit), controllers.CreatePost)
			authed.GET("/me", controllers.GetMyPosts)
			authed.POST("/:id/vote", controllers.VoteOnPost)
			authed.POST("/:id/comments", controllers.CreateComment)
			authed.POST("/:id/images", controllers.AttachImage)
			authed.DELETE("/:id/images/:fileId", controllers.DetachImage)

			authed.PATCH("/:id/status",
				middlewares.RequireRole(models.RoleAuthority, models.RoleMasterAdmin),
				controllers.UpdatePostStatus)
			authed.POST("/:id/resolution",
				middlewares.RequireRole(models.RoleAuthority, models.RoleMasterAdmin),
				controllers.CreateResolution)
			authed.PATCH("/:id/resolution/confirm", controllers.ConfirmResolution)
		}
	}

	comment := r.Group("/api/comment", middlewares.AuthMiddleware())
	{
		comment.POST("/:id/react", controllers.ReactToComment)
		comment.DELETE("/:id", controllers.DeleteComment)
	}
}
