package controllers

import (
	"net/http"

	"civiclens-be/config"
	"civiclens-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetDashboard aggregates the counters shown on the admin landing page.
func GetDashboard(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	users := config.GetCollection("users")
	posts := config.GetCollection("posts")
	authorities := config.GetCollection("authorities")

	totalUsers, err := users.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	totalAuthorities, err := authorities.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	pendingVerifications, err := authorities.CountDocuments(ctx, bson.M{"verificationStatus": models.VerificationPending})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	totalIssues, err := posts.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	// TODO: post statuses are stored uppercase, so these two counts always
	// come back 0. The admin frontend compensates client-side; fix both
	// together.
	resolvedIssues, err := posts.CountDocuments(ctx, bson.M{"status": "resolved"})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	pendingIssues, err := posts.CountDocuments(ctx, bson.M{"status": "pending"})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":           totalUsers,
		"totalAuthorities":     totalAuthorities,
		"pendingVerifications": pendingVerifications,
		"totalIssues":          totalIssues,
		"resolvedIssues":       resolvedIssues,
		"pendingIssues":        pendingIssues,
	})
}
