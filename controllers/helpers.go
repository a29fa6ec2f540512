package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"civiclens-be/config"
	"civiclens-be/middlewares"
	"civiclens-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func findOneAndUpdateAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// currentUser resolves the authenticated session to its local User document.
// Writes the error response itself and returns false when that fails.
func currentUser(c *gin.Context, ctx context.Context) (*models.User, bool) {
	externalID := c.GetString(middlewares.CtxExternalID)
	if externalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}

	var user models.User
	err := config.GetCollection("users").FindOne(ctx, bson.M{"externalId": externalID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		}
		return nil, false
	}

	return &user, true
}

// userSummary fetches the compact user projection embedded in responses
func userSummary(ctx context.Context, userID primitive.ObjectID) map[string]interface{} {
	summary := map[string]interface{}{
		"id": userID,
	}

	var user models.User
	if err := config.GetCollection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err == nil {
		summary["fullName"] = user.FullName
		summary["email"] = user.Email
		summary["username"] = user.Username
	}

	return summary
}

// duplicateIndex names the unique index behind a duplicate-key error, or ""
// when the error is something else. Index names are assigned in the models
// package so the cause of an insert conflict can be told apart here.
func duplicateIndex(err error) string {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return ""
	}
	msg := err.Error()
	for _, name := range []string{
		models.UserMasterAdminIndex,
		models.UserUsernameIndex,
		models.UserExternalIDIndex,
	} {
		if strings.Contains(msg, name) {
			return name
		}
	}
	return "unknown"
}
