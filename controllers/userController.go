package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"civiclens-be/config"
	"civiclens-be/models"
	"civiclens-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpdateProfile lets the authenticated user change their mutable profile
// fields. The username uniqueness check only runs when the normalized
// username actually changes, so a same-name edit never conflicts with
// itself.
func UpdateProfile(c *gin.Context) {
	var input struct {
		FullName          string  `json:"fullName" binding:"required"`
		Username          string  `json:"username" binding:"required"`
		Bio               *string `json:"bio,omitempty"`
		IsPrivateProfile  *bool   `json:"isPrivateProfile,omitempty"`
		ProfilePictureURL *string `json:"profilePictureUrl,omitempty"`
		ProfilePictureID  *string `json:"profilePictureId,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name and username are required"})
		return
	}

	if err := models.ValidateUsername(input.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	username := models.NormalizeUsername(input.Username)

	if input.Bio != nil && utf8.RuneCountInString(strings.TrimSpace(*input.Bio)) > 500 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bio must be at most 500 characters"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, ok := currentUser(c, ctx)
	if !ok {
		return
	}

	users := config.GetCollection("users")

	if username != models.NormalizeUsername(user.Username) {
		count, err := users.CountDocuments(ctx, bson.M{
			"username":   username,
			"externalId": bson.M{"$ne": user.ExternalID},
		})
		if err != nil {
			log.Println("Error checking username uniqueness:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
			return
		}
	}

	update := bson.M{
		"fullName":  fullName,
		"username":  username,
		"updatedAt": time.Now(),
	}
	if input.Bio != nil {
		update["bio"] = strings.TrimSpace(*input.Bio)
	}
	if input.IsPrivateProfile != nil {
		update["isPrivateProfile"] = *input.IsPrivateProfile
	}
	if input.ProfilePictureURL != nil && *input.ProfilePictureURL != "" {
		update["profilePictureUrl"] = *input.ProfilePictureURL
	}
	if input.ProfilePictureID != nil && *input.ProfilePictureID != "" {
		update["profilePictureId"] = *input.ProfilePictureID
	}

	var updated models.User
	err := users.FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, bson.M{"$set": update},
		findOneAndUpdateAfter()).Decode(&updated)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// lost a race with another user taking the same username
			c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
			return
		}
		log.Println("Error updating profile:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	services.RecordActivity(updated.ID, models.ActionProfileUpdated, updated.ID, models.RefUser, "Profile updated", nil)

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    updated.Profile(),
	})
}

// adminUserProjection is the field set the admin user list exposes
var adminUserProjection = bson.M{
	"fullName":         1,
	"email":            1,
	"username":         1,
	"role":             1,
	"location":         1,
	"isPrivateProfile": 1,
	"posts":            1,
	"createdAt":        1,
	"updatedAt":        1,
}

// ListUsers returns all users for the admin console, newest first.
func ListUsers(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	findOptions := options.Find().
		SetProjection(adminUserProjection).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := config.GetCollection("users").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	defer cursor.Close(ctx)

	users := []bson.M{}
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUserRole changes a user's role. Masteradmin assignment goes through
// the same models.AssignRole writer as the sync path, so the singleton
// invariant holds here too.
func UpdateUserRole(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !models.IsValidRole(input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role provided"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	users := config.GetCollection("users")

	updated, err := models.AssignRole(ctx, users, userID, models.Role(input.Role))
	if err != nil {
		switch {
		case err == models.ErrMasterAdminExists:
			c.JSON(http.StatusConflict, gin.H{"error": "A master admin already exists"})
		case err == mongo.ErrNoDocuments:
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			log.Println("Error updating user role:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               updated.ID,
		"fullName":         updated.FullName,
		"email":            updated.Email,
		"username":         updated.Username,
		"role":             updated.Role,
		"location":         updated.Location,
		"isPrivateProfile": updated.IsPrivateProfile,
		"posts":            updated.Posts,
		"createdAt":        updated.CreatedAt,
		"updatedAt":        updated.UpdatedAt,
	})
}
