package controllers

import (
	"log"
	"net/http"
	"time"

	"civiclens-be/config"
	"civiclens-be/models"
	"civiclens-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type createResolutionInput struct {
	ResolutionDescription string                   `json:"resolutionDescription" binding:"required"`
	ResolutionImages      []models.ResolutionImage `json:"resolutionImages,omitempty"`
	WorkDetails           models.WorkDetails       `json:"workDetails,omitempty"`
}

// CreateResolution records how a post was resolved. One resolution per post,
// enforced by the unique index; the post flips to RESOLVED and the resolver
// gets credit on their profile.
func CreateResolution(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input createResolutionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	resolver, ok := currentUser(c, ctx)
	if !ok {
		return
	}

	var post models.Post
	if err := config.GetCollection("posts").FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		}
		return
	}

	if input.ResolutionImages == nil {
		input.ResolutionImages = []models.ResolutionImage{}
	}

	now := time.Now()
	resolution := models.ResolutionDetails{
		ID:                    primitive.NewObjectID(),
		PostID:                postID,
		ResolvedByUserID:      resolver.ID,
		ResolutionDescription: input.ResolutionDescription,
		ResolutionImages:      input.ResolutionImages,
		ResolutionDate:        now,
		WorkDetails:           input.WorkDetails,
		VerificationStatus:    models.ResolutionPending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if _, err := config.GetCollection("resolutions").InsertOne(ctx, resolution); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Post already has a resolution"})
			return
		}
		log.Println("Error creating resolution:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create resolution"})
		return
	}

	_, err = config.GetCollection("posts").UpdateByID(ctx, postID, bson.M{
		"$set": bson.M{
			"status":            models.PostResolved,
			"resolutionDetails": resolution.ID,
			"updatedAt":         now,
		},
	})
	if err != nil {
		log.Println("Error marking post resolved:", err)
	}

	_, err = config.GetCollection("users").UpdateByID(ctx, resolver.ID, bson.M{
		"$push": bson.M{"resolvedPosts": postID},
	})
	if err != nil {
		log.Println("Error crediting resolver:", err)
	}

	services.RecordActivity(resolver.ID, models.ActionIssueResolved, postID, models.RefPost,
		"Resolved: "+post.Title, nil)
	if post.Owner != resolver.ID {
		services.Notify(post.Owner, models.NotifyResolutionRequest, "Your report was resolved",
			"\""+post.Title+"\" has been marked resolved. Please confirm the fix.",
			resolution.ID, models.RefResolution, models.PriorityHigh)
	}

	c.JSON(http.StatusCreated, resolution)
}

type confirmResolutionInput struct {
	CitizenRating   int    `json:"citizenRating" binding:"required"`
	CitizenFeedback string `json:"citizenFeedback,omitempty"`
}

// ConfirmResolution lets the post owner confirm the fix and rate it 1-5.
func ConfirmResolution(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input confirmResolutionInput
	if err := c.ShouldBindJSON(&input); err != nil || input.CitizenRating < 1 || input.CitizenRating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, ok := currentUser(c, ctx)
	if !ok {
		return
	}

	var post models.Post
	if err := config.GetCollection("posts").FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		}
		return
	}
	if post.Owner != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the post owner can confirm a resolution"})
		return
	}

	var resolution models.ResolutionDetails
	err = config.GetCollection("resolutions").FindOneAndUpdate(ctx,
		bson.M{"postId": postID},
		bson.M{"$set": bson.M{
			"citizenConfirmed":   true,
			"citizenRating":      input.CitizenRating,
			"citizenFeedback":    input.CitizenFeedback,
			"verificationStatus": models.ResolutionVerified,
			"updatedAt":          time.Now(),
		}},
		findOneAndUpdateAfter()).Decode(&resolution)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resolution not found"})
		} else {
			log.Println("Error confirming resolution:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm resolution"})
		}
		return
	}

	services.RecordActivity(user.ID, models.ActionResolutionConfirmed, resolution.ID,
		models.RefResolution, "Confirmed resolution", bson.M{"rating": input.CitizenRating})
	if resolution.ResolvedByUserID != user.ID {
		services.Notify(resolution.ResolvedByUserID, models.NotifySystem,
			"Resolution confirmed",
			"The reporter confirmed your resolution of \""+post.Title+"\".",
			resolution.ID, models.RefResolution, models.PriorityMedium)
	}

	c.JSON(http.StatusOK, resolution)
}

// GetResolution returns the resolution record attached to a post.
func GetResolution(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var resolution models.ResolutionDetails
	err = config.GetCollection("resolutions").FindOne(ctx, bson.M{"postId": postID}).Decode(&resolution)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resolution not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resolution": resolution,
		"resolvedBy": userSummary(ctx, resolution.ResolvedByUserID),
	})
}
