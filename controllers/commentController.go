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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type createCommentInput struct {
	Content         string `json:"content" binding:"required"`
	ParentCommentID string `json:"parentCommentId,omitempty"`
}

// CreateComment adds a comment (or a one-level reply) to a post.
func CreateComment(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input createCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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

	comments := config.GetCollection("comments")

	var parentID *primitive.ObjectID
	if input.ParentCommentID != "" {
		pid, perr := primitive.ObjectIDFromHex(input.ParentCommentID)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent comment ID"})
			return
		}
		var parent models.Comment
		if err := comments.FindOne(ctx, bson.M{"_id": pid, "postId": postID}).Decode(&parent); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parent comment not found"})
			return
		}
		if parent.ParentCommentID != nil {
			// replies only nest one level
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot reply to a reply"})
			return
		}
		parentID = &pid
	}

	now := time.Now()
	comment := models.Comment{
		ID:              primitive.NewObjectID(),
		PostID:          postID,
		UserID:          user.ID,
		Content:         input.Content,
		ParentCommentID: parentID,
		Replies:         []primitive.ObjectID{},
		LikedBy:         []primitive.ObjectID{},
		DislikedBy:      []primitive.ObjectID{},
		IsOfficial:      user.Role == models.RoleAuthority || user.Role == models.RoleMasterAdmin,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := comments.InsertOne(ctx, comment); err != nil {
		log.Println("Error creating comment:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if _, err := config.GetCollection("posts").UpdateByID(ctx, postID, bson.M{
		"$push": bson.M{"comments": comment.ID},
	}); err != nil {
		log.Println("Error linking comment to post:", err)
	}
	if parentID != nil {
		if _, err := comments.UpdateByID(ctx, *parentID, bson.M{
			"$push": bson.M{"replies": comment.ID},
		}); err != nil {
			log.Println("Error linking reply to parent:", err)
		}
	}
	if _, err := config.GetCollection("users").UpdateByID(ctx, user.ID, bson.M{
		"$push": bson.M{"comments": comment.ID},
	}); err != nil {
		log.Println("Error linking comment to user:", err)
	}

	services.RecordActivity(user.ID, models.ActionCommentAdded, comment.ID, models.RefComment,
		"Commented on a post", nil)
	if post.Owner != user.ID {
		services.Notify(post.Owner, models.NotifyPostComment, "New comment on your report",
			user.FullName+" commented on \""+post.Title+"\"",
			postID, models.RefPost, models.PriorityLow)
	}

	c.JSON(http.StatusCreated, gin.H{
		"comment": comment,
		"user":    userSummary(ctx, user.ID),
	})
}

// ListComments returns a post's comments oldest first, each with its author
// summary. Soft-deleted comments keep their place with blanked content.
func ListComments(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := config.GetCollection("comments").Find(ctx, bson.M{"postId": postID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	results := make([]gin.H, 0, len(comments))
	for _, cm := range comments {
		if cm.IsDeleted {
			cm.Content = ""
		}
		results = append(results, gin.H{
			"comment": cm,
			"user":    userSummary(ctx, cm.UserID),
		})
	}

	c.JSON(http.StatusOK, results)
}

// ReactToComment records a like or dislike. Same conditional-update shape as
// post voting: move between ledgers, first reaction, or no-op.
func ReactToComment(c *gin.Context) {
	commentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var input struct {
		Reaction string `json:"reaction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !models.IsValidReaction(input.Reaction) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reaction"})
		return
	}
	reaction := models.Reaction(input.Reaction)

	ctx, cancel := requestContext()
	defer cancel()

	user, ok := currentUser(c, ctx)
	if !ok {
		return
	}

	comments := config.GetCollection("comments")

	ownField, otherField := "likedBy", "dislikedBy"
	ownCounter, otherCounter := "likes", "dislikes"
	if reaction == models.ReactionDislike {
		ownField, otherField = otherField, ownField
		ownCounter, otherCounter = otherCounter, ownCounter
	}

	// switch from the opposite ledger
	res, err := comments.UpdateOne(ctx,
		bson.M{"_id": commentID, otherField: user.ID},
		bson.M{
			"$pull": bson.M{otherField: user.ID},
			"$push": bson.M{ownField: user.ID},
			"$inc":  bson.M{ownCounter: 1, otherCounter: -1},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		log.Println("Error switching reaction:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record reaction"})
		return
	}
	changed := res.ModifiedCount > 0

	if !changed {
		// first reaction from this user
		res, err = comments.UpdateOne(ctx,
			bson.M{
				"_id":      commentID,
				ownField:   bson.M{"$ne": user.ID},
				otherField: bson.M{"$ne": user.ID},
			},
			bson.M{
				"$push": bson.M{ownField: user.ID},
				"$inc":  bson.M{ownCounter: 1},
				"$set":  bson.M{"updatedAt": time.Now()},
			})
		if err != nil {
			log.Println("Error recording reaction:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record reaction"})
			return
		}
		changed = res.ModifiedCount > 0
	}

	var comment models.Comment
	if err := comments.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		}
		return
	}

	if changed {
		// mirror into the generalized votes collection, same as post votes
		_, err = config.GetCollection("votes").UpdateOne(ctx,
			bson.M{"userId": user.ID, "targetId": commentID, "targetType": models.VoteTargetComment},
			bson.M{
				"$set": bson.M{"voteType": reaction.AsVoteType(), "updatedAt": time.Now()},
				"$setOnInsert": bson.M{
					"userId":     user.ID,
					"targetId":   commentID,
					"targetType": models.VoteTargetComment,
					"createdAt":  time.Now(),
				},
			},
			options.Update().SetUpsert(true))
		if err != nil {
			log.Println("Error mirroring reaction:", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"likes":    comment.Likes,
		"dislikes": comment.Dislikes,
		"changed":  changed,
	})
}

// DeleteComment soft-deletes the caller's own comment. Masteradmin may
// delete any comment.
func DeleteComment(c *gin.Context) {
	commentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, ok := currentUser(c, ctx)
	if !ok {
		return
	}

	filter := bson.M{"_id": commentID, "isDeleted": false}
	if user.Role != models.RoleMasterAdmin {
		filter["userId"] = user.ID
	}

	now := time.Now()
	res, err := config.GetCollection("comments").UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"isDeleted": true, "deletedAt": now, "updatedAt": now},
	})
	if err != nil {
		log.Println("Error deleting comment:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	if res.ModifiedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
