package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"civiclens-be/config"
	"civiclens-be/models"
	"civiclens-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const analysisVersion = "1.0"

// GetTags generates suggested tags for a draft post. Validation happens
// before any external call so an empty draft never costs a model request.
func GetTags(c *gin.Context) {
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(input.Title) == "" && strings.TrimSpace(input.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title or description is required"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	tags, err := services.GenerateTags(ctx, input.Title, input.Description)
	if err != nil {
		log.Println("Error generating tags:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tags"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// AnalyzePost runs the keyword analysis over a post and stores the result as
// its one-per-post analysis record. The post picks up the routed category,
// department and urgency score.
func AnalyzePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	posts := config.GetCollection("posts")

	var post models.Post
	if err := posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		}
		return
	}

	cursor, err := config.GetCollection("categories").Find(ctx, bson.M{"isActive": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze post"})
		return
	}
	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze post"})
		return
	}

	text := post.Title + " " + post.Description
	routed, matched := services.RouteCategory(text, categories)
	urgency := services.ScoreUrgency(text)
	sentiment := services.ScoreSentiment(text)

	now := time.Now()
	analysis := models.AIAnalysis{
		ID:                   primitive.NewObjectID(),
		PostID:               postID,
		UrgencyScore:         urgency,
		KeywordsDetected:     matched,
		SentimentScore:       sentiment,
		SuggestedAuthorities: []primitive.ObjectID{},
		IssueType:            "CIVIC",
		Priority:             services.PriorityForUrgency(urgency),
		Tags:                 post.Tags,
		AnalysisVersion:      analysisVersion,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if matched == nil {
		analysis.KeywordsDetected = []string{}
	}

	postUpdate := bson.M{"urgencyScore": urgency, "updatedAt": now}
	if routed != nil {
		analysis.Category = routed.Name
		analysis.Department = &routed.DepartmentID
		analysis.Confidence = float64(len(matched)) / float64(len(matched)+1)
		postUpdate["category"] = routed.ID
		postUpdate["department"] = routed.DepartmentID
	}

	if _, err := config.GetCollection("aianalyses").InsertOne(ctx, analysis); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Post already analyzed"})
			return
		}
		log.Println("Error storing analysis:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze post"})
		return
	}

	postUpdate["aiAnalysis"] = analysis.ID
	if _, err := posts.UpdateByID(ctx, postID, bson.M{"$set": postUpdate}); err != nil {
		log.Println("Error applying analysis to post:", err)
	}

	c.JSON(http.StatusOK, analysis)
}
