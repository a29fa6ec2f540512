package controllers

import (
	"log"
	"net/http"
	"regexp"
	"strconv"
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

type createPostInput struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Images      []models.PostImage  `json:"images,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Keywords    []string            `json:"keywords,omitempty"`
	Location    models.PostLocation `json:"location" binding:"required"`
	Visibility  string              `json:"visibility,omitempty"`
}

// CreatePost files a new civic issue for the authenticated user.
func CreatePost(c *gin.Context) {
	var input createPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visibility := models.VisibilityPublic
	if input.Visibility != "" {
		if !models.IsValidVisibility(input.Visibility) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid visibility"})
			return
		}
		visibility = models.Visibility(input.Visibility)
	}

	ctx, cancel := requestContext()
	defer cancel()

	owner, ok := currentUser(c, ctx)
	if !ok {
		return
	}

	if input.Images == nil {
		input.Images = []models.PostImage{}
	}
	if input.Tags == nil {
		input.Tags = []string{}
	}
	if input.Keywords == nil {
		input.Keywords = []string{}
	}

	now := time.Now()
	post := models.Post{
		ID:                  primitive.NewObjectID(),
		Owner:               owner.ID,
		Title:               input.Title,
		Description:         input.Description,
		Images:              input.Images,
		Tags:                input.Tags,
		Keywords:            input.Keywords,
		Location:            input.Location,
		Status:              models.PostPending,
		Visibility:          visibility,
		Upvotes:             0,
		Downvotes:           0,
		VotedUsers:          []models.VotedUser{},
		AssignedAuthorities: []primitive.ObjectID{},
		Comments:            []primitive.ObjectID{},
		UrgencyScore:        models.DefaultUrgency,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if _, err := config.GetCollection("posts").InsertOne(ctx, post); err != nil {
		log.Println("Error creating post:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	_, err := config.GetCollection("users").UpdateByID(ctx, owner.ID, bson.M{
		"$push": bson.M{"posts": post.ID},
	})
	if err != nil {
		log.Println("Error linking post to user:", err)
	}

	services.RecordActivity(owner.ID, models.ActionPostCreated, post.ID, models.RefPost,
		"Reported: "+post.Title, bson.M{"city": post.Location.City})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

// GetAllPosts lists public posts with optional filters and pagination.
// Query params: status, city, tag, page, limit.
func GetAllPosts(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	filter := bson.M{"visibility": models.VisibilityPublic}
	if status := c.Query("status"); status != "" {
		if !models.IsValidPostStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		filter["status"] = status
	}
	if category := c.Query("category"); category != "" {
		categoryID, err := primitive.ObjectIDFromHex(category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		filter["category"] = categoryID
	}
	if search := c.Query("search"); search != "" {
		escaped := regexp.QuoteMeta(search)
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": escaped, "$options": "i"}},
			{"description": bson.M{"$regex": escaped, "$options": "i"}},
		}
	}
	if city := c.Query("city"); city != "" {
		filter["location.city"] = bson.M{"$regex": "^" + regexp.QuoteMeta(city) + "$", "$options": "i"}
	}
	if tag := c.Query("tag"); tag != "" {
		filter["tags"] = tag
	}

	sortDir := -1
	if c.Query("sort") == "oldest" {
		sortDir = 1
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: sortDir}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	posts := config.GetCollection("posts")

	total, err := posts.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	cursor, err := posts.Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	var results []models.Post
	if err := cursor.All(ctx, &results); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	enriched := make([]gin.H, 0, len(results))
	for _, p := range results {
		enriched = append(enriched, gin.H{
			"post":  p,
			"owner": userSummary(ctx, p.Owner),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": enriched,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// GetPost returns a single post with its owner summary.
func GetPost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var post models.Post
	err = config.GetCollection("posts").FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":  post,
		"owner": userSummary(ctx, post.Owner),
	})
}

// GetMyPosts lists the authenticated user's own posts, any visibility.
func GetMyPosts(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	user, ok := currentUser(c, ctx)
	if !ok {
		return
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := config.GetCollection("posts").Find(ctx, bson.M{"owner": user.ID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	// non-nil so an empty result serializes as [] rather than null
	results := []models.Post{}
	if err := cursor.All(ctx, &results); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, results)
}

// VoteOnPost applies one user's vote to a post. The ledger and the counters
// move together in a single conditional update, so concurrent votes can never
// drift them apart:
//
//  1. flip: matches only when the user's ledger entry holds the opposite
//     direction; rewrites it in place and moves one count across.
//  2. first vote: matches only when the user has no ledger entry; pushes one
//     and bumps one counter.
//  3. neither matched: the same direction was already recorded, no-op.
func VoteOnPost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input struct {
		VoteType string `json:"voteType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !models.IsValidVoteType(input.VoteType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote type"})
		return
	}
	vote := models.VoteType(input.VoteType)

	ctx, cancel := requestContext()
	defer cancel()

	user, ok := currentUser(c, ctx)
	if !ok {
		return
	}

	posts := config.GetCollection("posts")

	upDelta, downDelta := 1, 0
	if vote == models.Downvote {
		upDelta, downDelta = 0, 1
	}

	changed := false

	// flip an existing opposite-direction vote: one count moves across
	res, err := posts.UpdateOne(ctx,
		bson.M{
			"_id":        postID,
			"votedUsers": bson.M{"$elemMatch": bson.M{"userId": user.ID, "voteType": vote.Opposite()}},
		},
		bson.M{
			"$set": bson.M{"votedUsers.$.voteType": vote, "updatedAt": time.Now()},
			"$inc": bson.M{"upvotes": upDelta - downDelta, "downvotes": downDelta - upDelta},
		})
	if err != nil {
		log.Println("Error flipping vote:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
		return
	}
	changed = res.ModifiedCount > 0

	if !changed {
		// first vote from this user
		res, err = posts.UpdateOne(ctx,
			bson.M{
				"_id":               postID,
				"votedUsers.userId": bson.M{"$ne": user.ID},
			},
			bson.M{
				"$push": bson.M{"votedUsers": models.VotedUser{UserID: user.ID, VoteType: vote}},
				"$inc":  bson.M{"upvotes": upDelta, "downvotes": downDelta},
				"$set":  bson.M{"updatedAt": time.Now()},
			})
		if err != nil {
			log.Println("Error recording vote:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
			return
		}
		changed = res.ModifiedCount > 0
	}

	var post models.Post
	if err := posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		}
		return
	}

	if changed {
		// mirror into the generalized votes collection
		_, err = config.GetCollection("votes").UpdateOne(ctx,
			bson.M{"userId": user.ID, "targetId": postID, "targetType": models.VoteTargetPost},
			bson.M{
				"$set": bson.M{"voteType": vote, "updatedAt": time.Now()},
				"$setOnInsert": bson.M{
					"userId":     user.ID,
					"targetId":   postID,
					"targetType": models.VoteTargetPost,
					"createdAt":  time.Now(),
				},
			},
			options.Update().SetUpsert(true))
		if err != nil {
			log.Println("Error mirroring vote:", err)
		}

		action := models.ActionUpvoted
		if vote == models.Downvote {
			action = models.ActionDownvoted
		}
		services.RecordActivity(user.ID, action, postID, models.RefPost, "Voted on post", nil)

		if vote == models.Upvote && post.Owner != user.ID {
			services.Notify(post.Owner, models.NotifyPostUpvote, "Your report got an upvote",
				user.FullName+" upvoted \""+post.Title+"\"",
				postID, models.RefPost, models.PriorityLow)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Vote recorded",
		"upvotes":   post.Upvotes,
		"downvotes": post.Downvotes,
		"changed":   changed,
	})
}

// AttachImage appends an uploaded image reference to the caller's own post.
func AttachImage(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input models.PostImage
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
	err = config.GetCollection("posts").FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "owner": user.ID},
		bson.M{
			"$push": bson.M{"images": input},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
		findOneAndUpdateAfter()).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach image"})
		}
		return
	}

	c.JSON(http.StatusOK, post)
}

// DetachImage removes an image from the caller's own post. The CDN copy is
// deleted best effort: a failed remote delete is logged and the local
// reference still goes away.
func DetachImage(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	fileID := c.Param("fileId")
	if fileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fileId is required"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, ok := currentUser(c, ctx)
	if !ok {
		return
	}

	if err := services.DeleteFile(ctx, fileID); err != nil {
		log.Println("Error deleting CDN file:", err)
	}

	var post models.Post
	err = config.GetCollection("posts").FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "owner": user.ID},
		bson.M{
			"$pull": bson.M{"images": bson.M{"fileId": fileID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
		findOneAndUpdateAfter()).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach image"})
		}
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePostStatus moves a post through its triage lifecycle. Restricted to
// authority and masteradmin roles at the route level.
func UpdatePostStatus(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !models.IsValidPostStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	actor, ok := currentUser(c, ctx)
	if !ok {
		return
	}

	var post models.Post
	err = config.GetCollection("posts").FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{"$set": bson.M{"status": models.PostStatus(input.Status), "updatedAt": time.Now()}},
		findOneAndUpdateAfter()).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	services.RecordActivity(actor.ID, models.ActionStatusChanged, postID, models.RefPost,
		"Status changed to "+input.Status, nil)
	if post.Owner != actor.ID {
		services.Notify(post.Owner, models.NotifyStatusUpdate, "Report status updated",
			"\""+post.Title+"\" is now "+input.Status,
			postID, models.RefPost, models.PriorityMedium)
	}

	c.JSON(http.StatusOK, post)
}
