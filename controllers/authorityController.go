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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// authorityMatchesQuery applies the admin console's free-text filter over
// the holder's name and the authority's position. An empty query matches
// everything.
func authorityMatchesQuery(a *models.Authority, holder map[string]interface{}, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(a.Position), q) {
		return true
	}
	if name, ok := holder["fullName"].(string); ok && strings.Contains(strings.ToLower(name), q) {
		return true
	}
	return false
}

// ListAuthorities returns authority records for the admin console, each with
// a compact summary of the linked user. Supports ?status= and a free-text
// ?q= over holder name and position. The name lives in the users collection,
// so the query filter runs over the joined summaries rather than in Mongo.
func ListAuthorities(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["verificationStatus"] = status
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := config.GetCollection("authorities").Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch authorities"})
		return
	}
	defer cursor.Close(ctx)

	var authorities []models.Authority
	if err := cursor.All(ctx, &authorities); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch authorities"})
		return
	}

	q := c.Query("q")
	results := make([]gin.H, 0, len(authorities))
	for i := range authorities {
		a := &authorities[i]
		holder := userSummary(ctx, a.UserID)
		if !authorityMatchesQuery(a, holder, q) {
			continue
		}
		results = append(results, gin.H{
			"id":                 a.ID,
			"user":               holder,
			"department":         a.Department,
			"position":           a.Position,
			"verificationStatus": a.VerificationStatus,
			"contactInfo":        a.ContactInfo,
			"expertise":          a.Expertise,
			"area":               a.Area,
			"isActive":           a.IsActive,
			"createdAt":          a.CreatedAt,
			"updatedAt":          a.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, results)
}

type createAuthorityInput struct {
	UserID      string             `json:"userId" binding:"required"`
	Department  string             `json:"department,omitempty"`
	Position    string             `json:"position" binding:"required"`
	ContactInfo models.ContactInfo `json:"contactInfo" binding:"required"`
	Expertise   []string           `json:"expertise,omitempty"`
	Area        models.Area        `json:"area" binding:"required"`
}

// CreateAuthority registers a user as a pending authority. The role flips to
// "authority" immediately on registration rather than on verification; the
// verification status gates what the authority is allowed to do elsewhere.
func CreateAuthority(c *gin.Context) {
	var input createAuthorityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	users := config.GetCollection("users")

	var target models.User
	if err := users.FindOne(ctx, bson.M{"_id": userID}).Decode(&target); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		}
		return
	}

	var department *primitive.ObjectID
	if input.Department != "" {
		deptID, derr := primitive.ObjectIDFromHex(input.Department)
		if derr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
			return
		}
		department = &deptID
	}

	if input.Expertise == nil {
		input.Expertise = []string{}
	}

	now := time.Now()
	authority := models.Authority{
		ID:                 primitive.NewObjectID(),
		UserID:             userID,
		Department:         department,
		Position:           input.Position,
		VerificationStatus: models.VerificationPending,
		ContactInfo:        input.ContactInfo,
		Expertise:          input.Expertise,
		Area:               input.Area,
		PendingIssues:      []primitive.ObjectID{},
		ResolvedIssues:     []primitive.ObjectID{},
		AssignedIssues:     []primitive.ObjectID{},
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := config.GetCollection("authorities").InsertOne(ctx, authority); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "User is already registered as an authority"})
			return
		}
		log.Println("Error creating authority:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create authority"})
		return
	}

	if target.Role != models.RoleMasterAdmin && target.Role != models.RoleAuthority {
		if _, err := models.AssignRole(ctx, users, userID, models.RoleAuthority); err != nil {
			log.Println("Error setting authority role:", err)
		}
	}

	services.RecordActivity(userID, models.ActionAuthAssigned, authority.ID, models.RefAuthority,
		"Registered as authority: "+input.Position, nil)
	services.Notify(userID, models.NotifyVerificationUpdate, "Authority registration received",
		"Your authority registration is pending verification.",
		authority.ID, models.RefAuthority, models.PriorityMedium)

	c.JSON(http.StatusCreated, authority)
}

type updateAuthorityInput struct {
	VerificationStatus string              `json:"verificationStatus,omitempty"`
	Department         string              `json:"department,omitempty"`
	Position           string              `json:"position,omitempty"`
	ContactInfo        *models.ContactInfo `json:"contactInfo,omitempty"`
	Expertise          []string            `json:"expertise,omitempty"`
	Area               *models.Area        `json:"area,omitempty"`
	IsActive           *bool               `json:"isActive,omitempty"`
}

// UpdateAuthority applies one of two allowed edits: a verification-status
// transition, or a profile-field update. A status transition is only legal
// from PENDING, enforced by the conditional filter so two concurrent
// decisions can't both win.
func UpdateAuthority(c *gin.Context) {
	authorityID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid authority ID"})
		return
	}

	var input updateAuthorityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	authorities := config.GetCollection("authorities")

	if input.VerificationStatus != "" {
		next := models.VerificationStatus(input.VerificationStatus)
		if !models.VerificationPending.CanTransitionTo(next) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification status"})
			return
		}

		var updated models.Authority
		err := authorities.FindOneAndUpdate(ctx,
			bson.M{"_id": authorityID, "verificationStatus": models.VerificationPending},
			bson.M{"$set": bson.M{"verificationStatus": next, "updatedAt": time.Now()}},
			findOneAndUpdateAfter()).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			// either unknown id or already decided
			var existing models.Authority
			if ferr := authorities.FindOne(ctx, bson.M{"_id": authorityID}).Decode(&existing); ferr == nil {
				c.JSON(http.StatusConflict, gin.H{"error": "Authority verification is already decided"})
			} else {
				c.JSON(http.StatusNotFound, gin.H{"error": "Authority not found"})
			}
			return
		}
		if err != nil {
			log.Println("Error updating authority status:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update authority"})
			return
		}

		title := "Authority verification approved"
		content := "Your authority account has been verified."
		if next == models.VerificationRejected {
			title = "Authority verification rejected"
			content = "Your authority registration was rejected."
		}
		services.Notify(updated.UserID, models.NotifyVerificationUpdate, title, content,
			updated.ID, models.RefAuthority, models.PriorityHigh)
		if next == models.VerificationVerified {
			services.RecordActivity(updated.UserID, models.ActionAuthorityVerified, updated.ID,
				models.RefAuthority, "Authority verified", nil)
		}

		c.JSON(http.StatusOK, updated)
		return
	}

	update := bson.M{}
	if input.Department != "" {
		deptID, derr := primitive.ObjectIDFromHex(input.Department)
		if derr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
			return
		}
		update["department"] = deptID
	}
	if input.Position != "" {
		update["position"] = input.Position
	}
	if input.ContactInfo != nil {
		update["contactInfo"] = *input.ContactInfo
	}
	if input.Expertise != nil {
		update["expertise"] = input.Expertise
	}
	if input.Area != nil {
		update["area"] = *input.Area
	}
	if input.IsActive != nil {
		update["isActive"] = *input.IsActive
	}

	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No updatable fields provided"})
		return
	}
	update["updatedAt"] = time.Now()

	var updated models.Authority
	err = authorities.FindOneAndUpdate(ctx, bson.M{"_id": authorityID},
		bson.M{"$set": update}, findOneAndUpdateAfter()).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Authority not found"})
		return
	}
	if err != nil {
		log.Println("Error updating authority:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update authority"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
