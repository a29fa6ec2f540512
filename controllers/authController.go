package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"civiclens-be/config"
	"civiclens-be/middlewares"
	"civiclens-be/models"
	authUtils "civiclens-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IsAuth is the session-sync endpoint. It reconciles the identity provider's
// view of the caller with the local User document: creates the profile on
// first sight, refreshes drifted claim fields afterwards, and returns the
// normalized profile projection.
func IsAuth(c *gin.Context) {
	externalID := c.GetString(middlewares.CtxExternalID)
	if externalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false, "error": "User not authenticated"})
		return
	}

	email := c.GetString(middlewares.CtxEmail)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"authenticated": false, "error": "Email is required"})
		return
	}

	fullName := c.GetString(middlewares.CtxFullName)
	pictureURL := c.GetString(middlewares.CtxPictureURL)
	claimedRole := c.GetString(middlewares.CtxRole)

	ctx, cancel := requestContext()
	defer cancel()

	users := config.GetCollection("users")

	var user models.User
	err := users.FindOne(ctx, bson.M{"externalId": externalID}).Decode(&user)
	switch {
	case err == mongo.ErrNoDocuments:
		created, cerr := createUserFromClaims(ctx, users, externalID, email, fullName, pictureURL, claimedRole)
		if cerr != nil {
			log.Println("Error creating user:", cerr)
			c.JSON(http.StatusInternalServerError, gin.H{"authenticated": false, "error": "Something went wrong"})
			return
		}
		user = *created
	case err != nil:
		log.Println("Error loading user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"authenticated": false, "error": "Something went wrong"})
		return
	default:
		synced, serr := syncUserFromClaims(ctx, users, &user, email, fullName, pictureURL, claimedRole)
		if serr != nil {
			log.Println("Error syncing user:", serr)
			c.JSON(http.StatusInternalServerError, gin.H{"authenticated": false, "error": "Something went wrong"})
			return
		}
		user = *synced
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"userId":        externalID,
		"userData":      user.Profile(),
	})
}

// createUserFromClaims inserts the first-login profile. The generated
// username and the masteradmin singleton are both enforced by unique
// indexes, so conflicts surface as duplicate-key errors: a username clash
// gets a fresh suffix, a masteradmin clash downgrades the role to "user".
func createUserFromClaims(ctx context.Context, users *mongo.Collection, externalID, email, fullName, pictureURL, claimedRole string) (*models.User, error) {
	role := models.RoleUser
	if models.IsValidRole(claimedRole) {
		role = models.Role(claimedRole)
	}

	var lastErr error
	for attempt := 0; attempt < 4; attempt++ {
		now := time.Now()
		user := models.User{
			ID:                primitive.NewObjectID(),
			ExternalID:        externalID,
			Email:             email,
			FullName:          fullName,
			Username:          models.NormalizeUsername(authUtils.GenerateUsername(fullName)),
			ProfilePictureURL: pictureURL,
			Role:              role,
			Posts:             []primitive.ObjectID{},
			ResolvedPosts:     []primitive.ObjectID{},
			Comments:          []primitive.ObjectID{},
			Notifications:     []primitive.ObjectID{},
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		_, err := users.InsertOne(ctx, user)
		if err == nil {
			return &user, nil
		}
		lastErr = err

		switch duplicateIndex(err) {
		case models.UserMasterAdminIndex:
			// another masteradmin already exists; this user starts as a
			// regular user instead
			role = models.RoleUser
		case models.UserUsernameIndex:
			// retry with a fresh suffix
		case models.UserExternalIDIndex:
			// concurrent first login created the document; use it
			var existing models.User
			if ferr := users.FindOne(ctx, bson.M{"externalId": externalID}).Decode(&existing); ferr == nil {
				return &existing, nil
			}
			return nil, err
		default:
			return nil, err
		}
	}
	return nil, lastErr
}

// syncUserFromClaims overwrites stored fields that drifted from the claims.
// No write happens when nothing changed.
func syncUserFromClaims(ctx context.Context, users *mongo.Collection, user *models.User, email, fullName, pictureURL, claimedRole string) (*models.User, error) {
	update := bson.M{}
	if email != "" && email != user.Email {
		update["email"] = email
	}
	if fullName != "" && fullName != user.FullName {
		update["fullName"] = fullName
	}
	if pictureURL != "" && pictureURL != user.ProfilePictureURL {
		update["profilePictureUrl"] = pictureURL
	}

	roleChanged := models.IsValidRole(claimedRole) && models.Role(claimedRole) != user.Role
	if roleChanged {
		updated, err := models.AssignRole(ctx, users, user.ID, models.Role(claimedRole))
		if err == models.ErrMasterAdminExists {
			// singleton invariant wins; the user keeps their prior role
			log.Printf("Masteradmin claim for %s ignored: one already exists", user.ExternalID)
		} else if err != nil {
			return nil, err
		} else {
			user = updated
		}
	}

	if len(update) == 0 {
		return user, nil
	}
	update["updatedAt"] = time.Now()

	var synced models.User
	err := users.FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, bson.M{"$set": update},
		findOneAndUpdateAfter()).Decode(&synced)
	if err != nil {
		return nil, err
	}
	return &synced, nil
}
