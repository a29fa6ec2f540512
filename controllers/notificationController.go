package controllers

import (
	"net/http"
	"time"

	"civiclens-be/config"
	"civiclens-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListNotifications returns the caller's inbox, newest first. Pass
// ?unread=true to see only unread entries.
func ListNotifications(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	user, ok := currentUser(c, ctx)
	if !ok {
		return
	}

	filter := bson.M{"userId": user.ID, "isArchived": false}
	if c.Query("unread") == "true" {
		filter["isRead"] = false
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(100)
	cursor, err := config.GetCollection("notifications").Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	unread, err := config.GetCollection("notifications").CountDocuments(ctx,
		bson.M{"userId": user.ID, "isRead": false, "isArchived": false})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

// MarkNotificationRead marks one of the caller's notifications as read.
// Marking an already-read notification again is a no-op success.
func MarkNotificationRead(c *gin.Context) {
	notificationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, ok := currentUser(c, ctx)
	if !ok {
		return
	}

	now := time.Now()
	res, err := config.GetCollection("notifications").UpdateOne(ctx,
		bson.M{"_id": notificationID, "userId": user.ID},
		bson.M{"$set": bson.M{"isRead": true, "readAt": now, "updatedAt": now}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
