package services

import (
	"context"
	"log"
	"time"

	"civiclens-be/config"
	"civiclens-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordActivity appends an audit record. Best effort: a failed write is
// logged and never fails the caller's request.
func RecordActivity(userID primitive.ObjectID, action models.ActionType, resourceID primitive.ObjectID, resourceType models.ReferenceType, description string, metadata bson.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if metadata == nil {
		metadata = bson.M{}
	}

	activity := models.Activity{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		ActionType:   action,
		ResourceID:   resourceID,
		ResourceType: resourceType,
		Description:  description,
		Metadata:     metadata,
		IsPublic:     true,
		Severity:     models.SeverityLow,
		CreatedAt:    time.Now(),
	}

	if _, err := config.GetCollection("activities").InsertOne(ctx, activity); err != nil {
		log.Printf("Failed to record activity %s: %v", action, err)
	}
}

// Notify creates a notification for a user and pushes its id onto the
// user's notifications list. Best effort, same policy as RecordActivity.
func Notify(userID primitive.ObjectID, notifType models.NotificationType, title, content string, refID primitive.ObjectID, refType models.ReferenceType, priority models.NotificationPriority) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	notification := models.Notification{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		Type:          notifType,
		Title:         title,
		Content:       content,
		ReferenceID:   refID,
		ReferenceType: refType,
		Priority:      priority,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := config.GetCollection("notifications").InsertOne(ctx, notification); err != nil {
		log.Printf("Failed to create notification %s: %v", notifType, err)
		return
	}

	_, err := config.GetCollection("users").UpdateByID(ctx, userID, bson.M{
		"$push": bson.M{"notifications": notification.ID},
	})
	if err != nil {
		log.Printf("Failed to link notification to user: %v", err)
	}
}
