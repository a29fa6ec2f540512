package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationType enum
type NotificationType string

const (
	NotifyNewAssignment      NotificationType = "NEW_ASSIGNMENT"
	NotifyStatusUpdate       NotificationType = "STATUS_UPDATE"
	NotifyComment            NotificationType = "COMMENT"
	NotifyResolutionRequest  NotificationType = "RESOLUTION_REQUEST"
	NotifySystem             NotificationType = "SYSTEM"
	NotifyPostUpvote         NotificationType = "POST_UPVOTE"
	NotifyPostComment        NotificationType = "POST_COMMENT"
	NotifyVerificationUpdate NotificationType = "VERIFICATION_UPDATE"
	NotifyAuthorityResponse  NotificationType = "AUTHORITY_RESPONSE"
)

// ReferenceType is the discriminant for the polymorphic reference carried by
// notifications and activities.
type ReferenceType string

const (
	RefPost       ReferenceType = "POST"
	RefComment    ReferenceType = "COMMENT"
	RefUser       ReferenceType = "USER"
	RefAuthority  ReferenceType = "AUTHORITY"
	RefResolution ReferenceType = "RESOLUTION"
)

// NotificationPriority enum
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "LOW"
	PriorityMedium NotificationPriority = "MEDIUM"
	PriorityHigh   NotificationPriority = "HIGH"
	PriorityUrgent NotificationPriority = "URGENT"
)

// Notification is addressed to one user and points at one resource.
type Notification struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID   `bson:"userId" json:"userId"`
	Type          NotificationType     `bson:"type" json:"type"`
	Title         string               `bson:"title" json:"title"`
	Content       string               `bson:"content" json:"content"`
	ReferenceID   primitive.ObjectID   `bson:"referenceId" json:"referenceId"`
	ReferenceType ReferenceType        `bson:"referenceType" json:"referenceType"`
	IsRead        bool                 `bson:"isRead" json:"isRead"`
	ReadAt        *time.Time           `bson:"readAt,omitempty" json:"readAt,omitempty"`
	Priority      NotificationPriority `bson:"priority" json:"priority"`
	ExpiresAt     *time.Time           `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	IsArchived    bool                 `bson:"isArchived" json:"isArchived"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// EnsureNotificationIndexes creates the inbox query index and the TTL index
// that expires notifications at their expiresAt timestamp.
func EnsureNotificationIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isRead", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
