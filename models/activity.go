package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActionType enum for the audit log
type ActionType string

const (
	ActionPostCreated         ActionType = "POST_CREATED"
	ActionCommentAdded        ActionType = "COMMENT_ADDED"
	ActionIssueResolved       ActionType = "ISSUE_RESOLVED"
	ActionStatusChanged       ActionType = "STATUS_CHANGED"
	ActionAuthAssigned        ActionType = "AUTH_ASSIGNED"
	ActionUpvoted             ActionType = "UPVOTED"
	ActionDownvoted           ActionType = "DOWNVOTED"
	ActionProfileUpdated      ActionType = "PROFILE_UPDATED"
	ActionAuthorityVerified   ActionType = "AUTHORITY_VERIFIED"
	ActionResolutionConfirmed ActionType = "RESOLUTION_CONFIRMED"
)

// ActivitySeverity enum
type ActivitySeverity string

const (
	SeverityLow    ActivitySeverity = "LOW"
	SeverityMedium ActivitySeverity = "MEDIUM"
	SeverityHigh   ActivitySeverity = "HIGH"
)

// Activity is an append-only audit record. Nothing updates these documents;
// the TTL index drops them after the retention window.
type Activity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	ActionType   ActionType         `bson:"actionType" json:"actionType"`
	ResourceID   primitive.ObjectID `bson:"resourceId" json:"resourceId"`
	ResourceType ReferenceType      `bson:"resourceType" json:"resourceType"`
	Description  string             `bson:"description" json:"description"`
	Metadata     bson.M             `bson:"metadata" json:"metadata"`
	IsPublic     bool               `bson:"isPublic" json:"isPublic"`
	Severity     ActivitySeverity   `bson:"severity" json:"severity"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// activityRetention is one year, matching the audit retention window.
const activityRetention = 365 * 24 * time.Hour

// EnsureActivityIndexes creates the query indexes and the retention TTL.
func EnsureActivityIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "resourceId", Value: 1}, {Key: "resourceType", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(activityRetention / time.Second)),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
