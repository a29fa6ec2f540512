package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VoteTargetType is the discriminant for what a generalized vote points at.
type VoteTargetType string

const (
	VoteTargetPost       VoteTargetType = "POST"
	VoteTargetComment    VoteTargetType = "COMMENT"
	VoteTargetResolution VoteTargetType = "RESOLUTION"
)

// Vote is the generalized vote record mirrored from the embedded post and
// comment ledgers. Uniqueness is enforced per (user, target, type).
type Vote struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	TargetID   primitive.ObjectID `bson:"targetId" json:"targetId"`
	TargetType VoteTargetType     `bson:"targetType" json:"targetType"`
	VoteType   VoteType           `bson:"voteType" json:"voteType"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EnsureVoteIndex creates a unique compound index for (user, target, type)
func EnsureVoteIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "targetId", Value: 1},
			{Key: "targetType", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
