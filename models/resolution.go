package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResolutionStatus enum for the verification of a resolution record
type ResolutionStatus string

const (
	ResolutionPending  ResolutionStatus = "PENDING"
	ResolutionVerified ResolutionStatus = "VERIFIED"
	ResolutionDisputed ResolutionStatus = "DISPUTED"
)

// ResolutionImage is a resolution photo with an optional caption
type ResolutionImage struct {
	URL     string `bson:"url" json:"url" binding:"required"`
	FileID  string `bson:"fileId" json:"fileId" binding:"required"`
	Caption string `bson:"caption,omitempty" json:"caption,omitempty"`
}

// WorkDetails is the work-order metadata attached to a resolution
type WorkDetails struct {
	StartDate       *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate         *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	WorkersInvolved int        `bson:"workersInvolved,omitempty" json:"workersInvolved,omitempty"`
	EstimatedCost   float64    `bson:"estimatedCost,omitempty" json:"estimatedCost,omitempty"`
	ActualCost      float64    `bson:"actualCost,omitempty" json:"actualCost,omitempty"`
	Materials       []string   `bson:"materials,omitempty" json:"materials,omitempty"`
}

// ResolutionDetails is the one-to-one satellite record attached to a post
// once an authority resolves it.
type ResolutionDetails struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID                primitive.ObjectID `bson:"postId" json:"postId"`
	ResolvedByUserID      primitive.ObjectID `bson:"resolvedByUserId" json:"resolvedByUserId"`
	ResolutionDescription string             `bson:"resolutionDescription" json:"resolutionDescription"`
	ResolutionImages      []ResolutionImage  `bson:"resolutionImages" json:"resolutionImages"`
	ResolutionDate        time.Time          `bson:"resolutionDate" json:"resolutionDate"`
	CitizenConfirmed      bool               `bson:"citizenConfirmed" json:"citizenConfirmed"`
	CitizenFeedback       string             `bson:"citizenFeedback,omitempty" json:"citizenFeedback,omitempty"`
	CitizenRating         int                `bson:"citizenRating,omitempty" json:"citizenRating,omitempty"`
	WorkDetails           WorkDetails        `bson:"workDetails,omitempty" json:"workDetails,omitempty"`
	VerificationStatus    ResolutionStatus   `bson:"verificationStatus" json:"verificationStatus"`
	QualityScore          int                `bson:"qualityScore" json:"qualityScore"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EnsureResolutionIndex enforces at most one resolution record per post.
func EnsureResolutionIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "postId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_resolution_post"),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
