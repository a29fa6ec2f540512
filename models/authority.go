package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VerificationStatus enum for authority records
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// CanTransitionTo reports whether a verification-status transition is legal.
// PENDING may move to VERIFIED or REJECTED; both of those are terminal.
func (s VerificationStatus) CanTransitionTo(next VerificationStatus) bool {
	if s != VerificationPending {
		return false
	}
	return next == VerificationVerified || next == VerificationRejected
}

// ContactInfo holds an authority's reachable addresses
type ContactInfo struct {
	Email         string `bson:"email" json:"email" binding:"required,email"`
	Phone         string `bson:"phone" json:"phone" binding:"required"`
	OfficialEmail string `bson:"officialEmail,omitempty" json:"officialEmail,omitempty"`
	OfficeAddress string `bson:"officeAddress,omitempty" json:"officeAddress,omitempty"`
}

// Area is the jurisdiction descriptor for an authority
type Area struct {
	Type     string `bson:"type" json:"type" binding:"required"`
	Name     string `bson:"name" json:"name" binding:"required"`
	State    string `bson:"state" json:"state" binding:"required"`
	Country  string `bson:"country" json:"country" binding:"required"`
	Postcode string `bson:"postcode,omitempty" json:"postcode,omitempty"`
}

// Authority links a user to a civic-department role, one record per user.
type Authority struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID   `bson:"userId" json:"userId"`
	Department         *primitive.ObjectID  `bson:"department,omitempty" json:"department,omitempty"`
	Position           string               `bson:"position" json:"position"`
	VerificationStatus VerificationStatus   `bson:"verificationStatus" json:"verificationStatus"`
	ContactInfo        ContactInfo          `bson:"contactInfo" json:"contactInfo"`
	Expertise          []string             `bson:"expertise" json:"expertise"`
	Area               Area                 `bson:"area" json:"area"`
	PendingIssues      []primitive.ObjectID `bson:"pendingIssues" json:"pendingIssues"`
	ResolvedIssues     []primitive.ObjectID `bson:"resolvedIssues" json:"resolvedIssues"`
	AssignedIssues     []primitive.ObjectID `bson:"assignedIssues" json:"assignedIssues"`
	IsActive           bool                 `bson:"isActive" json:"isActive"`
	CreatedAt          time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// EnsureAuthorityIndex creates the unique index enforcing the one-to-one
// relation between a user and an authority record.
func EnsureAuthorityIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_authority_user"),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
