package models

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Role enum
type Role string

const (
	RoleUser        Role = "user"
	RoleAuthority   Role = "authority"
	RoleMasterAdmin Role = "masteradmin"
)

// IsValidRole reports whether s is one of the three allowed roles.
func IsValidRole(s string) bool {
	switch Role(s) {
	case RoleUser, RoleAuthority, RoleMasterAdmin:
		return true
	}
	return false
}

// User is the local profile synced from the external identity provider.
type User struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ExternalID        string               `bson:"externalId" json:"externalId"`
	Email             string               `bson:"email" json:"email"`
	FullName          string               `bson:"fullName" json:"fullName"`
	Bio               string               `bson:"bio" json:"bio"`
	Username          string               `bson:"username" json:"username"`
	IsPrivateProfile  bool                 `bson:"isPrivateProfile" json:"isPrivateProfile"`
	Location          string               `bson:"location,omitempty" json:"location,omitempty"`
	ProfilePictureURL string               `bson:"profilePictureUrl,omitempty" json:"profilePictureUrl,omitempty"`
	ProfilePictureID  string               `bson:"profilePictureId,omitempty" json:"profilePictureId,omitempty"`
	Role              Role                 `bson:"role" json:"role"`
	Posts             []primitive.ObjectID `bson:"posts" json:"posts"`
	ResolvedPosts     []primitive.ObjectID `bson:"resolvedPosts" json:"resolvedPosts"`
	Comments          []primitive.ObjectID `bson:"comments" json:"comments"`
	Notifications     []primitive.ObjectID `bson:"notifications" json:"notifications"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// UserProfile is the normalized projection returned to clients, with the
// derived counts taken from the length of the reference lists.
type UserProfile struct {
	ID                primitive.ObjectID `json:"id"`
	ExternalID        string             `json:"externalId"`
	Email             string             `json:"email"`
	FullName          string             `json:"fullName"`
	Bio               string             `json:"bio"`
	Username          string             `json:"username"`
	IsPrivateProfile  bool               `json:"isPrivateProfile"`
	Location          string             `json:"location,omitempty"`
	ProfilePictureURL string             `json:"profilePictureUrl,omitempty"`
	Role              Role               `json:"role"`
	PostCount         int                `json:"postCount"`
	ResolvedPostCount int                `json:"resolvedPostCount"`
	CommentCount      int                `json:"commentCount"`
	NotificationCount int                `json:"notificationCount"`
}

// Profile builds the client projection for a user.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:                u.ID,
		ExternalID:        u.ExternalID,
		Email:             u.Email,
		FullName:          u.FullName,
		Bio:               u.Bio,
		Username:          u.Username,
		IsPrivateProfile:  u.IsPrivateProfile,
		Location:          u.Location,
		ProfilePictureURL: u.ProfilePictureURL,
		Role:              u.Role,
		PostCount:         len(u.Posts),
		ResolvedPostCount: len(u.ResolvedPosts),
		CommentCount:      len(u.Comments),
		NotificationCount: len(u.Notifications),
	}
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Username validation errors
var (
	ErrUsernameTooShort = errors.New("username must be at least 3 characters long")
	ErrUsernameInvalid  = errors.New("username can only contain letters, numbers, and underscores")
)

// NormalizeUsername returns the stored form of a username: trimmed and lowercase.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidateUsername checks the raw (pre-normalization) username format.
func ValidateUsername(s string) error {
	s = strings.TrimSpace(s)
	if !usernamePattern.MatchString(s) {
		return ErrUsernameInvalid
	}
	if len(s) < 3 {
		return ErrUsernameTooShort
	}
	return nil
}

// Index names referenced when mapping duplicate-key errors back to a cause.
const (
	UserExternalIDIndex  = "uniq_external_id"
	UserUsernameIndex    = "uniq_username"
	UserMasterAdminIndex = "uniq_masteradmin"
)

// EnsureUserIndexes creates the uniqueness indexes for the users collection.
// The partial index on role admits at most one document with role
// "masteradmin", which makes the single-master-admin invariant atomic at the
// store rather than a read-check-write in each handler.
func EnsureUserIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "externalId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(UserExternalIDIndex),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(UserUsernameIndex),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName(UserMasterAdminIndex).
				SetPartialFilterExpression(bson.M{"role": RoleMasterAdmin}),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// ErrMasterAdminExists is returned when a masteradmin assignment loses to an
// existing masteradmin document.
var ErrMasterAdminExists = errors.New("a master admin already exists")

// AssignRole is the single entry point for writing a user's role field. Both
// the identity-sync path and the admin role-update path go through it.
// Masteradmin assignment is guarded by the partial unique index; the
// duplicate-key error from a concurrent or existing masteradmin surfaces as
// ErrMasterAdminExists and the document is left unchanged.
func AssignRole(ctx context.Context, collection *mongo.Collection, userID primitive.ObjectID, role Role) (*User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now()}}

	var updated User
	err := collection.FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, opts).Decode(&updated)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrMasterAdminExists
		}
		return nil, err
	}
	return &updated, nil
}
