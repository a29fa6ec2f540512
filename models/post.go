package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostStatus enum
type PostStatus string

const (
	PostPending    PostStatus = "PENDING"
	PostReviewing  PostStatus = "REVIEWING"
	PostInProgress PostStatus = "IN_PROGRESS"
	PostResolved   PostStatus = "RESOLVED"
	PostRejected   PostStatus = "REJECTED"
)

// IsValidPostStatus reports whether s is a member of the status enum.
func IsValidPostStatus(s string) bool {
	switch PostStatus(s) {
	case PostPending, PostReviewing, PostInProgress, PostResolved, PostRejected:
		return true
	}
	return false
}

// Visibility enum
type Visibility string

const (
	VisibilityPublic     Visibility = "PUBLIC"
	VisibilityPrivate    Visibility = "PRIVATE"
	VisibilityRestricted Visibility = "RESTRICTED"
)

// IsValidVisibility reports whether s is a member of the visibility enum.
func IsValidVisibility(s string) bool {
	switch Visibility(s) {
	case VisibilityPublic, VisibilityPrivate, VisibilityRestricted:
		return true
	}
	return false
}

// VoteType enum
type VoteType string

const (
	Upvote   VoteType = "UPVOTE"
	Downvote VoteType = "DOWNVOTE"
)

// IsValidVoteType reports whether s is a member of the vote enum.
func IsValidVoteType(s string) bool {
	return VoteType(s) == Upvote || VoteType(s) == Downvote
}

// Opposite returns the other vote direction.
func (v VoteType) Opposite() VoteType {
	if v == Upvote {
		return Downvote
	}
	return Upvote
}

// PostImage is an embedded url + CDN file id pair
type PostImage struct {
	URL    string `bson:"url" json:"url" binding:"required"`
	FileID string `bson:"fileId" json:"fileId" binding:"required"`
}

// PostLocation is the structured location attached to every post
type PostLocation struct {
	City     string `bson:"city" json:"city" binding:"required"`
	Locality string `bson:"locality" json:"locality" binding:"required"`
	State    string `bson:"state" json:"state" binding:"required"`
	Country  string `bson:"country" json:"country" binding:"required"`
	Postcode string `bson:"postcode" json:"postcode" binding:"required"`
}

// VotedUser is one entry of the per-post vote ledger. The ledger holds at
// most one entry per user and the counters always equal its tally.
type VotedUser struct {
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	VoteType VoteType           `bson:"voteType" json:"voteType"`
}

// Post represents a citizen-submitted civic issue
type Post struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Owner               primitive.ObjectID   `bson:"owner" json:"owner"`
	Title               string               `bson:"title" json:"title"`
	Description         string               `bson:"description" json:"description"`
	Images              []PostImage          `bson:"images" json:"images"`
	Tags                []string             `bson:"tags" json:"tags"`
	Keywords            []string             `bson:"keywords" json:"keywords"`
	Location            PostLocation         `bson:"location" json:"location"`
	Category            *primitive.ObjectID  `bson:"category,omitempty" json:"category,omitempty"`
	Department          *primitive.ObjectID  `bson:"department,omitempty" json:"department,omitempty"`
	Status              PostStatus           `bson:"status" json:"status"`
	Visibility          Visibility           `bson:"visibility" json:"visibility"`
	IsEdited            bool                 `bson:"isEdited" json:"isEdited"`
	Upvotes             int                  `bson:"upvotes" json:"upvotes"`
	Downvotes           int                  `bson:"downvotes" json:"downvotes"`
	VotedUsers          []VotedUser          `bson:"votedUsers" json:"votedUsers"`
	AssignedAuthorities []primitive.ObjectID `bson:"assignedAuthorities" json:"assignedAuthorities"`
	Comments            []primitive.ObjectID `bson:"comments" json:"comments"`
	ResolutionDetails   *primitive.ObjectID  `bson:"resolutionDetails,omitempty" json:"resolutionDetails,omitempty"`
	AIAnalysis          *primitive.ObjectID  `bson:"aiAnalysis,omitempty" json:"aiAnalysis,omitempty"`
	UrgencyScore        int                  `bson:"urgencyScore" json:"urgencyScore"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// DefaultUrgency applies to a post until analysis scores it.
const DefaultUrgency = 5

// VoteOutcome describes the effect of applying a vote to a ledger.
type VoteOutcome struct {
	UpDelta   int
	DownDelta int
	Changed   bool
}

// ApplyVote returns the ledger after one user's vote and the counter deltas
// it implies. Repeating the same direction is a no-op; a changed direction
// replaces the existing entry and moves exactly one count between the two
// counters. The returned ledger still holds at most one entry per user.
func ApplyVote(ledger []VotedUser, userID primitive.ObjectID, vote VoteType) ([]VotedUser, VoteOutcome) {
	for i, entry := range ledger {
		if entry.UserID != userID {
			continue
		}
		if entry.VoteType == vote {
			return ledger, VoteOutcome{}
		}
		next := make([]VotedUser, len(ledger))
		copy(next, ledger)
		next[i].VoteType = vote
		out := VoteOutcome{Changed: true}
		if vote == Upvote {
			out.UpDelta, out.DownDelta = 1, -1
		} else {
			out.UpDelta, out.DownDelta = -1, 1
		}
		return next, out
	}

	next := append(append([]VotedUser(nil), ledger...), VotedUser{UserID: userID, VoteType: vote})
	out := VoteOutcome{Changed: true}
	if vote == Upvote {
		out.UpDelta = 1
	} else {
		out.DownDelta = 1
	}
	return next, out
}

// TallyLedger counts the ledger entries per direction.
func TallyLedger(ledger []VotedUser) (upvotes, downvotes int) {
	for _, entry := range ledger {
		if entry.VoteType == Upvote {
			upvotes++
		} else {
			downvotes++
		}
	}
	return upvotes, downvotes
}
