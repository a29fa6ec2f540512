package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reaction enum for comment like/dislike ledgers
type Reaction string

const (
	ReactionLike    Reaction = "LIKE"
	ReactionDislike Reaction = "DISLIKE"
)

// IsValidReaction reports whether s is LIKE or DISLIKE.
func IsValidReaction(s string) bool {
	return Reaction(s) == ReactionLike || Reaction(s) == ReactionDislike
}

// AsVoteType maps a reaction onto the direction recorded in the generalized
// votes collection.
func (r Reaction) AsVoteType() VoteType {
	if r == ReactionLike {
		return Upvote
	}
	return Downvote
}

// Comment is a threaded (one level) comment on a post. Deletion is a soft
// flag; the document stays so reply threads keep their shape.
type Comment struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PostID          primitive.ObjectID   `bson:"postId" json:"postId"`
	UserID          primitive.ObjectID   `bson:"userId" json:"userId"`
	Content         string               `bson:"content" json:"content"`
	ParentCommentID *primitive.ObjectID  `bson:"parentCommentId,omitempty" json:"parentCommentId,omitempty"`
	Replies         []primitive.ObjectID `bson:"replies" json:"replies"`
	Likes           int                  `bson:"likes" json:"likes"`
	Dislikes        int                  `bson:"dislikes" json:"dislikes"`
	LikedBy         []primitive.ObjectID `bson:"likedBy" json:"likedBy"`
	DislikedBy      []primitive.ObjectID `bson:"dislikedBy" json:"dislikedBy"`
	IsEdited        bool                 `bson:"isEdited" json:"isEdited"`
	EditedAt        *time.Time           `bson:"editedAt,omitempty" json:"editedAt,omitempty"`
	IsDeleted       bool                 `bson:"isDeleted" json:"isDeleted"`
	DeletedAt       *time.Time           `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	IsOfficial      bool                 `bson:"isOfficial" json:"isOfficial"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ReactionOutcome describes the effect of one user's reaction on the
// like/dislike ledgers.
type ReactionOutcome struct {
	LikeDelta    int
	DislikeDelta int
	Changed      bool
}

// ApplyReaction mirrors ApplyVote for the comment ledgers: repeating a
// reaction is a no-op, switching moves the user between the two lists.
func ApplyReaction(likedBy, dislikedBy []primitive.ObjectID, userID primitive.ObjectID, r Reaction) (newLiked, newDisliked []primitive.ObjectID, out ReactionOutcome) {
	inLiked := containsID(likedBy, userID)
	inDisliked := containsID(dislikedBy, userID)

	switch {
	case r == ReactionLike && inLiked, r == ReactionDislike && inDisliked:
		return likedBy, dislikedBy, ReactionOutcome{}
	case r == ReactionLike && inDisliked:
		return appendID(likedBy, userID), removeID(dislikedBy, userID),
			ReactionOutcome{LikeDelta: 1, DislikeDelta: -1, Changed: true}
	case r == ReactionDislike && inLiked:
		return removeID(likedBy, userID), appendID(dislikedBy, userID),
			ReactionOutcome{LikeDelta: -1, DislikeDelta: 1, Changed: true}
	case r == ReactionLike:
		return appendID(likedBy, userID), dislikedBy, ReactionOutcome{LikeDelta: 1, Changed: true}
	default:
		return likedBy, appendID(dislikedBy, userID), ReactionOutcome{DislikeDelta: 1, Changed: true}
	}
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func appendID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	return append(append([]primitive.ObjectID(nil), ids...), id)
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
