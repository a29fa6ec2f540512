package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestApplyReactionFirstLike(t *testing.T) {
	user := primitive.NewObjectID()

	liked, disliked, out := ApplyReaction(nil, nil, user, ReactionLike)

	assert.True(t, out.Changed)
	assert.Equal(t, 1, out.LikeDelta)
	assert.Equal(t, 0, out.DislikeDelta)
	assert.Contains(t, liked, user)
	assert.Empty(t, disliked)
}

func TestApplyReactionRepeatIsNoOp(t *testing.T) {
	user := primitive.NewObjectID()
	liked := []primitive.ObjectID{user}

	newLiked, newDisliked, out := ApplyReaction(liked, nil, user, ReactionLike)

	assert.False(t, out.Changed)
	assert.Equal(t, liked, newLiked)
	assert.Empty(t, newDisliked)
}

func TestApplyReactionSwitchMovesUser(t *testing.T) {
	user := primitive.NewObjectID()
	other := primitive.NewObjectID()
	liked := []primitive.ObjectID{user, other}

	newLiked, newDisliked, out := ApplyReaction(liked, nil, user, ReactionDislike)

	assert.True(t, out.Changed)
	assert.Equal(t, -1, out.LikeDelta)
	assert.Equal(t, 1, out.DislikeDelta)
	assert.NotContains(t, newLiked, user)
	assert.Contains(t, newLiked, other)
	assert.Contains(t, newDisliked, user)
}

func TestApplyReactionUserNeverInBothLedgers(t *testing.T) {
	user := primitive.NewObjectID()

	liked, disliked, _ := ApplyReaction(nil, nil, user, ReactionLike)
	liked, disliked, _ = ApplyReaction(liked, disliked, user, ReactionDislike)
	liked, disliked, _ = ApplyReaction(liked, disliked, user, ReactionLike)

	assert.Contains(t, liked, user)
	assert.NotContains(t, disliked, user)
}

func TestReactionAsVoteType(t *testing.T) {
	assert.Equal(t, Upvote, ReactionLike.AsVoteType())
	assert.Equal(t, Downvote, ReactionDislike.AsVoteType())
}

func TestIsValidReaction(t *testing.T) {
	assert.True(t, IsValidReaction("LIKE"))
	assert.True(t, IsValidReaction("DISLIKE"))
	assert.False(t, IsValidReaction("like"))
	assert.False(t, IsValidReaction(""))
}
