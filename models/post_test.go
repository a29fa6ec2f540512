package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestApplyVoteFirstVote(t *testing.T) {
	user := primitive.NewObjectID()

	ledger, out := ApplyVote(nil, user, Upvote)

	assert.True(t, out.Changed)
	assert.Equal(t, 1, out.UpDelta)
	assert.Equal(t, 0, out.DownDelta)
	assert.Len(t, ledger, 1)
	assert.Equal(t, Upvote, ledger[0].VoteType)
}

func TestApplyVoteSameDirectionIsNoOp(t *testing.T) {
	user := primitive.NewObjectID()
	ledger := []VotedUser{{UserID: user, VoteType: Downvote}}

	next, out := ApplyVote(ledger, user, Downvote)

	assert.False(t, out.Changed)
	assert.Equal(t, 0, out.UpDelta)
	assert.Equal(t, 0, out.DownDelta)
	assert.Equal(t, ledger, next)
}

func TestApplyVoteFlipMovesOneCount(t *testing.T) {
	user := primitive.NewObjectID()
	ledger := []VotedUser{{UserID: user, VoteType: Downvote}}

	next, out := ApplyVote(ledger, user, Upvote)

	assert.True(t, out.Changed)
	assert.Equal(t, 1, out.UpDelta)
	assert.Equal(t, -1, out.DownDelta)
	assert.Len(t, next, 1)
	assert.Equal(t, Upvote, next[0].VoteType)
	// flip never changes the total vote count
	assert.Equal(t, 0, out.UpDelta+out.DownDelta)
}

func TestApplyVoteKeepsOneEntryPerUser(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	ledger, _ := ApplyVote(nil, a, Upvote)
	ledger, _ = ApplyVote(ledger, b, Downvote)
	ledger, _ = ApplyVote(ledger, a, Downvote)
	ledger, _ = ApplyVote(ledger, a, Downvote)

	assert.Len(t, ledger, 2)

	seen := map[primitive.ObjectID]int{}
	for _, entry := range ledger {
		seen[entry.UserID]++
	}
	assert.Equal(t, 1, seen[a])
	assert.Equal(t, 1, seen[b])
}

func TestTallyLedgerMatchesDeltas(t *testing.T) {
	users := []primitive.ObjectID{
		primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(),
	}

	var ledger []VotedUser
	up, down := 0, 0
	apply := func(u primitive.ObjectID, v VoteType) {
		var out VoteOutcome
		ledger, out = ApplyVote(ledger, u, v)
		up += out.UpDelta
		down += out.DownDelta
	}

	apply(users[0], Upvote)
	apply(users[1], Downvote)
	apply(users[2], Upvote)
	apply(users[0], Downvote)
	apply(users[1], Downvote)

	gotUp, gotDown := TallyLedger(ledger)
	assert.Equal(t, up, gotUp)
	assert.Equal(t, down, gotDown)
	assert.Equal(t, 1, gotUp)
	assert.Equal(t, 2, gotDown)
}

func TestVoteTypeOpposite(t *testing.T) {
	assert.Equal(t, Downvote, Upvote.Opposite())
	assert.Equal(t, Upvote, Downvote.Opposite())
}

func TestIsValidPostStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "REVIEWING", "IN_PROGRESS", "RESOLVED", "REJECTED"} {
		assert.True(t, IsValidPostStatus(s), s)
	}
	assert.False(t, IsValidPostStatus("resolved"))
	assert.False(t, IsValidPostStatus(""))
	assert.False(t, IsValidPostStatus("CLOSED"))
}
