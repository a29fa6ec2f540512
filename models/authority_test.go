package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerificationStatusTransitions(t *testing.T) {
	assert.True(t, VerificationPending.CanTransitionTo(VerificationVerified))
	assert.True(t, VerificationPending.CanTransitionTo(VerificationRejected))

	// decided states are terminal
	assert.False(t, VerificationVerified.CanTransitionTo(VerificationRejected))
	assert.False(t, VerificationVerified.CanTransitionTo(VerificationPending))
	assert.False(t, VerificationRejected.CanTransitionTo(VerificationVerified))

	// no self or backward moves
	assert.False(t, VerificationPending.CanTransitionTo(VerificationPending))
}
