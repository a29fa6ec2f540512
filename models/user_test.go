package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "ram_kumar", NormalizeUsername("  Ram_Kumar "))
	assert.Equal(t, "abc123", NormalizeUsername("ABC123"))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("ram_kumar_42"))
	assert.NoError(t, ValidateUsername("  abc  "))

	assert.Equal(t, ErrUsernameTooShort, ValidateUsername("ab"))
	assert.Equal(t, ErrUsernameInvalid, ValidateUsername("ram kumar"))
	assert.Equal(t, ErrUsernameInvalid, ValidateUsername("ram-kumar"))
	assert.Equal(t, ErrUsernameInvalid, ValidateUsername(""))
	assert.Equal(t, ErrUsernameInvalid, ValidateUsername("राम"))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("user"))
	assert.True(t, IsValidRole("authority"))
	assert.True(t, IsValidRole("masteradmin"))

	assert.False(t, IsValidRole("citizen"))
	assert.False(t, IsValidRole("admin"))
	assert.False(t, IsValidRole("User"))
	assert.False(t, IsValidRole(""))
}

func TestProfileDerivedCounts(t *testing.T) {
	u := User{
		FullName:      "Test User",
		Posts:         []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()},
		ResolvedPosts: []primitive.ObjectID{primitive.NewObjectID()},
		Comments:      []primitive.ObjectID{},
	}

	p := u.Profile()
	assert.Equal(t, 2, p.PostCount)
	assert.Equal(t, 1, p.ResolvedPostCount)
	assert.Equal(t, 0, p.CommentCount)
	assert.Equal(t, 0, p.NotificationCount)
	assert.Equal(t, "Test User", p.FullName)
}
