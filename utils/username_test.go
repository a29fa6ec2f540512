package authUtils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var usernameShape = regexp.MustCompile(`^[a-z0-9_]+_[0-9a-f]{6}$`)

func TestGenerateUsernameShape(t *testing.T) {
	got := GenerateUsername("Ram Kumar")

	assert.True(t, strings.HasPrefix(got, "ram_kumar_"), got)
	assert.Regexp(t, usernameShape, got)
}

func TestGenerateUsernameFallsBackForEmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "!!!", "राम"} {
		got := GenerateUsername(name)
		assert.True(t, strings.HasPrefix(got, "citizen_"), got)
	}
}

func TestGenerateUsernameCapsSlugLength(t *testing.T) {
	got := GenerateUsername(strings.Repeat("a", 50))

	slug := strings.TrimSuffix(got, got[len(got)-7:])
	assert.LessOrEqual(t, len(slug), 20)
}

func TestGenerateUsernameIsRandomized(t *testing.T) {
	a := GenerateUsername("Ram Kumar")
	b := GenerateUsername("Ram Kumar")
	assert.NotEqual(t, a, b)
}
