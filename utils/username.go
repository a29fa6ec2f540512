package authUtils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUsername derives a username candidate from a display name: the
// slugged name plus a short random suffix so first-login collisions are
// rare. The result always satisfies the username format rules.
func GenerateUsername(displayName string) string {
	slug := slugify(displayName)
	if slug == "" {
		slug = "citizen"
	}
	if len(slug) > 20 {
		slug = slug[:20]
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return slug + "_" + suffix
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '.', r == '_':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
