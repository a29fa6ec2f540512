package authUtils

import (
	"fmt"
	"os"

	"github.com/dgrijalva/jwt-go"
)

// SessionClaims are the fields this service reads out of the identity
// provider's session token. The provider signs the token; we only verify and
// read claims. Subject is the provider's opaque user id.
type SessionClaims struct {
	ExternalID string
	Role       string
	Email      string
	FullName   string
	PictureURL string
}

// ParseSessionToken verifies an HS256 session token and extracts the claims
// this service cares about. Tokens with a different signing method or a bad
// signature are rejected.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	secretStr := os.Getenv("JWT_SECRET")
	if secretStr == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretStr), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token is missing a subject")
	}

	sc := &SessionClaims{ExternalID: sub}
	sc.Role, _ = claims["role"].(string)
	sc.Email, _ = claims["email"].(string)
	sc.FullName, _ = claims["name"].(string)
	sc.PictureURL, _ = claims["picture"].(string)

	return sc, nil
}
