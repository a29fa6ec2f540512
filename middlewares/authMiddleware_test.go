package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"externalId": c.GetString(CtxExternalID),
			"role":       c.GetString(CtxRole),
			"email":      c.GetString(CtxEmail),
		})
	})
	return r
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := authTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No authorization token provided")
}

func TestAuthMiddlewareRejectsBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := authTestRouter()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user_1"})
	signed, err := token.SignedString([]byte("wrong-secret"))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization token")
}

func TestAuthMiddlewareRejectsTokenWithoutSubject(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := authTestRouter()

	signed := signToken(t, jwt.MapClaims{"email": "ram@example.com"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareSetsClaimsFromHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := authTestRouter()

	signed := signToken(t, jwt.MapClaims{
		"sub":   "user_abc123",
		"role":  "user",
		"email": "ram@example.com",
		"name":  "Ram Kumar",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user_abc123")
	assert.Contains(t, w.Body.String(), "ram@example.com")
}

func TestAuthMiddlewareReadsCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := authTestRouter()

	signed := signToken(t, jwt.MapClaims{"sub": "user_cookie"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: signed})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user_cookie")
}
