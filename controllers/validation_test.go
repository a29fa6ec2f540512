package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"civiclens-be/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// These cover the validation that runs before any database access, so the
// handlers can be exercised without a live store.

func TestVoteOnPostRejectsBadInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/post/:id/vote", VoteOnPost)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/post/not-an-id/vote", strings.NewReader(`{"voteType":"UPVOTE"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid post ID")

	w = postJSON(r, "/post/64a000000000000000000000/vote", `{"voteType":"SIDEWAYS"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid vote type")
}

func TestUpdateUserRoleRejectsBadInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PATCH("/users/:id", UpdateUserRole)

	patch := func(path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	w := patch("/users/nope", `{"role":"authority"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid user ID")

	// "citizen" is not a role
	w = patch("/users/64a000000000000000000000", `{"role":"citizen"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid role provided")
}

func TestDeleteImageRequiresFileID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/imagekit-delete", DeleteImage)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/imagekit-delete", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "fileId is required")
}

func TestUpdatePostStatusRejectsUnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PATCH("/post/:id/status", UpdatePostStatus)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/post/64a000000000000000000000/status", strings.NewReader(`{"status":"resolved"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid status")
}

func TestUpdateProfileBioCapCountsRunes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/user/update", UpdateProfile)

	put := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/user/update", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	// 501 runes is over the cap
	over := strings.Repeat("न", 501)
	w := put(`{"fullName":"Ram Kumar","username":"ram_kumar","bio":"` + over + `"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Bio must be at most 500 characters")

	// 500 multibyte runes (1500 bytes) passes the bio check; the handler
	// then stops at the missing session instead
	exact := strings.Repeat("न", 500)
	w = put(`{"fullName":"Ram Kumar","username":"ram_kumar","bio":"` + exact + `"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEmptyPostListSerializesAsArray(t *testing.T) {
	// list handlers decode into non-nil slices for this reason
	data, err := json.Marshal([]models.Post{})
	assert.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	var nilPosts []models.Post
	data, err = json.Marshal(nilPosts)
	assert.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestConfirmResolutionValidatesRating(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PATCH("/post/:id/resolution/confirm", ConfirmResolution)

	for _, body := range []string{`{"citizenRating":0}`, `{"citizenRating":6}`, `{}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/post/64a000000000000000000000/resolution/confirm", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), "Rating must be between 1 and 5")
	}
}
