package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGetTagsRequiresTitleOrDescription(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/get-tags", GetTags)

	for _, body := range []string{
		`{}`,
		`{"title":"","description":""}`,
		`{"title":"   ","description":"  "}`,
	} {
		w := postJSON(r, "/get-tags", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), "Title or description is required")
	}
}

func TestGetTagsFailsWithoutAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/get-tags", GetTags)

	w := postJSON(r, "/get-tags", `{"title":"Pothole","description":"Deep pothole on main road"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate tags")
}
