package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTagList(t *testing.T) {
	tags := ParseTagList("road repair, potholes, village roads")
	assert.Equal(t, []string{"road repair", "potholes", "village roads"}, tags)
}

func TestParseTagListStripsQuotesAndEmpties(t *testing.T) {
	tags := ParseTagList(` "street lighting" , , 'safety' , `)
	assert.Equal(t, []string{"street lighting", "safety"}, tags)
}

func TestParseTagListPadsToMinimum(t *testing.T) {
	assert.Equal(t, []string{"potholes", "civic issue"}, ParseTagList("potholes"))
	assert.Equal(t, []string{"civic issue", "community"}, ParseTagList(""))
	assert.Equal(t, []string{"civic issue", "community"}, ParseTagList(" , , "))
}

func TestParseTagListCapsAtTen(t *testing.T) {
	tags := ParseTagList("a1,a2,a3,a4,a5,a6,a7,a8,a9,a10,a11,a12")
	assert.Len(t, tags, 10)
	assert.Equal(t, "a10", tags[9])
}

func TestGenerateTagsRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := GenerateTags(context.Background(), "Pothole", "Large pothole on main road")
	assert.Error(t, err)
}

func TestGenerateTagsParsesModelAnswer(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"road repair, potholes"}]}}]}`))
	}))
	defer server.Close()

	prev := geminiEndpoint
	geminiEndpoint = server.URL
	defer func() { geminiEndpoint = prev }()

	tags, err := GenerateTags(context.Background(), "Pothole", "Large pothole on main road")
	assert.NoError(t, err)
	assert.Equal(t, []string{"road repair", "potholes"}, tags)
}

func TestGenerateTagsErrorsOnBadStatus(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	prev := geminiEndpoint
	geminiEndpoint = server.URL
	defer func() { geminiEndpoint = prev }()

	_, err := GenerateTags(context.Background(), "Pothole", "Large pothole")
	assert.Error(t, err)
}
