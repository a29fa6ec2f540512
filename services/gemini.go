package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const geminiModel = "gemini-2.0-flash"

var geminiClient = &http.Client{Timeout: 15 * time.Second}

// geminiEndpoint is overridable so tests can point at a local server.
var geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/" + geminiModel + ":generateContent"

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateTags asks the language model for civic-issue tags for a post
// caption and normalizes its comma-separated answer.
func GenerateTags(ctx context.Context, title, description string) ([]string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	caption := strings.TrimSpace(title + " " + description)
	prompt := fmt.Sprintf(`Analyze the following civic issue description and generate relevant tags for it.

Description: %q

Requirements:
- Generate between 2 and 3 tags
- Tags should be specific and relevant to civic issues
- Focus on the problem type, location context, and urgency
- Use short, descriptive phrases (2-4 words max per tag)
- Return only the tags as a comma-separated list
- No additional text or formatting

Examples:
- "road repair, potholes, village roads"
- "street lighting, safety, maintenance"
- "garbage collection, sanitation, community"

Generate tags for the given description:`, caption)

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiEndpoint+"?key="+apiKey, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := geminiClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	return ParseTagList(decoded.Candidates[0].Content.Parts[0].Text), nil
}

// fallbackTags pad the model's answer up to the two-tag minimum.
var fallbackTags = [2]string{"civic issue", "community"}

// ParseTagList turns the model's comma-separated answer into a clean tag
// slice: trimmed, quote-stripped, empty entries dropped, at most 10 tags,
// padded to at least 2 with the fallback pair.
func ParseTagList(raw string) []string {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.Trim(strings.TrimSpace(p), `'"`)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == 10 {
			break
		}
	}

	for i := 0; len(tags) < 2; i++ {
		tags = append(tags, fallbackTags[i])
	}
	return tags
}
