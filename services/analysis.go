package services

import (
	"strings"

	"civiclens-be/models"
)

// RouteCategory picks the active category whose detection keywords best
// match the post text. Ties break toward the higher-priority category.
// Returns nil when nothing matches.
func RouteCategory(text string, categories []models.Category) (*models.Category, []string) {
	lowered := strings.ToLower(text)

	var best *models.Category
	var bestMatched []string
	for i := range categories {
		cat := &categories[i]
		if !cat.IsActive {
			continue
		}

		var matched []string
		for _, kw := range append(append([]string(nil), cat.AIDetectionKeywords...), cat.Keywords...) {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" && strings.Contains(lowered, kw) {
				matched = append(matched, kw)
			}
		}
		if len(matched) == 0 {
			continue
		}

		if best == nil ||
			len(matched) > len(bestMatched) ||
			(len(matched) == len(bestMatched) && cat.Priority > best.Priority) {
			best = cat
			bestMatched = matched
		}
	}
	return best, bestMatched
}

var urgencyKeywords = map[string]int{
	"danger":    3,
	"dangerous": 3,
	"emergency": 3,
	"urgent":    2,
	"accident":  2,
	"injured":   2,
	"flood":     2,
	"fire":      3,
	"collapse":  3,
	"sewage":    1,
	"overflow":  1,
	"broken":    1,
	"leaking":   1,
}

// ScoreUrgency estimates 1-10 urgency from keyword hits, anchored at the
// default score so an unremarkable description stays at 5.
func ScoreUrgency(text string) int {
	score := models.DefaultUrgency
	lowered := strings.ToLower(text)
	for kw, weight := range urgencyKeywords {
		if strings.Contains(lowered, kw) {
			score += weight
		}
	}
	if score > 10 {
		score = 10
	}
	return score
}

var negativeWords = []string{"terrible", "awful", "horrible", "disgusting", "worst", "unbearable", "dangerous", "broken", "filthy"}
var positiveWords = []string{"thanks", "appreciate", "good", "great", "resolved", "improved"}

// ScoreSentiment produces a crude -1..1 sentiment for the analysis record.
func ScoreSentiment(text string) float64 {
	lowered := strings.ToLower(text)
	score := 0.0
	for _, w := range negativeWords {
		if strings.Contains(lowered, w) {
			score -= 0.2
		}
	}
	for _, w := range positiveWords {
		if strings.Contains(lowered, w) {
			score += 0.2
		}
	}
	if score < -1 {
		score = -1
	}
	if score > 1 {
		score = 1
	}
	return score
}

// PriorityForUrgency maps a 1-10 urgency score onto the analysis priority tier.
func PriorityForUrgency(urgency int) models.AnalysisPriority {
	switch {
	case urgency >= 9:
		return models.AnalysisCritical
	case urgency >= 7:
		return models.AnalysisHigh
	case urgency >= 4:
		return models.AnalysisMedium
	default:
		return models.AnalysisLow
	}
}
