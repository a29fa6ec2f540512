package services

import (
	"testing"

	"civiclens-be/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleCategories() []models.Category {
	return []models.Category{
		{
			ID:                  primitive.NewObjectID(),
			Name:                "Roads",
			DepartmentID:        primitive.NewObjectID(),
			AIDetectionKeywords: []string{"pothole", "road"},
			Keywords:            []string{"asphalt"},
			IsActive:            true,
			Priority:            5,
		},
		{
			ID:                  primitive.NewObjectID(),
			Name:                "Sanitation",
			DepartmentID:        primitive.NewObjectID(),
			AIDetectionKeywords: []string{"garbage", "sewage"},
			IsActive:            true,
			Priority:            3,
		},
		{
			ID:                  primitive.NewObjectID(),
			Name:                "Inactive",
			DepartmentID:        primitive.NewObjectID(),
			AIDetectionKeywords: []string{"pothole"},
			IsActive:            false,
			Priority:            10,
		},
	}
}

func TestRouteCategoryPicksBestMatch(t *testing.T) {
	cats := sampleCategories()

	routed, matched := RouteCategory("Huge pothole on the main road near the school", cats)

	assert.NotNil(t, routed)
	assert.Equal(t, "Roads", routed.Name)
	assert.ElementsMatch(t, []string{"pothole", "road"}, matched)
}

func TestRouteCategorySkipsInactive(t *testing.T) {
	cats := []models.Category{
		{Name: "Inactive", AIDetectionKeywords: []string{"pothole"}, IsActive: false},
	}

	routed, matched := RouteCategory("pothole everywhere", cats)
	assert.Nil(t, routed)
	assert.Empty(t, matched)
}

func TestRouteCategoryNoMatch(t *testing.T) {
	routed, matched := RouteCategory("everything is fine here", sampleCategories())
	assert.Nil(t, routed)
	assert.Empty(t, matched)
}

func TestRouteCategoryTieBreaksOnPriority(t *testing.T) {
	cats := []models.Category{
		{Name: "Low", AIDetectionKeywords: []string{"water"}, IsActive: true, Priority: 1},
		{Name: "High", AIDetectionKeywords: []string{"leak"}, IsActive: true, Priority: 9},
	}

	routed, _ := RouteCategory("water leak on 5th street", cats)
	assert.NotNil(t, routed)
	assert.Equal(t, "High", routed.Name)
}

func TestScoreUrgencyAnchoredAtDefault(t *testing.T) {
	assert.Equal(t, models.DefaultUrgency, ScoreUrgency("streetlight flickering sometimes"))
}

func TestScoreUrgencyAddsKeywordWeights(t *testing.T) {
	mild := ScoreUrgency("broken bench in the park")
	severe := ScoreUrgency("dangerous fire near a collapsed building, emergency")

	assert.Greater(t, severe, mild)
	assert.LessOrEqual(t, severe, 10)
	assert.Equal(t, 10, severe)
}

func TestScoreSentimentBounds(t *testing.T) {
	negative := ScoreSentiment("terrible awful horrible disgusting worst unbearable dangerous broken filthy")
	positive := ScoreSentiment("thanks, the road is great and improved")
	neutral := ScoreSentiment("there is a streetlight on 5th avenue")

	assert.Equal(t, -1.0, negative)
	assert.Greater(t, positive, 0.0)
	assert.LessOrEqual(t, positive, 1.0)
	assert.Equal(t, 0.0, neutral)
}

func TestPriorityForUrgency(t *testing.T) {
	assert.Equal(t, models.AnalysisLow, PriorityForUrgency(1))
	assert.Equal(t, models.AnalysisLow, PriorityForUrgency(3))
	assert.Equal(t, models.AnalysisMedium, PriorityForUrgency(4))
	assert.Equal(t, models.AnalysisMedium, PriorityForUrgency(6))
	assert.Equal(t, models.AnalysisHigh, PriorityForUrgency(7))
	assert.Equal(t, models.AnalysisCritical, PriorityForUrgency(9))
	assert.Equal(t, models.AnalysisCritical, PriorityForUrgency(10))
}
