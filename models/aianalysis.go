package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnalysisPriority enum
type AnalysisPriority string

const (
	AnalysisLow      AnalysisPriority = "LOW"
	AnalysisMedium   AnalysisPriority = "MEDIUM"
	AnalysisHigh     AnalysisPriority = "HIGH"
	AnalysisCritical AnalysisPriority = "CRITICAL"
)

// AIAnalysis is the one-to-one analysis satellite record for a post.
type AIAnalysis struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PostID               primitive.ObjectID   `bson:"postId" json:"postId"`
	Category             string               `bson:"category" json:"category"`
	Department           *primitive.ObjectID  `bson:"department,omitempty" json:"department,omitempty"`
	UrgencyScore         int                  `bson:"urgencyScore" json:"urgencyScore"`
	KeywordsDetected     []string             `bson:"keywordsDetected" json:"keywordsDetected"`
	SentimentScore       float64              `bson:"sentimentScore" json:"sentimentScore"`
	SuggestedAuthorities []primitive.ObjectID `bson:"suggestedAuthorities" json:"suggestedAuthorities"`
	Confidence           float64              `bson:"confidence" json:"confidence"`
	IssueType            string               `bson:"issueType" json:"issueType"`
	Priority             AnalysisPriority     `bson:"priority" json:"priority"`
	Tags                 []string             `bson:"tags" json:"tags"`
	AnalysisVersion      string               `bson:"analysisVersion" json:"analysisVersion"`
	CreatedAt            time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// EnsureAIAnalysisIndex enforces at most one analysis record per post.
func EnsureAIAnalysisIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "postId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_analysis_post"),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
