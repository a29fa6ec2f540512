package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PerformanceMetrics are the aggregate numbers a department carries
type PerformanceMetrics struct {
	TotalIssuesHandled       int     `bson:"totalIssuesHandled" json:"totalIssuesHandled"`
	AverageResolutionTime    float64 `bson:"averageResolutionTime" json:"averageResolutionTime"`
	CitizenSatisfactionScore float64 `bson:"citizenSatisfactionScore" json:"citizenSatisfactionScore"`
	CompletionRate           float64 `bson:"completionRate" json:"completionRate"`
}

// Department is an organizational unit owning categories and authorities
type Department struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name               string               `bson:"name" json:"name"`
	Description        string               `bson:"description" json:"description"`
	Categories         []primitive.ObjectID `bson:"categories" json:"categories"`
	ContactEmail       string               `bson:"contactEmail" json:"contactEmail"`
	ContactPhone       string               `bson:"contactPhone" json:"contactPhone"`
	Authorities        []primitive.ObjectID `bson:"authorities" json:"authorities"`
	IsActive           bool                 `bson:"isActive" json:"isActive"`
	PerformanceMetrics PerformanceMetrics   `bson:"performanceMetrics" json:"performanceMetrics"`
	CreatedAt          time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// EnsureDepartmentIndex makes department names unique.
func EnsureDepartmentIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_department_name"),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
