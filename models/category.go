package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Category is a department-scoped taxonomy node used to route posts. The
// aiDetectionKeywords list feeds the keyword router in the analysis step.
type Category struct {
	ID                      primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name                    string               `bson:"name" json:"name"`
	Description             string               `bson:"description" json:"description"`
	DepartmentID            primitive.ObjectID   `bson:"departmentId" json:"departmentId"`
	Keywords                []string             `bson:"keywords" json:"keywords"`
	AIDetectionKeywords     []string             `bson:"aiDetectionKeywords" json:"aiDetectionKeywords"`
	ParentCategory          *primitive.ObjectID  `bson:"parentCategory,omitempty" json:"parentCategory,omitempty"`
	SubCategories           []primitive.ObjectID `bson:"subCategories" json:"subCategories"`
	IsActive                bool                 `bson:"isActive" json:"isActive"`
	Priority                int                  `bson:"priority" json:"priority"`
	EstimatedResolutionTime int                  `bson:"estimatedResolutionTime" json:"estimatedResolutionTime"`
	IsEmergency             bool                 `bson:"isEmergency" json:"isEmergency"`
	CreatedAt               time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt               time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// EnsureCategoryIndex makes category names unique within a department.
func EnsureCategoryIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}, {Key: "departmentId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_category_name_department"),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
