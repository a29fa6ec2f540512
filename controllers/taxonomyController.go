package controllers

import (
	"log"
	"net/http"
	"time"

	"civiclens-be/config"
	"civiclens-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListDepartments returns all active departments.
func ListDepartments(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := config.GetCollection("departments").Find(ctx, bson.M{"isActive": true}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch departments"})
		return
	}
	defer cursor.Close(ctx)

	departments := []models.Department{}
	if err := cursor.All(ctx, &departments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch departments"})
		return
	}

	c.JSON(http.StatusOK, departments)
}

type createDepartmentInput struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
}

// CreateDepartment adds an organizational unit. Masteradmin only.
func CreateDepartment(c *gin.Context) {
	var input createDepartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	now := time.Now()
	department := models.Department{
		ID:           primitive.NewObjectID(),
		Name:         input.Name,
		Description:  input.Description,
		Categories:   []primitive.ObjectID{},
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Authorities:  []primitive.ObjectID{},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := config.GetCollection("departments").InsertOne(ctx, department); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Department already exists"})
			return
		}
		log.Println("Error creating department:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create department"})
		return
	}

	c.JSON(http.StatusCreated, department)
}

// ListCategories returns active categories, optionally filtered by
// ?department=<id>.
func ListCategories(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	filter := bson.M{"isActive": true}
	if dept := c.Query("department"); dept != "" {
		deptID, err := primitive.ObjectIDFromHex(dept)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
			return
		}
		filter["departmentId"] = deptID
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "name", Value: 1}})
	cursor, err := config.GetCollection("categories").Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

type createCategoryInput struct {
	Name                    string   `json:"name" binding:"required"`
	Description             string   `json:"description,omitempty"`
	DepartmentID            string   `json:"departmentId" binding:"required"`
	Keywords                []string `json:"keywords,omitempty"`
	AIDetectionKeywords     []string `json:"aiDetectionKeywords,omitempty"`
	Priority                int      `json:"priority,omitempty"`
	EstimatedResolutionTime int      `json:"estimatedResolutionTime,omitempty"`
	IsEmergency             bool     `json:"isEmergency,omitempty"`
}

// CreateCategory adds a routing category under a department. Masteradmin only.
func CreateCategory(c *gin.Context) {
	var input createCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deptID, err := primitive.ObjectIDFromHex(input.DepartmentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	departments := config.GetCollection("departments")
	if err := departments.FindOne(ctx, bson.M{"_id": deptID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		}
		return
	}

	if input.Keywords == nil {
		input.Keywords = []string{}
	}
	if input.AIDetectionKeywords == nil {
		input.AIDetectionKeywords = []string{}
	}

	now := time.Now()
	category := models.Category{
		ID:                      primitive.NewObjectID(),
		Name:                    input.Name,
		Description:             input.Description,
		DepartmentID:            deptID,
		Keywords:                input.Keywords,
		AIDetectionKeywords:     input.AIDetectionKeywords,
		SubCategories:           []primitive.ObjectID{},
		IsActive:                true,
		Priority:                input.Priority,
		EstimatedResolutionTime: input.EstimatedResolutionTime,
		IsEmergency:             input.IsEmergency,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if _, err := config.GetCollection("categories").InsertOne(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category already exists in this department"})
			return
		}
		log.Println("Error creating category:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	if _, err := departments.UpdateByID(ctx, deptID, bson.M{
		"$push": bson.M{"categories": category.ID},
	}); err != nil {
		log.Println("Error linking category to department:", err)
	}

	c.JSON(http.StatusCreated, category)
}
