package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"boutique-backend/models"
	"boutique-backend/taxonomy"
	"boutique-backend/utils"
)

// categoryLookup populates the type reference the way the UI expects it.
var categoryLookup = []bson.M{
	{"$lookup": bson.M{
		"from":         "types",
		"localField":   "type",
		"foreignField": "_id",
		"as":           "type",
	}},
	{"$unwind": "$type"},
}

// GetCategories lists all categories with their type populated, active first.
func (ctrl *Controller) GetCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := append([]bson.M{}, categoryLookup...)
	pipeline = append(pipeline, bson.M{"$sort": bson.D{
		{Key: "isActive", Value: -1},
		{Key: "categoryName", Value: 1},
	}})

	cursor, err := ctrl.DB.Collection("categories").Aggregate(ctx, pipeline)
	if err != nil {
		ctrl.Log.Errorw("failed to list categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch categories"})
		return
	}
	defer cursor.Close(ctx)

	categories := []models.CategoryView{}
	if err = cursor.All(ctx, &categories); err != nil {
		ctrl.Log.Errorw("failed to decode categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory adds a category under an existing, active type, enforcing
// the global cap.
func (ctrl *Controller) CreateCategory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	collection := ctrl.DB.Collection("categories")
	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		ctrl.Log.Errorw("failed to count categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "An error occurred while creating the category"})
		return
	}
	if err := taxonomy.CanAddCategory(total); err != nil {
		// The UI treats the cap as an authorization-style rejection.
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
		return
	}

	typeID, err := primitive.ObjectIDFromHex(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "The specified type does not exist"})
		return
	}

	var parent models.Type
	if err := ctrl.DB.Collection("types").FindOne(ctx, bson.M{"_id": typeID}).Decode(&parent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "The specified type does not exist"})
		return
	}
	if !parent.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cannot add a category to an inactive type"})
		return
	}

	now := time.Now()
	category := models.Category{
		Name:      req.Name,
		Slug:      utils.Slugify(req.Name),
		Type:      parent.ID,
		IsActive:  req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := collection.InsertOne(ctx, category)
	if err != nil {
		ctrl.Log.Errorw("failed to insert category", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "An error occurred while creating the category"})
		return
	}
	category.ID = result.InsertedID.(primitive.ObjectID)

	categoryAdded := models.CategoryView{
		ID:   category.ID,
		Name: category.Name,
		Slug: category.Slug,
		Type: models.TypeSummary{
			ID:       parent.ID,
			Name:     parent.Name,
			Slug:     parent.Slug,
			IsActive: parent.IsActive,
		},
		IsActive:  category.IsActive,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "categoryAdded": categoryAdded})
}

// UpdateCategory renames a category and/or changes its activation state.
// Activation requires the parent type to be active; deactivation is blocked
// while active products reference the category.
func (ctrl *Controller) UpdateCategory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category ID"})
		return
	}

	collection := ctrl.DB.Collection("categories")
	var existing models.Category
	if err := collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found."})
			return
		}
		ctrl.Log.Errorw("failed to load category", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if req.IsActive != nil {
		switch {
		case *req.IsActive && !existing.IsActive:
			var parent models.Type
			if err := ctrl.DB.Collection("types").FindOne(ctx, bson.M{"_id": existing.Type}).Decode(&parent); err != nil {
				ctrl.Log.Errorw("failed to load parent type", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
				return
			}
			if !parent.IsActive {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot activate this category because its type is inactive. Activate the type first."})
				return
			}
		case !*req.IsActive && existing.IsActive:
			activeProducts, err := ctrl.DB.Collection("products").CountDocuments(ctx, bson.M{
				"category": existing.ID,
				"isActive": true,
			})
			if err != nil {
				ctrl.Log.Errorw("failed to count active products", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
				return
			}
			if err := taxonomy.CheckCategoryDeactivation(activeProducts); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
		}
		existing.IsActive = *req.IsActive
	}

	if req.Name != "" {
		existing.Name = req.Name
		existing.Slug = utils.Slugify(req.Name)
	}
	existing.UpdatedAt = time.Now()

	if _, err := collection.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": existing}); err != nil {
		ctrl.Log.Errorw("failed to update category", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category updated successfully", "category": existing})
}

// DeleteCategory removes an inactive category that no product references.
func (ctrl *Controller) DeleteCategory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category ID"})
		return
	}

	collection := ctrl.DB.Collection("categories")
	var deletingCategory models.Category
	if err := collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&deletingCategory); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found."})
			return
		}
		ctrl.Log.Errorw("failed to load category", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	productCount, err := ctrl.DB.Collection("products").CountDocuments(ctx, bson.M{"category": deletingCategory.ID})
	if err != nil {
		ctrl.Log.Errorw("failed to count products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err := taxonomy.CheckCategoryDeletion(deletingCategory.IsActive, productCount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if _, err := collection.DeleteOne(ctx, bson.M{"_id": deletingCategory.ID}); err != nil {
		ctrl.Log.Errorw("failed to delete category", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully."})
}
