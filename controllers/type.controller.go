package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"boutique-backend/models"
	"boutique-backend/taxonomy"
	"boutique-backend/utils"
)

// GetTypes lists all types, active first, then alphabetically.
func (ctrl *Controller) GetTypes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "isActive", Value: -1}, {Key: "nom", Value: 1}})
	cursor, err := ctrl.DB.Collection("types").Find(ctx, bson.M{}, opts)
	if err != nil {
		ctrl.Log.Errorw("failed to list types", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch types"})
		return
	}
	defer cursor.Close(ctx)

	types := []models.Type{}
	if err = cursor.All(ctx, &types); err != nil {
		ctrl.Log.Errorw("failed to decode types", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch types"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"types": types})
}

// CreateType adds a new taxonomy type, enforcing the global cap and name
// uniqueness.
func (ctrl *Controller) CreateType(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.CreateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	collection := ctrl.DB.Collection("types")

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		ctrl.Log.Errorw("failed to count types", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "An error occurred while creating the type"})
		return
	}
	if err := taxonomy.CanAddType(total); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var duplicate models.Type
	if err := collection.FindOne(ctx, bson.M{"nom": req.Name}).Decode(&duplicate); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "A type with this name already exists"})
		return
	}

	now := time.Now()
	typeAdded := models.Type{
		Name:      req.Name,
		Slug:      utils.Slugify(req.Name),
		IsActive:  req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := collection.InsertOne(ctx, typeAdded)
	if err != nil {
		ctrl.Log.Errorw("failed to insert type", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "An error occurred while creating the type"})
		return
	}

	typeAdded.ID = result.InsertedID.(primitive.ObjectID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "typeAdded": typeAdded})
}

// UpdateType renames a type and/or changes its activation state. Deactivation
// is blocked while active categories reference the type.
func (ctrl *Controller) UpdateType(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid type ID"})
		return
	}

	collection := ctrl.DB.Collection("types")
	var existing models.Type
	if err := collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Type not found."})
			return
		}
		ctrl.Log.Errorw("failed to load type", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	var req models.UpdateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if req.IsActive != nil && !*req.IsActive && existing.IsActive {
		activeCategories, err := ctrl.DB.Collection("categories").CountDocuments(ctx, bson.M{
			"type":     existing.ID,
			"isActive": true,
		})
		if err != nil {
			ctrl.Log.Errorw("failed to count active categories", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		if err := taxonomy.CheckTypeDeactivation(activeCategories); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
	}

	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if req.Name != "" {
		existing.Name = req.Name
		existing.Slug = utils.Slugify(req.Name)
	}
	existing.UpdatedAt = time.Now()

	if _, err := collection.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": existing}); err != nil {
		ctrl.Log.Errorw("failed to update type", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	status := "deactivated"
	if existing.IsActive {
		status = "activated"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Type " + status + " successfully",
		"type":    existing,
	})
}

// ToggleTypeStatus flips the type's activation flag. Deactivation goes
// through the same cascade guard as UpdateType.
func (ctrl *Controller) ToggleTypeStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid type ID"})
		return
	}

	collection := ctrl.DB.Collection("types")
	var existing models.Type
	if err := collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Type not found."})
			return
		}
		ctrl.Log.Errorw("failed to load type", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	if existing.IsActive {
		activeCategories, err := ctrl.DB.Collection("categories").CountDocuments(ctx, bson.M{
			"type":     existing.ID,
			"isActive": true,
		})
		if err != nil {
			ctrl.Log.Errorw("failed to count active categories", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		if err := taxonomy.CheckTypeDeactivation(activeCategories); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
	}

	existing.IsActive = !existing.IsActive
	existing.UpdatedAt = time.Now()

	if _, err := collection.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": existing}); err != nil {
		ctrl.Log.Errorw("failed to toggle type status", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	status := "deactivated"
	if existing.IsActive {
		status = "activated"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Type " + status + " successfully",
		"type":    existing,
	})
}

// DeleteType removes an inactive, unreferenced type.
func (ctrl *Controller) DeleteType(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid type ID"})
		return
	}

	collection := ctrl.DB.Collection("types")
	var deletingType models.Type
	if err := collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&deletingType); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Type not found."})
			return
		}
		ctrl.Log.Errorw("failed to load type", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	categoryCount, err := ctrl.DB.Collection("categories").CountDocuments(ctx, bson.M{"type": deletingType.ID})
	if err != nil {
		ctrl.Log.Errorw("failed to count categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err := taxonomy.CheckTypeDeletion(deletingType.IsActive, categoryCount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if _, err := collection.DeleteOne(ctx, bson.M{"_id": deletingType.ID}); err != nil {
		ctrl.Log.Errorw("failed to delete type", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Type deleted successfully."})
}
