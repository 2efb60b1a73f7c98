package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"boutique-backend/models"
)

// GetHomePage returns the singleton home page document, or null when none
// has been created yet.
func (ctrl *Controller) GetHomePage(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var homePage models.HomePage
	err := ctrl.DB.Collection("homepages").FindOne(ctx, bson.M{}, opts).Decode(&homePage)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": nil})
			return
		}
		ctrl.Log.Errorw("failed to load home page", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch home page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": homePage})
}

// AddHomeSection appends a section to the home page, creating the document
// on first use. Capped at three sections.
func (ctrl *Controller) AddHomeSection(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	collection := ctrl.DB.Collection("homepages")
	section := models.HomeSection{
		ID:       primitive.NewObjectID(),
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Text:     req.Text,
		Image:    req.Image,
	}

	var homePage models.HomePage
	err := collection.FindOne(ctx, bson.M{}).Decode(&homePage)
	if err == mongo.ErrNoDocuments {
		now := time.Now()
		homePage = models.HomePage{
			Sections:  []models.HomeSection{section},
			CreatedAt: now,
			UpdatedAt: now,
		}
		result, err := collection.InsertOne(ctx, homePage)
		if err != nil {
			ctrl.Log.Errorw("failed to create home page", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create home page"})
			return
		}
		homePage.ID = result.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Home page created with its first section",
			"data":    homePage,
		})
		return
	}
	if err != nil {
		ctrl.Log.Errorw("failed to load home page", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch home page"})
		return
	}

	if len(homePage.Sections) >= models.MaxHomeSections {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "The home page already has 3 sections. Please edit or delete one.",
		})
		return
	}

	homePage.Sections = append(homePage.Sections, section)
	homePage.UpdatedAt = time.Now()
	if _, err := collection.UpdateOne(ctx, bson.M{"_id": homePage.ID}, bson.M{"$set": bson.M{
		"sections":  homePage.Sections,
		"updatedAt": homePage.UpdatedAt,
	}}); err != nil {
		ctrl.Log.Errorw("failed to add home section", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to add section"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Section %d added successfully", len(homePage.Sections)),
		"data":    homePage,
	})
}

// ReplaceHomeSections overwrites the whole section list. Exactly three
// complete sections are required.
func (ctrl *Controller) ReplaceHomeSections(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ReplaceSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Sections are required and must be an array"})
		return
	}
	if req.Sections == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Sections are required and must be an array"})
		return
	}
	if len(req.Sections) != models.MaxHomeSections {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "You must provide exactly 3 sections"})
		return
	}
	for i, section := range req.Sections {
		if err := section.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Section %d is incomplete", i+1)})
			return
		}
	}

	sections := make([]models.HomeSection, 0, len(req.Sections))
	for _, s := range req.Sections {
		sections = append(sections, models.HomeSection{
			ID:       primitive.NewObjectID(),
			Title:    s.Title,
			Subtitle: s.Subtitle,
			Text:     s.Text,
			Image:    s.Image,
		})
	}

	collection := ctrl.DB.Collection("homepages")
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var homePage models.HomePage
	err := collection.FindOneAndUpdate(ctx, bson.M{}, bson.M{"$set": bson.M{
		"sections":  sections,
		"updatedAt": time.Now(),
	}}, opts).Decode(&homePage)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Home page not found"})
			return
		}
		ctrl.Log.Errorw("failed to replace home sections", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update home page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Home page updated successfully",
		"data":    homePage,
	})
}

// UpdateHomeSection replaces one section's content. When the image changes,
// the previous CDN asset is destroyed best-effort.
func (ctrl *Controller) UpdateHomeSection(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sectionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid section ID"})
		return
	}

	var req models.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	collection := ctrl.DB.Collection("homepages")
	var homePage models.HomePage
	if err := collection.FindOne(ctx, bson.M{}).Decode(&homePage); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Home page not found"})
			return
		}
		ctrl.Log.Errorw("failed to load home page", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch home page"})
		return
	}

	index := -1
	for i := range homePage.Sections {
		if homePage.Sections[i].ID == sectionID {
			index = i
			break
		}
	}
	if index == -1 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Section not found"})
		return
	}

	previous := homePage.Sections[index].Image
	if previous.PublicID != req.Image.PublicID && ctrl.Cld != nil {
		if _, err := ctrl.Cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: previous.PublicID}); err != nil {
			ctrl.Log.Warnw("failed to delete old section image from CDN", "public_id", previous.PublicID, "error", err)
		}
	}

	homePage.Sections[index].Title = req.Title
	homePage.Sections[index].Subtitle = req.Subtitle
	homePage.Sections[index].Text = req.Text
	homePage.Sections[index].Image = req.Image
	homePage.UpdatedAt = time.Now()

	if _, err := collection.UpdateOne(ctx, bson.M{"_id": homePage.ID}, bson.M{"$set": bson.M{
		"sections":  homePage.Sections,
		"updatedAt": homePage.UpdatedAt,
	}}); err != nil {
		ctrl.Log.Errorw("failed to update home section", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update section"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Section updated successfully",
		"data":    homePage,
	})
}

// DeleteHomeSection removes one section and destroys its CDN image
// best-effort.
func (ctrl *Controller) DeleteHomeSection(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sectionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid section ID"})
		return
	}

	collection := ctrl.DB.Collection("homepages")
	var homePage models.HomePage
	if err := collection.FindOne(ctx, bson.M{}).Decode(&homePage); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Home page not found"})
			return
		}
		ctrl.Log.Errorw("failed to load home page", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch home page"})
		return
	}

	index := -1
	for i := range homePage.Sections {
		if homePage.Sections[i].ID == sectionID {
			index = i
			break
		}
	}
	if index == -1 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Section not found"})
		return
	}

	if ctrl.Cld != nil {
		image := homePage.Sections[index].Image
		if _, err := ctrl.Cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: image.PublicID}); err != nil {
			ctrl.Log.Warnw("failed to delete section image from CDN", "public_id", image.PublicID, "error", err)
		}
	}

	homePage.Sections = append(homePage.Sections[:index], homePage.Sections[index+1:]...)
	homePage.UpdatedAt = time.Now()

	if _, err := collection.UpdateOne(ctx, bson.M{"_id": homePage.ID}, bson.M{"$set": bson.M{
		"sections":  homePage.Sections,
		"updatedAt": homePage.UpdatedAt,
	}}); err != nil {
		ctrl.Log.Errorw("failed to delete home section", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete section"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Section deleted successfully",
		"data":    homePage,
	})
}
