package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/o1egl/paseto"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"boutique-backend/middlewares"
	"boutique-backend/models"
)

// Login authenticates an admin and issues a session token.
func (ctrl *Controller) Login(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var admin models.Admin
	collection := ctrl.DB.Collection("admins")
	err := collection.FindOne(ctx, bson.M{"username": req.Username}).Decode(&admin)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	now := time.Now()
	exp := now.Add(24 * time.Hour)
	jsonToken := paseto.JSONToken{
		Subject:    admin.ID.Hex(),
		IssuedAt:   now,
		Expiration: exp,
	}
	token, err := paseto.NewV2().Encrypt(ctrl.PasetoSecretKey, jsonToken, middlewares.TokenFooter)
	if err != nil {
		ctrl.Log.Errorw("failed to issue session token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	admin.Password = ""
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "admin": admin, "token": token})
}

// Register creates a new admin account.
func (ctrl *Controller) Register(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := ctrl.DB.Collection("admins")
	var existingAdmin models.Admin
	if err := collection.FindOne(ctx, bson.M{"username": req.Username}).Decode(&existingAdmin); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		ctrl.Log.Errorw("failed to hash password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	admin := models.Admin{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      "admin",
		CreatedAt: time.Now(),
	}

	result, err := collection.InsertOne(ctx, admin)
	if err != nil {
		ctrl.Log.Errorw("failed to insert admin", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	admin.ID = result.InsertedID.(primitive.ObjectID)
	admin.Password = ""
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful", "admin": admin})
}

// GetAdmins lists every admin account, passwords stripped.
func (ctrl *Controller) GetAdmins(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := ctrl.DB.Collection("admins")
	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		ctrl.Log.Errorw("failed to list admins", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admins"})
		return
	}
	defer cursor.Close(ctx)

	var adminList []models.Admin
	if err = cursor.All(ctx, &adminList); err != nil {
		ctrl.Log.Errorw("failed to decode admins", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admins"})
		return
	}

	for i := range adminList {
		adminList[i].Password = ""
	}
	c.JSON(http.StatusOK, gin.H{"admins": adminList})
}

// DeleteAdmin removes an admin account.
func (ctrl *Controller) DeleteAdmin(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := c.Param("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admin ID"})
		return
	}

	collection := ctrl.DB.Collection("admins")
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		ctrl.Log.Errorw("failed to delete admin", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete admin"})
		return
	}

	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin deleted successfully"})
}
