package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"boutique-backend/models"
)

// GetPaymentTypes lists every configured payment method.
func (ctrl *Controller) GetPaymentTypes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := ctrl.DB.Collection("paymenttypes").Find(ctx, bson.M{})
	if err != nil {
		ctrl.Log.Errorw("failed to list payment types", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment types", "code": models.CodeInternalError})
		return
	}
	defer cursor.Close(ctx)

	paymentTypes := []models.PaymentType{}
	if err = cursor.All(ctx, &paymentTypes); err != nil {
		ctrl.Log.Errorw("failed to decode payment types", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment types", "code": models.CodeInternalError})
		return
	}
	c.JSON(http.StatusOK, gin.H{"paymentTypes": paymentTypes})
}

// CreatePaymentType adds a payment method. The body resolves to a tagged
// variant first: CASH is a singleton with no credentials, electronic
// platforms are unique and capped at four.
func (ctrl *Controller) CreatePaymentType(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": models.CodeValidationError})
		return
	}

	variant, perr := req.Resolve()
	if perr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": perr.Message, "code": perr.Code})
		return
	}

	collection := ctrl.DB.Collection("paymenttypes")

	if variant.IsCash {
		var existingCash models.PaymentType
		if err := collection.FindOne(ctx, bson.M{"platform": models.PlatformCash}).Decode(&existingCash); err == nil {
			c.JSON(http.StatusConflict, gin.H{
				"error": "The cash payment option already exists",
				"code":  models.CodeCashAlreadyExists,
			})
			return
		}

		cashPayment := models.PaymentType{
			Platform:      models.PlatformCash,
			IsCashPayment: true,
			Description:   "Cash payment on pickup",
			CreatedAt:     time.Now(),
		}
		result, err := collection.InsertOne(ctx, cashPayment)
		if err != nil {
			ctrl.Log.Errorw("failed to insert cash payment", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding the payment platform", "code": models.CodeInternalError})
			return
		}
		cashPayment.ID = result.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, gin.H{
			"paymentType": cashPayment,
			"message":     "Cash payment option added successfully",
		})
		return
	}

	electronicCount, err := collection.CountDocuments(ctx, bson.M{"platform": bson.M{"$ne": models.PlatformCash}})
	if err != nil {
		ctrl.Log.Errorw("failed to count payment types", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding the payment platform", "code": models.CodeInternalError})
		return
	}
	if electronicCount >= models.MaxElectronicPayments {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "You have reached the limit of 4 electronic payment platforms. To add another one, delete one.",
			"code":  models.CodePaymentLimitReached,
		})
		return
	}

	var existingPlatform models.PaymentType
	if err := collection.FindOne(ctx, bson.M{"platform": variant.Platform}).Decode(&existingPlatform); err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "The platform " + variant.Platform + " already exists",
			"code":  models.CodePlatformAlreadyExists,
		})
		return
	}

	paymentType := models.PaymentType{
		Platform:      variant.Platform,
		Name:          variant.Name,
		Number:        variant.Number,
		IsCashPayment: false,
		CreatedAt:     time.Now(),
	}
	result, err := collection.InsertOne(ctx, paymentType)
	if err != nil {
		ctrl.Log.Errorw("failed to insert payment type", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding the payment platform", "code": models.CodeInternalError})
		return
	}
	paymentType.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, gin.H{
		"paymentType": paymentType,
		"message":     "Payment platform added successfully",
	})
}

// DeletePaymentType removes a payment method.
func (ctrl *Controller) DeletePaymentType(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment type ID", "code": models.CodeValidationError})
		return
	}

	result, err := ctrl.DB.Collection("paymenttypes").DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		ctrl.Log.Errorw("failed to delete payment type", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting the payment platform", "code": models.CodeInternalError})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment type not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment platform deleted successfully"})
}
