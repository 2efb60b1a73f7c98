package controllers

import (
	"github.com/cloudinary/cloudinary-go/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Controller holds the dependencies shared by every handler.
type Controller struct {
	DB              *mongo.Database
	Cld             *cloudinary.Cloudinary
	PasetoSecretKey []byte
	Log             *zap.SugaredLogger
}

// Cloudinary folder for product and home page uploads.
const uploadFolder = "boutique/products"
