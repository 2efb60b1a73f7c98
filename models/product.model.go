package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductImage references an image hosted on the external CDN.
type ProductImage struct {
	PublicID string `json:"public_id" bson:"public_id"`
	URL      string `json:"url" bson:"url"`
}

// Product is a catalog item bound to one Type and one Category.
// It cannot be active without at least one image and both parents active.
type Product struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Slug        string             `json:"slug,omitempty" bson:"slug,omitempty"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Stock       int                `json:"stock" bson:"stock"`
	Type        primitive.ObjectID `json:"type" bson:"type"`
	Category    primitive.ObjectID `json:"category" bson:"category"`
	Images      []ProductImage     `json:"images" bson:"images"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductView is a Product with its type and category populated.
type ProductView struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Slug        string             `json:"slug,omitempty" bson:"slug,omitempty"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Stock       int                `json:"stock" bson:"stock"`
	Type        TypeSummary        `json:"type" bson:"type"`
	Category    CategorySummary    `json:"category" bson:"category"`
	Images      []ProductImage     `json:"images" bson:"images"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateProductRequest is the body of POST /api/products.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
}

// UpdateProductRequest is the body of PUT /api/products/:id.
// Absent fields leave the stored value untouched.
type UpdateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	IsActive    *bool    `json:"isActive"`
}

// UploadImagesRequest is the body of POST /api/products/:id/images.
// Each entry is a base64 data URI forwarded to the CDN.
type UploadImagesRequest struct {
	Images []string `json:"images" binding:"required"`
}
