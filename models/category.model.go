package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a second-level taxonomy node bound to exactly one Type.
// At most six categories may exist at any time.
type Category struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"categoryName" bson:"categoryName"`
	Slug      string             `json:"slug,omitempty" bson:"slug,omitempty"`
	Type      primitive.ObjectID `json:"type" bson:"type"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CategoryView is a Category with its type populated, as returned to the UI.
type CategoryView struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Name      string             `json:"categoryName" bson:"categoryName"`
	Slug      string             `json:"slug,omitempty" bson:"slug,omitempty"`
	Type      TypeSummary        `json:"type" bson:"type"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CategorySummary is the populated shape embedded in product views.
type CategorySummary struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Name     string             `json:"categoryName" bson:"categoryName"`
	Slug     string             `json:"slug,omitempty" bson:"slug,omitempty"`
	IsActive bool               `json:"isActive" bson:"isActive"`
}

// CreateCategoryRequest is the body of POST /api/settings/category.
type CreateCategoryRequest struct {
	Name     string `json:"categoryName" binding:"required"`
	Type     string `json:"type" binding:"required"`
	IsActive bool   `json:"isActive"`
}

// UpdateCategoryRequest is the body of PUT /api/settings/category/:id.
type UpdateCategoryRequest struct {
	Name     string `json:"categoryName"`
	IsActive *bool  `json:"isActive"`
}
