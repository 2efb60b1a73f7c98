package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Type is a top-level taxonomy node (e.g. "Homme", "Femme").
// At most three types may exist at any time.
type Type struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"nom" bson:"nom"`
	Slug      string             `json:"slug,omitempty" bson:"slug,omitempty"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// TypeSummary is the populated shape embedded in category and product views.
type TypeSummary struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Name     string             `json:"nom" bson:"nom"`
	Slug     string             `json:"slug,omitempty" bson:"slug,omitempty"`
	IsActive bool               `json:"isActive" bson:"isActive"`
}

// CreateTypeRequest is the body of POST /api/settings/type.
type CreateTypeRequest struct {
	Name     string `json:"nom" binding:"required"`
	IsActive bool   `json:"isActive"`
}

// UpdateTypeRequest is the body of PUT /api/settings/type/:id.
// Pointer fields distinguish "absent" from zero values.
type UpdateTypeRequest struct {
	Name     string `json:"nom"`
	IsActive *bool  `json:"isActive"`
}
