package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxHomeSections caps the number of sections on the home page.
const MaxHomeSections = 3

// SectionImage references a CDN-hosted image attached to a home page section.
type SectionImage struct {
	PublicID string `json:"public_id" bson:"public_id"`
	URL      string `json:"url" bson:"url"`
}

// HomeSection is one editable block of the home page.
type HomeSection struct {
	ID       primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title    string             `json:"title" bson:"title"`
	Subtitle string             `json:"subtitle" bson:"subtitle"`
	Text     string             `json:"text" bson:"text"`
	Image    SectionImage       `json:"image" bson:"image"`
}

// HomePage is the singleton document holding the home page sections.
type HomePage struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Sections  []HomeSection      `json:"sections" bson:"sections"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SectionRequest is the body of POST /api/homepage and PUT /api/homepage/:id.
type SectionRequest struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Text     string       `json:"text"`
	Image    SectionImage `json:"image"`
}

// Validate checks that the section is complete and its image reference usable.
func (r SectionRequest) Validate() error {
	if r.Title == "" || r.Subtitle == "" || r.Text == "" {
		return errors.New("All fields are required")
	}
	if r.Image.PublicID == "" || r.Image.URL == "" {
		return errors.New("The image is invalid")
	}
	return nil
}

// ReplaceSectionsRequest is the body of PUT /api/homepage.
type ReplaceSectionsRequest struct {
	Sections []SectionRequest `json:"sections"`
}
