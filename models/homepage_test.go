package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionRequestValidate(t *testing.T) {
	valid := SectionRequest{
		Title:    "Summer collection",
		Subtitle: "New arrivals",
		Text:     "Discover the season's pieces.",
		Image:    SectionImage{PublicID: "boutique/home1", URL: "https://res.example.com/home1.jpg"},
	}
	assert.NoError(t, valid.Validate())

	missingTitle := valid
	missingTitle.Title = ""
	assert.EqualError(t, missingTitle.Validate(), "All fields are required")

	missingText := valid
	missingText.Text = ""
	assert.Error(t, missingText.Validate())

	badImage := valid
	badImage.Image = SectionImage{URL: "https://res.example.com/home1.jpg"}
	assert.EqualError(t, badImage.Validate(), "The image is invalid")
}
