package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "homme", Slugify("Homme"))
	assert.Equal(t, "chemise-en-lin", Slugify("Chemise en lin"))
	assert.Equal(t, "t-shirt-2026", Slugify("  T-Shirt  2026 "))
	assert.Equal(t, "", Slugify(""))
}
