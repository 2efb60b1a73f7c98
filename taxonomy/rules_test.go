package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAddType(t *testing.T) {
	assert.NoError(t, CanAddType(0))
	assert.NoError(t, CanAddType(2))

	err := CanAddType(3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 types")

	assert.Error(t, CanAddType(4))
}

func TestCanAddCategory(t *testing.T) {
	assert.NoError(t, CanAddCategory(5))

	err := CanAddCategory(6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum limit, 6")
}

func TestCheckTypeDeactivation(t *testing.T) {
	assert.NoError(t, CheckTypeDeactivation(0))

	err := CheckTypeDeactivation(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 active category is")

	err = CheckTypeDeactivation(3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 active categories are")
}

func TestCheckTypeDeletion(t *testing.T) {
	assert.NoError(t, CheckTypeDeletion(false, 0))

	err := CheckTypeDeletion(true, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "active type")

	err = CheckTypeDeletion(false, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "categories associated")

	// Active wins over referenced when both apply.
	err = CheckTypeDeletion(true, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "active type")
}

func TestCheckCategoryDeactivation(t *testing.T) {
	assert.NoError(t, CheckCategoryDeactivation(0))

	err := CheckCategoryDeactivation(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 active product is")

	err = CheckCategoryDeactivation(4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 active products are")
}

func TestCheckCategoryDeletion(t *testing.T) {
	assert.NoError(t, CheckCategoryDeletion(false, 0))
	assert.Error(t, CheckCategoryDeletion(true, 0))
	assert.Error(t, CheckCategoryDeletion(false, 1))
}

func TestCheckProductDeletion(t *testing.T) {
	assert.NoError(t, CheckProductDeletion(false, 0))

	err := CheckProductDeletion(false, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carts")

	err = CheckProductDeletion(true, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "active product")

	// The cart guard is checked before the activation guard.
	err = CheckProductDeletion(true, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carts")
}

func TestActivationGate(t *testing.T) {
	gate := ActivationGate{
		ImageCount:     2,
		TypeName:       "Homme",
		TypeActive:     true,
		CategoryName:   "Chemises",
		CategoryActive: true,
	}
	ok, warning := gate.Check()
	assert.True(t, ok)
	assert.Empty(t, warning)
}

func TestActivationGateInactiveType(t *testing.T) {
	gate := ActivationGate{
		ImageCount:     2,
		TypeName:       "Homme",
		TypeActive:     false,
		CategoryName:   "Chemises",
		CategoryActive: true,
	}
	ok, warning := gate.Check()
	assert.False(t, ok)
	assert.Contains(t, warning, `type "Homme" is inactive`)
	assert.Contains(t, warning, "Product updated successfully")
}

func TestActivationGateInactiveCategory(t *testing.T) {
	gate := ActivationGate{
		ImageCount:     2,
		TypeName:       "Homme",
		TypeActive:     true,
		CategoryName:   "Chemises",
		CategoryActive: false,
	}
	ok, warning := gate.Check()
	assert.False(t, ok)
	assert.Contains(t, warning, `category "Chemises" is inactive`)
}

func TestActivationGateNoImages(t *testing.T) {
	gate := ActivationGate{
		ImageCount:     0,
		TypeName:       "Homme",
		TypeActive:     true,
		CategoryName:   "Chemises",
		CategoryActive: true,
	}
	ok, warning := gate.Check()
	assert.False(t, ok)
	assert.Contains(t, warning, "no images")
}

func TestActivationGateTypeCheckedFirst(t *testing.T) {
	// With everything wrong, the type message wins.
	gate := ActivationGate{TypeName: "Femme", CategoryName: "Robes"}
	ok, warning := gate.Check()
	assert.False(t, ok)
	assert.Contains(t, warning, `type "Femme"`)
}
