// Package taxonomy enforces the activation and deletion cascade across
// Type -> Category -> Product. The rules are plain predicates over state the
// caller has already fetched; nothing here touches the database.
package taxonomy

import (
	"errors"
	"fmt"
)

// Caps on taxonomy size. The shop UI is designed around three types and six
// categories; creation past a cap fails with a limit error.
const (
	MaxTypes      = 3
	MaxCategories = 6
)

// CanAddType rejects a creation that would exceed the type cap.
func CanAddType(existing int64) error {
	if existing >= MaxTypes {
		return errors.New("Limit reached: you already have 3 types. Please delete one before adding a new type.")
	}
	return nil
}

// CanAddCategory rejects a creation that would exceed the category cap.
func CanAddCategory(existing int64) error {
	if existing >= MaxCategories {
		return errors.New("You have reached the maximum limit, 6, of category. To add another category, delete one.")
	}
	return nil
}

// CheckTypeDeactivation blocks deactivating a type while active categories
// still hang off it. The count is part of the message shown to the admin.
func CheckTypeDeactivation(activeCategories int64) error {
	if activeCategories > 0 {
		noun := "categories are"
		if activeCategories == 1 {
			noun = "category is"
		}
		return fmt.Errorf("Cannot deactivate this type because %d active %s associated with it. Please deactivate them first.", activeCategories, noun)
	}
	return nil
}

// CheckTypeDeletion blocks deleting a type that is active or referenced.
func CheckTypeDeletion(isActive bool, categoryCount int64) error {
	if isActive {
		return errors.New("You cannot delete an active type. Please deactivate it first.")
	}
	if categoryCount > 0 {
		return errors.New("You cannot delete this type because there are categories associated with it.")
	}
	return nil
}

// CheckCategoryDeactivation blocks deactivating a category while active
// products still reference it. Mirrors the type rule one level down.
func CheckCategoryDeactivation(activeProducts int64) error {
	if activeProducts > 0 {
		noun := "products are"
		if activeProducts == 1 {
			noun = "product is"
		}
		return fmt.Errorf("Cannot deactivate this category because %d active %s associated with it. Please deactivate them first.", activeProducts, noun)
	}
	return nil
}

// CheckCategoryDeletion blocks deleting a category that is active or
// referenced by any product.
func CheckCategoryDeletion(isActive bool, productCount int64) error {
	if isActive {
		return errors.New("You cannot delete an active category. Please deactivate it first.")
	}
	if productCount > 0 {
		return errors.New("You cannot delete this category because there are products associated with it.")
	}
	return nil
}

// CheckProductDeletion blocks deleting a product that is still carted or active.
func CheckProductDeletion(isActive bool, cartCount int64) error {
	if cartCount > 0 {
		return errors.New("Cannot delete product. It is present in one or more carts.")
	}
	if isActive {
		return errors.New("You cannot delete an active product. Please deactivate it first.")
	}
	return nil
}

// ActivationGate holds the state consulted when an update tries to set a
// product active.
type ActivationGate struct {
	ImageCount     int
	TypeName       string
	TypeActive     bool
	CategoryName   string
	CategoryActive bool
}

// Check reports whether the activation may proceed. When it may not, the
// returned warning explains why; the caller is expected to drop the
// activation flag and persist the rest of the update (partial success).
func (g ActivationGate) Check() (bool, string) {
	if !g.TypeActive {
		return false, fmt.Sprintf("Product updated successfully, but cannot be activated because the type %q is inactive. Activate the type first.", g.TypeName)
	}
	if !g.CategoryActive {
		return false, fmt.Sprintf("Product updated successfully, but cannot be activated because the category %q is inactive. Activate the category first.", g.CategoryName)
	}
	if g.ImageCount < 1 {
		return false, "Product updated successfully, but cannot be activated because it has no images. Add at least one image first."
	}
	return true, ""
}
