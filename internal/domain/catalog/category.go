package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/stylehub/backend/internal/domain/shared"
)

// Category levels. The tree is capped at three levels: a root category
// sits at level 1 and a level-3 category may never be a parent.
const (
	MinCategoryLevel = 1
	MaxCategoryLevel = 3
)

// Category represents a node in the three-level category tree.
// The level invariant is enforced locally at every write: a category
// without a parent has level 1, and one with a parent has exactly
// parent.Level + 1.
type Category struct {
	shared.BaseEntity
	Name     string
	Level    int
	ParentID *uuid.UUID
}

// NewCategory creates a category after checking the hierarchy invariant
// against the supplied parent (nil for a root category).
func NewCategory(name string, level int, parent *Category) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := ValidateHierarchy(level, parent); err != nil {
		return nil, err
	}

	category := &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Level:      level,
	}
	if parent != nil {
		parentID := parent.ID
		category.ParentID = &parentID
	}

	return category, nil
}

// Rename updates the category name.
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	return nil
}

// Move re-homes the category under a new parent (nil for root) at the
// given level, re-checking the hierarchy invariant.
func (c *Category) Move(level int, parent *Category) error {
	if err := ValidateHierarchy(level, parent); err != nil {
		return err
	}
	c.Level = level
	if parent == nil {
		c.ParentID = nil
	} else {
		parentID := parent.ID
		c.ParentID = &parentID
	}
	c.Touch()
	return nil
}

// IsRoot returns true if this is a root category
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// CanHaveChildren returns true if categories may be created under this one.
func (c *Category) CanHaveChildren() bool {
	return c.Level < MaxCategoryLevel
}

// ValidateHierarchy checks the level arithmetic for a category placed at
// the given level under the given parent (nil meaning root). Each write
// only needs this immediate-neighborhood check; because it holds at every
// write it holds transitively for the whole tree.
func ValidateHierarchy(level int, parent *Category) error {
	if level < MinCategoryLevel || level > MaxCategoryLevel {
		return NewHierarchyError(fmt.Sprintf("Category level must be between %d and %d", MinCategoryLevel, MaxCategoryLevel))
	}
	if parent == nil {
		if level != MinCategoryLevel {
			return NewHierarchyError("A category without a parent must be level 1")
		}
		return nil
	}
	if !parent.CanHaveChildren() {
		return NewHierarchyError(fmt.Sprintf("Level %d categories cannot have children", parent.Level))
	}
	if level != parent.Level+1 {
		return NewHierarchyError(fmt.Sprintf("Category level must be %d when the parent is level %d", parent.Level+1, parent.Level))
	}
	return nil
}

// validateCategoryName validates the category name
func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
