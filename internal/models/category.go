// internal/models/category.go
package models

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

type Category struct {
	BaseModel
	Name             string     `json:"name" gorm:"size:100;not null"`
	Slug             string     `json:"slug" gorm:"size:120;not null;uniqueIndex"`
	Description      string     `json:"description,omitempty" gorm:"type:text"`
	ParentCategoryID *uuid.UUID `json:"parent_category,omitempty" gorm:"type:uuid;index"`
	Level            int        `json:"level" gorm:"not null"`
	IsActive         bool       `json:"is_active" gorm:"not null"`

	Subcategories []Category `json:"subcategories,omitempty" gorm:"-"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify lowercases name and replaces each run of whitespace with a hyphen.
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
