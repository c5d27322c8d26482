package catalog

import (
	"strings"

	"github.com/hirehub/backend/internal/domain/shared"
)

// Category classifies an employee in the catalog.
// The set is closed: anything outside it is rejected at parse time rather
// than silently ignored as a filter.
type Category string

const (
	CategoryAll       Category = "all"
	CategoryAssistant Category = "assistant"
	CategoryDesign    Category = "design"
	CategoryDev       Category = "dev"
	CategoryMarketing Category = "marketing"
	CategoryOps       Category = "ops"
)

// Categories lists every concrete category (excluding the "all" pseudo-filter)
func Categories() []Category {
	return []Category{
		CategoryAssistant,
		CategoryDesign,
		CategoryDev,
		CategoryMarketing,
		CategoryOps,
	}
}

// IsValid reports whether c is a known concrete category
func (c Category) IsValid() bool {
	switch c {
	case CategoryAssistant, CategoryDesign, CategoryDev, CategoryMarketing, CategoryOps:
		return true
	}
	return false
}

// IsFilter reports whether c can be used as a catalog filter.
// The empty string and "all" both mean "no category filter".
func (c Category) IsFilter() bool {
	return c == "" || c == CategoryAll || c.IsValid()
}

// ParseCategory parses a raw category string.
// Empty input and "all" map to CategoryAll; unknown values fail closed.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" || c == CategoryAll {
		return CategoryAll, nil
	}
	if !c.IsValid() {
		return "", shared.NewDomainError("INVALID_QUERY", "Unknown category: "+raw)
	}
	return c, nil
}
