// internal/parser/categorize.go
package parser

import (
	"mcp-meal-plan/internal/models"
)

// CategorizedMeal is a classified block with its category settled.
type CategorizedMeal struct {
	ClassifiedBlock
	Category models.Category
	// Explicit is set when the category came from a "Category:" prefix.
	Explicit bool
}

// positionalCategory returns the default category for the meal at position i.
// Meals past the fourth stay snacks rather than starting a new day.
func positionalCategory(i int) models.Category {
	switch i {
	case 0:
		return models.Breakfast
	case 1:
		return models.Lunch
	case 2:
		return models.Dinner
	}
	return models.Snack
}

func categorize(blocks []ClassifiedBlock) []CategorizedMeal {
	meals := make([]CategorizedMeal, 0, len(blocks))
	for i, b := range blocks {
		m := CategorizedMeal{ClassifiedBlock: b, Category: positionalCategory(i)}
		if b.HasHeader {
			if cat, _, ok := categoryPrefix(b.Header); ok && cat.Valid() {
				m.Category = cat
				m.Explicit = true
			}
		}
		meals = append(meals, m)
	}
	return meals
}
