// internal/parser/name.go
package parser

import (
	"fmt"
	"strings"

	"mcp-meal-plan/internal/models"
)

// nameLimit is how many ingredients a synthesized meal name mentions.
const nameLimit = 3

// headerName strips a category prefix or "Meal N" marker from a header and
// returns whatever description is left.
func headerName(header string) string {
	header = strings.TrimSpace(header)
	if _, desc, ok := categoryPrefix(header); ok {
		return desc
	}
	if m := mealMarkerRe.FindStringSubmatch(header); m != nil {
		return strings.TrimSpace(m[2])
	}
	return header
}

// joinNames renders names as "a", "a and b" or "a, b, and c".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
}

func synthesizeName(ingredients []models.Ingredient, position int) string {
	if len(ingredients) == 0 {
		return fmt.Sprintf("Untitled Meal %d", position)
	}
	n := min(len(ingredients), nameLimit)
	names := make([]string, 0, n)
	for _, ing := range ingredients[:n] {
		names = append(names, ing.Name)
	}
	return joinNames(names)
}

func nameAndAssemble(meals []CategorizedMeal) *models.ParseResult {
	result := &models.ParseResult{
		Meals: make([]models.Meal, 0, len(meals)),
		Days:  1,
	}

	for i, m := range meals {
		ingredients := m.Ingredients
		if ingredients == nil {
			ingredients = []models.Ingredient{}
		}

		name := ""
		if m.HasHeader {
			name = headerName(m.Header)
		}
		if name == "" {
			name = synthesizeName(ingredients, i+1)
		}

		result.Meals = append(result.Meals, models.Meal{
			MealName:    name,
			Category:    m.Category,
			Ingredients: ingredients,
		})
		result.TotalIngredients += len(ingredients)
	}

	result.Count = len(result.Meals)
	result.MealsPerDay = result.Count
	return result
}
