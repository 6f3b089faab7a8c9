package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcp-meal-plan/internal/models"
)

func TestExtractIngredient(t *testing.T) {
	tests := []struct {
		name string
		line string
		want models.Ingredient
	}{
		{"attached unit with of", "-175g of Jasmine Rice", models.Ingredient{Name: "Jasmine Rice", Amount: "175", Unit: "g"}},
		{"spaced unit with of", "- 2 cups of oats", models.Ingredient{Name: "oats", Amount: "2", Unit: "cup"}},
		{"unit without of", "• 200g chicken breast", models.Ingredient{Name: "chicken breast", Amount: "200", Unit: "g"}},
		{"bare count", "-4 eggs", models.Ingredient{Name: "eggs", Amount: "4", Unit: models.UnitCount}},
		{"no quantity", "- chicken wrap", models.Ingredient{Name: "chicken wrap"}},
		{"decimal kept verbatim", "-175.5g of rice", models.Ingredient{Name: "rice", Amount: "175.5", Unit: "g"}},
		{"upper case unit", "-100G of Turkey", models.Ingredient{Name: "Turkey", Amount: "100", Unit: "g"}},
		{"plural unit canonical", "-2 pieces of sourdough bread", models.Ingredient{Name: "sourdough bread", Amount: "2", Unit: "piece"}},
		{"long form unit", "- 1 tablespoon peanut butter", models.Ingredient{Name: "peanut butter", Amount: "1", Unit: "tbsp"}},
		{"unit with period", "- 1 tbsp. honey", models.Ingredient{Name: "honey", Amount: "1", Unit: "tbsp"}},
		{"trailing parenthetical kept", "-1 banana (100g)", models.Ingredient{Name: "banana (100g)", Amount: "1", Unit: models.UnitCount}},
		{"word starting with unit letter", "- 2 lemons", models.Ingredient{Name: "lemons", Amount: "2", Unit: models.UnitCount}},
		{"of is not stripped from words", "- 150g offal", models.Ingredient{Name: "offal", Amount: "150", Unit: "g"}},
		{"multiplier", "- 3x egg whites", models.Ingredient{Name: "egg whites", Amount: "3", Unit: models.UnitCount}},
		{"whitespace collapsed", "-  1   slice  of   toast ", models.Ingredient{Name: "toast", Amount: "1", Unit: "slice"}},
		{"unbulleted line", "50g oats", models.Ingredient{Name: "oats", Amount: "50", Unit: "g"}},
		{"star bullet", "* 2 eggs", models.Ingredient{Name: "eggs", Amount: "2", Unit: models.UnitCount}},
		{"plus bullet", "+ 1 apple", models.Ingredient{Name: "apple", Amount: "1", Unit: models.UnitCount}},
		{"range amount", "- 2-3 eggs", models.Ingredient{Name: "eggs", Amount: "2-3", Unit: models.UnitCount}},
		{"spaced en dash range", "- 1.5 – 2 cups of rice", models.Ingredient{Name: "rice", Amount: "1.5-2", Unit: "cup"}},
		{"attached unit range", "-100-150g chicken", models.Ingredient{Name: "chicken", Amount: "100-150", Unit: "g"}},
		{"separator after amount", "- 2 - eggs", models.Ingredient{Name: "eggs", Amount: "2", Unit: models.UnitCount}},
		{"colon after unit", "- 100g: oats", models.Ingredient{Name: "oats", Amount: "100", Unit: "g"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractIngredient(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractIngredientDropsEmptyLines(t *testing.T) {
	for _, line := range []string{"", "   ", "-", "•", "- ", " • \t"} {
		_, ok := extractIngredient(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestExtractIngredientDropsQuantityWithoutName(t *testing.T) {
	for _, line := range []string{"- 100g", "- 2 cups", "- 2 cups of", "-3x", "- 250", "- 2-3"} {
		got, ok := extractIngredient(line)
		assert.False(t, ok, "line %q", line)
		assert.Equal(t, models.Ingredient{}, got, "line %q", line)
	}
}

func TestMatcherPrecedence(t *testing.T) {
	names := make([]string, 0, len(matchers))
	for _, m := range matchers {
		names = append(names, m.name)
	}
	assert.Equal(t, []string{"amount+unit", "amount unit", "amount name", "name"}, names)
}

func TestClassify(t *testing.T) {
	t.Run("header line", func(t *testing.T) {
		cb := classify([]string{"Meal 1", "-4 eggs"})
		assert.True(t, cb.HasHeader)
		assert.Equal(t, "Meal 1", cb.Header)
		assert.Equal(t, []string{"-4 eggs"}, cb.IngredientLines)
	})

	t.Run("bulleted first line", func(t *testing.T) {
		cb := classify([]string{"• 4 eggs", "- toast"})
		assert.False(t, cb.HasHeader)
		assert.Empty(t, cb.Header)
		assert.Equal(t, []string{"• 4 eggs", "- toast"}, cb.IngredientLines)
	})

	t.Run("emphasised header is not a bullet", func(t *testing.T) {
		cb := classify([]string{"*Post workout*", "- eggs"})
		assert.True(t, cb.HasHeader)
		assert.Equal(t, "*Post workout*", cb.Header)
		assert.Equal(t, []string{"- eggs"}, cb.IngredientLines)
	})

	t.Run("star bullet first line", func(t *testing.T) {
		cb := classify([]string{"* 2 eggs", "+ toast"})
		assert.False(t, cb.HasHeader)
		assert.Equal(t, []string{"* 2 eggs", "+ toast"}, cb.IngredientLines)
	})

	t.Run("empty block", func(t *testing.T) {
		cb := classify(nil)
		assert.False(t, cb.HasHeader)
		assert.Empty(t, cb.IngredientLines)
	})
}

func TestStripBullet(t *testing.T) {
	tests := map[string]string{
		"- eggs":    "eggs",
		"-4 eggs":   "4 eggs",
		"• toast":   "toast",
		"* oats":    "oats",
		"*oats*":    "*oats*",
		"+1 apple":  "+1 apple",
		"-- rice":   "rice",
		"  ▪  tea ": "tea",
		"*":         "",
	}
	for line, want := range tests {
		assert.Equal(t, want, stripBullet(line), "line %q", line)
	}
}
