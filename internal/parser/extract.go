// internal/parser/extract.go
package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"mcp-meal-plan/internal/models"
)

const (
	// bulletMarkers always start an ingredient line.
	bulletMarkers = "-•–—·◦▪"
	// spacedBulletMarkers only count as bullets when whitespace follows, so
	// "*Post workout*" stays a header.
	spacedBulletMarkers = "*+"
)

// units maps every accepted unit spelling to its canonical token.
var units = map[string]string{
	"g": "g", "gr": "g", "gram": "g", "grams": "g",
	"kg": "kg", "kgs": "kg", "kilo": "kg", "kilos": "kg", "kilogram": "kg", "kilograms": "kg",
	"ml": "ml", "milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"l": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"cup": "cup", "cups": "cup",
	"tbsp": "tbsp", "tbsps": "tbsp", "tbs": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp",
	"tsp": "tsp", "tsps": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"piece": "piece", "pieces": "piece", "pc": "piece", "pcs": "piece",
	"slice": "slice", "slices": "slice",
	"x": models.UnitCount,
}

func lookupUnit(token string) (string, bool) {
	u, ok := units[strings.ToLower(token)]
	return u, ok
}

// ClassifiedBlock is a block split into its optional header and the lines
// that may hold ingredients.
type ClassifiedBlock struct {
	Index           int
	Header          string
	HasHeader       bool
	IngredientLines []string
	Ingredients     []models.Ingredient
}

// bulletWidth returns the byte length of the bullet marker opening line, or 0.
func bulletWidth(line string) int {
	r, n := utf8.DecodeRuneInString(line)
	switch {
	case n == 0:
		return 0
	case strings.ContainsRune(bulletMarkers, r):
		return n
	case strings.ContainsRune(spacedBulletMarkers, r):
		next, _ := utf8.DecodeRuneInString(line[n:])
		if n == len(line) || unicode.IsSpace(next) {
			return n
		}
	}
	return 0
}

func hasBullet(line string) bool {
	return bulletWidth(line) > 0
}

func stripBullet(line string) string {
	s := strings.TrimSpace(line)
	for n := bulletWidth(s); n > 0; n = bulletWidth(s) {
		s = strings.TrimSpace(s[n:])
	}
	return s
}

// classify treats the first line as the meal header unless it is bulleted, in
// which case every line of the block is an ingredient candidate.
func classify(lines []string) ClassifiedBlock {
	if len(lines) == 0 {
		return ClassifiedBlock{}
	}
	first := strings.TrimSpace(lines[0])
	if first == "" || hasBullet(first) {
		return ClassifiedBlock{IngredientLines: lines}
	}
	return ClassifiedBlock{
		Header:          first,
		HasHeader:       true,
		IngredientLines: lines[1:],
	}
}

// matcher reports whether its pattern claims a line. A claimed line is never
// handed to a later matcher, even when it leaves no name.
type matcher struct {
	name  string
	match func(s string) (models.Ingredient, bool)
}

// A decimal amount or a range of two ("2-3", "1.5 – 2").
const amountPattern = `(\d+(?:\.\d*)?(?:\s*[-–]\s*\d+(?:\.\d*)?)?)`

var (
	// 175g of rice, 2.5kg potatoes, 3x eggs
	attachedUnitRe = regexp.MustCompile(`^` + amountPattern + `([A-Za-z]+)\.?(?:\s+of\b)?\s*(.*)$`)
	// 2 cups of oats, 1 tbsp. honey
	spacedUnitRe = regexp.MustCompile(`^` + amountPattern + `\s+([A-Za-z]+)\.?(?:\s+of\b)?\s*(.*)$`)
	// 4 eggs
	bareAmountRe = regexp.MustCompile(`^` + amountPattern + `\s*(.*)$`)
)

func unitMatcher(re *regexp.Regexp) func(string) (models.Ingredient, bool) {
	return func(s string) (models.Ingredient, bool) {
		m := re.FindStringSubmatch(s)
		if m == nil {
			return models.Ingredient{}, false
		}
		unit, ok := lookupUnit(m[2])
		if !ok {
			return models.Ingredient{}, false
		}
		return models.Ingredient{Name: m[3], Amount: normalizeAmount(m[1]), Unit: unit}, true
	}
}

// normalizeAmount keeps the digits as given and writes a range as "lo-hi".
func normalizeAmount(amount string) string {
	amount = strings.ReplaceAll(amount, "–", "-")
	return strings.Join(strings.Fields(amount), "")
}

// matchers are tried in order; the first to claim a line decides it.
var matchers = []matcher{
	{name: "amount+unit", match: unitMatcher(attachedUnitRe)},
	{name: "amount unit", match: unitMatcher(spacedUnitRe)},
	{name: "amount name", match: func(s string) (models.Ingredient, bool) {
		m := bareAmountRe.FindStringSubmatch(s)
		if m == nil {
			return models.Ingredient{}, false
		}
		return models.Ingredient{Name: m[2], Amount: normalizeAmount(m[1]), Unit: models.UnitCount}, true
	}},
	{name: "name", match: func(s string) (models.Ingredient, bool) {
		return models.Ingredient{Name: s}, true
	}},
}

// cleanName collapses internal whitespace and drops separator punctuation
// left between the quantity and the name ("2 - eggs", "100g: oats").
func cleanName(name string) string {
	name = strings.TrimLeft(strings.TrimSpace(name), "-–—:,;")
	return strings.Join(strings.Fields(name), " ")
}

// extractIngredient parses one ingredient line. It returns false when the line
// holds nothing but a bullet and whitespace, or when a quantity is not followed
// by a name ("- 100g", "- 2 cups of").
func extractIngredient(line string) (models.Ingredient, bool) {
	s := stripBullet(line)
	if s == "" {
		return models.Ingredient{}, false
	}
	for _, m := range matchers {
		ing, ok := m.match(s)
		if !ok {
			continue
		}
		ing.Name = cleanName(ing.Name)
		if ing.Name == "" {
			return models.Ingredient{}, false
		}
		return ing, true
	}
	return models.Ingredient{}, false
}
