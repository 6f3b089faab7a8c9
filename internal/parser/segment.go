// internal/parser/segment.go
package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"mcp-meal-plan/internal/models"
)

var (
	// "Meal 1", "meal #2 - post workout", "MEAL 3:"
	mealMarkerRe = regexp.MustCompile(`(?i)^meal\s*#?\s*(\d+)\b\s*[:.)\-–—]*\s*(.*)$`)

	// "Breakfast: oats", "snack:" (the description may be empty)
	categoryPrefixRe = regexp.MustCompile(`(?i)^(breakfast|lunch|dinner|snacks?)\s*:\s*(.*)$`)
)

// RawBlock is a run of input lines that provisionally belongs to one meal.
type RawBlock struct {
	Index int
	Lines []string
}

func isMealMarker(line string) bool {
	return mealMarkerRe.MatchString(line)
}

// categoryPrefix reports the category named by a "Category: description"
// line and the description that follows the colon.
func categoryPrefix(line string) (models.Category, string, bool) {
	m := categoryPrefixRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	name := strings.ToLower(m[1])
	name = strings.TrimSuffix(name, "s")
	return models.Category(name), strings.TrimSpace(m[2]), true
}

func isCategoryLine(line string) bool {
	return categoryPrefixRe.MatchString(line)
}

// unwrapEmphasis removes markdown bold and italic markers from a line that
// opens with one: "**Meal 2**" reads as "Meal 2". A "* " bullet is left alone.
func unwrapEmphasis(line string) string {
	if len(line) < 2 || (line[0] != '*' && line[0] != '_') {
		return line
	}
	if r, _ := utf8.DecodeRuneInString(line[1:]); unicode.IsSpace(r) {
		return line
	}
	line = strings.ReplaceAll(line, "**", "")
	line = strings.ReplaceAll(line, "__", "")
	return strings.TrimSpace(strings.Trim(line, "*_"))
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = unwrapEmphasis(strings.TrimSpace(strings.TrimSuffix(l, "\r")))
	}
	return lines
}

// segment splits text into meal-sized blocks.
//
// Blank lines end a block, and a "Meal N" marker or a category prefix line
// always starts a new one. When the first line is itself a category line the
// input is in the one-meal-per-line format: blank lines are ignored and only
// header lines start blocks.
func segment(text string) ([]RawBlock, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyInput
	}

	lines := splitLines(trimmed)
	simple := isCategoryLine(lines[0])

	var blocks []RawBlock
	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		blocks = append(blocks, RawBlock{Index: len(blocks), Lines: current})
		current = nil
	}

	for _, line := range lines {
		if line == "" {
			if !simple {
				flush()
			}
			continue
		}
		if isMealMarker(line) || isCategoryLine(line) {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return blocks, nil
}
