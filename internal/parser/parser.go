// internal/parser/parser.go

// Package parser turns a hand-typed meal plan into structured meals.
//
// Parsing runs in four stages: segment splits the text into blocks, classify
// and extractIngredient turn each block into a header plus ingredients,
// categorize assigns meal categories and nameAndAssemble builds the result.
// Every stage is a pure function over the previous stage's output, so Parse is
// safe to call from any number of goroutines.
package parser

import (
	"errors"

	"mcp-meal-plan/internal/models"
)

// ParseError is the failure returned by Parse. No partial result accompanies it.
type ParseError struct {
	reason string
}

func (e *ParseError) Error() string {
	return e.reason
}

// Reason describes why the text could not be parsed.
func (e *ParseError) Reason() string {
	return e.reason
}

// ErrEmptyInput is returned when the input contains nothing but whitespace.
// Compare with errors.Is or IsEmptyInput.
var ErrEmptyInput = &ParseError{reason: "empty input"}

// IsEmptyInput reports whether err is, or wraps, ErrEmptyInput.
func IsEmptyInput(err error) bool {
	return errors.Is(err, ErrEmptyInput)
}

// Options are the explicit inputs a caller may attach to a parse.
type Options struct {
	// Day is the 1-based day the text describes. Zero means day 1.
	Day int
}

// Parse parses a single day's meal plan text.
func Parse(text string) (*models.ParseResult, error) {
	return ParseWithOptions(text, Options{})
}

// ParseWithOptions parses text and stamps opts onto the result.
func ParseWithOptions(text string, opts Options) (*models.ParseResult, error) {
	blocks, err := segment(text)
	if err != nil {
		return nil, err
	}

	classified := make([]ClassifiedBlock, 0, len(blocks))
	for _, b := range blocks {
		cb := classify(b.Lines)
		cb.Index = b.Index
		for _, line := range cb.IngredientLines {
			if ing, ok := extractIngredient(line); ok {
				cb.Ingredients = append(cb.Ingredients, ing)
			}
		}
		if !cb.HasHeader && len(cb.Ingredients) == 0 {
			continue
		}
		classified = append(classified, cb)
	}

	result := nameAndAssemble(categorize(classified))
	result.Day = opts.Day
	if result.Day <= 0 {
		result.Day = 1
	}
	return result, nil
}
