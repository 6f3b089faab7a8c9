// internal/models/meal.go
package models

import (
	"time"
)

type Category string

const (
	Breakfast Category = "breakfast"
	Lunch     Category = "lunch"
	Dinner    Category = "dinner"
	Snack     Category = "snack"
)

func (c Category) Valid() bool {
	switch c {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

// UnitCount marks an ingredient that has an amount but no unit ("4 eggs").
const UnitCount = "count"

type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`
}

type Meal struct {
	MealName    string       `json:"mealName"`
	Category    Category     `json:"category"`
	Ingredients []Ingredient `json:"ingredients"`
}

type ParseResult struct {
	Meals            []Meal `json:"meals"`
	Count            int    `json:"count"`
	MealsPerDay      int    `json:"mealsPerDay"`
	Days             int    `json:"days"`
	Day              int    `json:"day"`
	TotalIngredients int    `json:"totalIngredients"`
}

type DayPlan struct {
	Day   int    `json:"day"`
	Meals []Meal `json:"meals"`
}

type MealPlan struct {
	ID        string    `json:"id"`
	PlanName  string    `json:"planName"`
	Days      []DayPlan `json:"days"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ParseRequest struct {
	Text string `json:"text"`
	Day  int    `json:"day,omitempty"`
}

type SavePlanRequest struct {
	PlanName string   `json:"plan_name"`
	Text     string   `json:"text,omitempty"`
	Days     []string `json:"days,omitempty"`
}
