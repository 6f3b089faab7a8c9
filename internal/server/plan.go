// internal/server/plan.go
package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mcp-meal-plan/internal/models"
	"mcp-meal-plan/internal/parser"
)

const (
	defaultPlanName  = "Meal Plan"
	defaultListLimit = 20
)

// composePlan parses each day's text separately and joins the days into one
// plan. A day that fails to parse fails the whole plan.
func composePlan(name string, days []string) (*models.MealPlan, error) {
	if len(days) == 0 {
		return nil, parser.ErrEmptyInput
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultPlanName
	}

	now := time.Now().UTC()
	plan := &models.MealPlan{
		ID:        uuid.NewString(),
		PlanName:  name,
		Days:      make([]models.DayPlan, 0, len(days)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	for i, text := range days {
		result, err := parser.ParseWithOptions(text, parser.Options{Day: i + 1})
		if err != nil {
			if len(days) == 1 {
				return nil, err
			}
			return nil, fmt.Errorf("day %d: %w", i+1, err)
		}
		plan.Days = append(plan.Days, models.DayPlan{Day: result.Day, Meals: result.Meals})
	}

	return plan, nil
}

func (s *MealPlanServer) parseText(req *models.ParseRequest) (*models.ParseResult, error) {
	return parser.ParseWithOptions(req.Text, parser.Options{Day: req.Day})
}

func (s *MealPlanServer) savePlan(ctx context.Context, req *models.SavePlanRequest) (*models.MealPlan, error) {
	if req.Text != "" && len(req.Days) > 0 {
		return nil, fmt.Errorf("%w: set either text or days, not both", errInvalidParams)
	}

	days := req.Days
	if len(days) == 0 {
		days = []string{req.Text}
	}

	plan, err := composePlan(req.PlanName, days)
	if err != nil {
		return nil, err
	}

	if err := s.storage.SaveMealPlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}
	return plan, nil
}

func (s *MealPlanServer) getPlan(ctx context.Context, id string) (*models.MealPlan, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: plan id is required", errInvalidParams)
	}
	return s.storage.GetMealPlan(ctx, id)
}

func (s *MealPlanServer) listPlans(ctx context.Context, limit int) ([]*models.MealPlan, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	plans, err := s.storage.ListMealPlans(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve meal plans: %w", err)
	}
	return plans, nil
}

func (s *MealPlanServer) deletePlan(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: plan id is required", errInvalidParams)
	}
	return s.storage.DeleteMealPlan(ctx, id)
}
