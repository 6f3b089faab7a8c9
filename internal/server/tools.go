// internal/server/tools.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"mcp-meal-plan/internal/models"
)

type PlanIDParams struct {
	ID string `json:"id" description:"Meal plan ID"`
}

type ListPlansParams struct {
	Limit int `json:"limit,omitempty" description:"Maximum number of meal plans to return"`
}

// extractParams safely extracts parameters from the request arguments
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	// Convert the Arguments map to JSON bytes, then unmarshal to target
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal arguments: %v", errInvalidParams, err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}

	return nil
}

// handleParseMealPlan parses plan text without storing it
func (s *MealPlanServer) handleParseMealPlan(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params models.ParseRequest
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	result, err := s.parseText(&params)
	if err != nil {
		return nil, err
	}

	return s.createJSONResponse(result)
}

// handleSaveMealPlan parses one or more days of text and stores the plan
func (s *MealPlanServer) handleSaveMealPlan(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params models.SavePlanRequest
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	plan, err := s.savePlan(ctx, &params)
	if err != nil {
		return nil, err
	}

	return s.createJSONResponse(plan)
}

func (s *MealPlanServer) handleGetMealPlan(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params PlanIDParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	plan, err := s.getPlan(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	return s.createJSONResponse(plan)
}

func (s *MealPlanServer) handleListMealPlans(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ListPlansParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	plans, err := s.listPlans(ctx, params.Limit)
	if err != nil {
		return nil, err
	}

	return s.createJSONResponse(plans)
}

func (s *MealPlanServer) handleDeleteMealPlan(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params PlanIDParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	if err := s.deletePlan(ctx, params.ID); err != nil {
		return nil, err
	}

	return s.createJSONResponse(map[string]interface{}{
		"deleted": true,
		"id":      params.ID,
	})
}

func (s *MealPlanServer) registerTools() {
	s.tools = map[string]toolHandler{
		"parse_meal_plan":  s.handleParseMealPlan,
		"save_meal_plan":   s.handleSaveMealPlan,
		"get_meal_plan":    s.handleGetMealPlan,
		"list_meal_plans":  s.handleListMealPlans,
		"delete_meal_plan": s.handleDeleteMealPlan,
	}

	for name := range s.tools {
		log.Printf("Registered tool: %s", name)
	}
}
