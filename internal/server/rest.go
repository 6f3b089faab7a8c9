// internal/server/rest.go
package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mcp-meal-plan/internal/models"
)

func (s *MealPlanServer) registerRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plans")
	{
		plans.POST("/parse", s.ParseMealPlan)
		plans.POST("", s.CreateMealPlan)
		plans.GET("", s.ListMealPlans)
		plans.GET("/:id", s.GetMealPlan)
		plans.DELETE("/:id", s.DeleteMealPlan)
	}
}

func (s *MealPlanServer) ParseMealPlan(c *gin.Context) {
	var req models.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.parseText(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *MealPlanServer) CreateMealPlan(c *gin.Context) {
	var req models.SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := s.savePlan(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (s *MealPlanServer) ListMealPlans(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(c, fmt.Errorf("%w: invalid limit %q", errInvalidParams, v))
			return
		}
		limit = n
	}

	plans, err := s.listPlans(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meal_plans": plans,
		"count":      len(plans),
	})
}

func (s *MealPlanServer) GetMealPlan(c *gin.Context) {
	plan, err := s.getPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (s *MealPlanServer) DeleteMealPlan(c *gin.Context) {
	id := c.Param("id")
	if err := s.deletePlan(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Meal plan deleted successfully",
		"id":      id,
	})
}
