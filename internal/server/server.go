// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mcp-meal-plan/internal/config"
	"mcp-meal-plan/internal/parser"
	"mcp-meal-plan/internal/storage"
)

// Version is reported in the server info.
const Version = "1.0.0"

var errInvalidParams = errors.New("invalid parameters")

type toolHandler func(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

type MealPlanServer struct {
	router     *gin.Engine
	httpServer *http.Server
	storage    *storage.SQLiteStorage
	tools      map[string]toolHandler
	info       protocol.Implementation
	config     *config.Config
}

func NewMealPlanServer(cfg *config.Config) (*MealPlanServer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize database
	stor, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	s := &MealPlanServer{
		storage: stor,
		config:  cfg,
		info: protocol.Implementation{
			Name:    "meal-plan",
			Version: Version,
		},
	}

	s.registerTools()

	router := gin.Default()
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.POST("/", s.handleMCP)
	router.GET("/health", s.handleHealth)
	s.registerRoutes(router.Group("/api/v1"))
	s.router = router

	s.httpServer = &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	return s, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *MealPlanServer) Handler() http.Handler {
	return s.router
}

func (s *MealPlanServer) handleMCP(c *gin.Context) {
	var request protocol.CallToolRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid JSON: %v", err)})
		return
	}

	handler, ok := s.tools[request.Name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Unknown tool: %s", request.Name)})
		return
	}

	result, err := handler(c.Request.Context(), &request)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *MealPlanServer) handleHealth(c *gin.Context) {
	if err := s.storage.Ping(c.Request.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "server": s.info})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "server": s.info})
}

// statusForError maps parse failures and bad parameters to 400 and missing
// plans to 404. Anything else is a server error.
func statusForError(err error) int {
	var perr *parser.ParseError
	switch {
	case errors.As(err, &perr), errors.Is(err, errInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("Request failed: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *MealPlanServer) Start(ctx context.Context) error {
	log.Printf("Starting meal plan server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *MealPlanServer) Stop(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	if s.storage != nil {
		if cerr := s.storage.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (s *MealPlanServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
