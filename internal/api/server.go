package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daily-journal/internal/service"
)

// Services are the operations exposed over HTTP.
type Services struct {
	Occurrences *service.OccurrenceService
	Tasks       *service.TaskService
	Completions *service.CompletionService
	Stats       *service.StatsService
	Moods       *service.MoodService
	Templates   *service.TemplateService
	Collections *service.CollectionService
	Clock       service.Clock
}

// Server is the journal HTTP API.
type Server struct {
	svc    Services
	router *gin.Engine
}

// NewServer creates the API router. User identity is read from the
// X-User-ID header set by the fronting session layer.
func NewServer(svc Services) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog())

	s := &Server{
		svc:    svc,
		router: router,
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api", requireUser())
	{
		api.POST("/occurrences/generate", s.handleGenerate)

		api.POST("/tasks", s.handleCreateTask)
		api.GET("/tasks/:id", s.handleTaskDetail)
		api.PATCH("/tasks/:id/recurrence", s.handleSetRecurrence)
		api.PATCH("/tasks/:id/state", s.handleSetState)
		api.DELETE("/tasks/:id", s.handleDeleteTask)

		api.POST("/completions", s.handleRecordCompletion)
		api.GET("/completions", s.handleListCompletions)
		api.DELETE("/completions", s.handleDeleteCompletion)

		api.GET("/stats", s.handleStats)
		api.POST("/moods", s.handleRecordMood)
		api.GET("/moods", s.handleListMoods)

		api.POST("/collections", s.handleCreateCollection)
		api.GET("/collections", s.handleListCollections)

		api.GET("/templates", s.handleListTemplates)
		api.POST("/templates/apply", s.handleApplyTemplate)
	}

	return s
}

// Handler exposes the router for an http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}
