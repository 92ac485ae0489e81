package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pawhub/internal/schedule"
	"pawhub/internal/storage/sqlite"
)

// Server provides the HTTP handlers for the training-plan backend.
type Server struct {
	engine       *gin.Engine
	store        *sqlite.Store
	logger       *slog.Logger
	staticDir    string
	defaultOwner string
}

// New constructs the HTTP server with routes and middleware configured.
// defaultOwner is the user id assumed when a request carries no identity
// header; it may be empty, in which case identity is required per request.
func New(store *sqlite.Store, logger *slog.Logger, staticDir, defaultOwner string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api"))

	srv := &Server{
		engine:       router,
		store:        store,
		logger:       logger,
		staticDir:    staticDir,
		defaultOwner: defaultOwner,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		pets := api.Group("/pets")
		{
			pets.GET("", s.handleListPets)
			pets.POST("", s.handleCreatePet)
			pets.PUT(":id", s.handleUpdatePet)
			pets.DELETE(":id", s.handleDeletePet)
			pets.GET(":id/plan", s.handleWeekPlan)
			pets.POST(":id/tasks", s.handleCreateTask)
			pets.POST(":id/reorder", s.handleReorderTasks)
		}

		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.PATCH("/tasks/:id/complete", s.handleCompleteTask)
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err != nil {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondScheduleError maps the scheduler's error taxonomy onto HTTP
// statuses: validation problems render as a per-field map, missing tasks as
// 404, backend failures as 502.
func (s *Server) respondScheduleError(c *gin.Context, err error) {
	var verr *schedule.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Fields})
		return
	}
	var nferr *schedule.NotFoundError
	if errors.As(err, &nferr) {
		s.respondError(c, http.StatusNotFound, err)
		return
	}
	var serr *schedule.StorageError
	if errors.As(err, &serr) {
		s.respondError(c, http.StatusBadGateway, err)
		return
	}
	s.respondError(c, http.StatusInternalServerError, err)
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
