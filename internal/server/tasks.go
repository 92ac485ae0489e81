package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pawhub/internal/models"
	"pawhub/internal/schedule"
	"pawhub/internal/storage/sqlite"
)

// taskRequest is the raw task form as submitted by the client. Values stay
// strings so the schedule package owns validation and parsing; selected_day
// carries the weekday the view had open, used when day_of_week is blank.
type taskRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Time        string `json:"time"`
	Duration    string `json:"duration_minutes"`
	Day         string `json:"day_of_week"`
	Description string `json:"description"`
	SelectedDay string `json:"selected_day"`
}

func (r taskRequest) formInput() schedule.FormInput {
	return schedule.FormInput{
		Title:       r.Title,
		Category:    r.Category,
		Time:        r.Time,
		Duration:    r.Duration,
		Day:         r.Day,
		Description: r.Description,
	}
}

func (r taskRequest) selectedDay() models.DayOfWeek {
	day, err := models.ParseDay(r.SelectedDay)
	if err != nil {
		return ""
	}
	return day
}

type reorderRequest struct {
	Day      string `json:"day_of_week" binding:"required"`
	SourceID int64  `json:"source_id" binding:"required"`
	TargetID int64  `json:"target_id" binding:"required"`
}

type completeRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// loadedStore builds a task store primed with the pet's current task list.
func (s *Server) loadedStore(c *gin.Context, petID int64) (*schedule.TaskStore, bool) {
	store := schedule.NewTaskStore(s.store)
	if err := store.Load(c.Request.Context(), petID); err != nil {
		s.respondScheduleError(c, err)
		return nil, false
	}
	return store, true
}

// taskStoreFor resolves the pet owning a task and loads its plan.
func (s *Server) taskStoreFor(c *gin.Context, taskID int64) (*schedule.TaskStore, bool) {
	task, err := s.store.GetTask(c.Request.Context(), taskID)
	if errors.Is(err, sqlite.ErrNotFound) {
		s.respondError(c, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return nil, false
	}
	return s.loadedStore(c, task.PetID)
}

// handleCreateTask validates the form and appends a task to its day.
func (s *Server) handleCreateTask(c *gin.Context) {
	petID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ownerID, ok := s.currentUserID(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	store, ok := s.loadedStore(c, petID)
	if !ok {
		return
	}

	task, err := store.Create(c.Request.Context(), req.formInput(), req.selectedDay(), ownerID)
	if err != nil {
		s.respondScheduleError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"task": task})
}

// handleUpdateTask resubmits the edit form for a task. A changed weekday
// moves the task to the end of its new day.
func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	store, ok := s.taskStoreFor(c, id)
	if !ok {
		return
	}

	task, err := store.Update(c.Request.Context(), id, req.formInput(), req.selectedDay())
	if err != nil {
		s.respondScheduleError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleDeleteTask removes a task after explicit user confirmation
// client-side. Sibling ordinals keep their values.
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	store, ok := s.taskStoreFor(c, id)
	if !ok {
		return
	}

	if err := store.Remove(c.Request.Context(), id); err != nil {
		s.respondScheduleError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// handleCompleteTask toggles only the completed flag.
func (s *Server) handleCompleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	store, ok := s.taskStoreFor(c, id)
	if !ok {
		return
	}

	task, err := store.SetCompleted(c.Request.Context(), id, *req.Completed)
	if err != nil {
		s.respondScheduleError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleReorderTasks applies a completed drag gesture: the source task takes
// the target task's position within the same day.
func (s *Server) handleReorderTasks(c *gin.Context) {
	petID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	day, err := models.ParseDay(req.Day)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	store, ok := s.loadedStore(c, petID)
	if !ok {
		return
	}

	engine := schedule.NewReorderer(store)
	if err := engine.Reorder(c.Request.Context(), day, req.SourceID, req.TargetID); err != nil {
		s.respondScheduleError(c, err)
		return
	}

	partition := store.Partition(day)
	respondSuccess(c, http.StatusOK, gin.H{"tasks": partition})
}
