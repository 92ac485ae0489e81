package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pawhub/internal/storage/sqlite"
)

type petRequest struct {
	Name  string `json:"name"`
	Breed string `json:"breed"`
	Color string `json:"color"`
}

// handleListPets returns the pets owned by the acting user.
func (s *Server) handleListPets(c *gin.Context) {
	ownerID, ok := s.currentUserID(c)
	if !ok {
		return
	}

	pets, err := s.store.ListPets(c.Request.Context(), ownerID)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"pets": pets})
}

// handleCreatePet registers a new dog profile for the acting user.
func (s *Server) handleCreatePet(c *gin.Context) {
	ownerID, ok := s.currentUserID(c)
	if !ok {
		return
	}

	var req petRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	pet, err := s.store.CreatePet(c.Request.Context(), ownerID, req.Name, req.Breed, req.Color)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"pet": pet})
}

// handleUpdatePet renames a pet or changes its breed or avatar color.
func (s *Server) handleUpdatePet(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req petRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	pet, err := s.store.UpdatePet(c.Request.Context(), id, req.Name, req.Breed, req.Color)
	if errors.Is(err, sqlite.ErrNotFound) {
		s.respondError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"pet": pet})
}

// handleDeletePet removes a pet and its entire training plan.
func (s *Server) handleDeletePet(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	err := s.store.DeletePet(c.Request.Context(), id)
	if errors.Is(err, sqlite.ErrNotFound) {
		s.respondError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}
