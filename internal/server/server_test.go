package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawhub/internal/models"
	"pawhub/internal/storage/sqlite"
)

const testOwner = "0b9fb3bc-2e63-4f0a-9a3f-1c5a86f6a001"

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return New(store, logger, "", testOwner)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createPet(t *testing.T, srv *Server, name string) models.Pet {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/api/pets", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Pet models.Pet `json:"pet"`
	}
	decode(t, rec, &resp)
	return resp.Pet
}

func createTask(t *testing.T, srv *Server, petID int64, title, day string) models.Task {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/pets/%d/tasks", petID), map[string]string{
		"title":            title,
		"time":             "09:00",
		"duration_minutes": "15",
		"day_of_week":      day,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Task models.Task `json:"task"`
	}
	decode(t, rec, &resp)
	return resp.Task
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPetLifecycle(t *testing.T) {
	srv := newTestServer(t)

	pet := createPet(t, srv, "Rex")
	assert.Equal(t, "Rex", pet.Name)
	assert.Equal(t, testOwner, pet.OwnerID)
	assert.NotEmpty(t, pet.Color)

	rec := doJSON(t, srv, http.MethodGet, "/api/pets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listResp struct {
		Pets []models.Pet `json:"pets"`
	}
	decode(t, rec, &listResp)
	require.Len(t, listResp.Pets, 1)

	rec = doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/pets/%d", pet.ID), map[string]string{"name": "Rexi", "breed": "Vizsla"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/pets/%d", pet.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/pets/%d", pet.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIdentityHeaderValidation(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/pets", nil)
	req.Header.Set("X-User-ID", "not-a-uuid")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdentityHeaderScopesPets(t *testing.T) {
	srv := newTestServer(t)
	createPet(t, srv, "Rex")

	req := httptest.NewRequest(http.MethodGet, "/api/pets", nil)
	req.Header.Set("X-User-ID", "f3b9d2a4-7c11-4a58-8e0d-52b0a2f9c777")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Pets []models.Pet `json:"pets"`
	}
	decode(t, rec, &resp)
	assert.Empty(t, resp.Pets)
}

func TestCreateTaskValidation(t *testing.T) {
	srv := newTestServer(t)
	pet := createPet(t, srv, "Rex")

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/pets/%d/tasks", pet.ID), map[string]string{
		"title":            "",
		"time":             "09:00",
		"duration_minutes": "30",
		"day_of_week":      "Mo",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, rec, &resp)
	assert.Contains(t, resp.Errors, "title")
}

func TestReorderEndpoint(t *testing.T) {
	srv := newTestServer(t)
	pet := createPet(t, srv, "Rex")
	a := createTask(t, srv, pet.ID, "A", "Mo")
	b := createTask(t, srv, pet.ID, "B", "Mo")
	c := createTask(t, srv, pet.ID, "C", "Mo")

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/pets/%d/reorder", pet.ID), map[string]any{
		"day_of_week": "Mo",
		"source_id":   a.ID,
		"target_id":   c.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Tasks []models.Task `json:"tasks"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp.Tasks, 3)
	assert.Equal(t, []int64{b.ID, c.ID, a.ID}, []int64{resp.Tasks[0].ID, resp.Tasks[1].ID, resp.Tasks[2].ID})
	for i, task := range resp.Tasks {
		assert.Equal(t, i+1, task.Order)
	}
}

func TestCompleteToggleKeepsOrder(t *testing.T) {
	srv := newTestServer(t)
	pet := createPet(t, srv, "Rex")
	createTask(t, srv, pet.ID, "A", "Mo")
	b := createTask(t, srv, pet.ID, "B", "Mo")

	rec := doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/complete", b.ID), map[string]any{"completed": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Task models.Task `json:"task"`
	}
	decode(t, rec, &resp)
	assert.True(t, resp.Task.Completed)
	assert.Equal(t, b.Order, resp.Task.Order)
}

func TestUpdateTaskAcrossDays(t *testing.T) {
	srv := newTestServer(t)
	pet := createPet(t, srv, "Rex")
	a := createTask(t, srv, pet.ID, "A", "Mo")
	b := createTask(t, srv, pet.ID, "B", "Mo")
	x := createTask(t, srv, pet.ID, "X", "Tu")

	rec := doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/tasks/%d", a.ID), map[string]string{
		"title":            "A",
		"time":             "09:00",
		"duration_minutes": "15",
		"day_of_week":      "Tu",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Task models.Task `json:"task"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, models.Tuesday, resp.Task.Day)
	assert.Equal(t, x.Order+1, resp.Task.Order)

	// Monday keeps B with its original ordinal.
	plan := fetchPlan(t, srv, pet.ID, 0)
	monday := plan.day(t, models.Monday)
	require.Len(t, monday.Tasks, 1)
	assert.Equal(t, b.ID, monday.Tasks[0].ID)
	assert.Equal(t, b.Order, monday.Tasks[0].Order)
}

type planDay struct {
	Day               models.DayOfWeek `json:"day_of_week"`
	Date              string           `json:"date"`
	Tasks             []models.Task    `json:"tasks"`
	CompletionPercent int              `json:"completion_percent"`
}

type planResponse struct {
	WeekStart string    `json:"week_start"`
	Days      []planDay `json:"days"`
}

func (p planResponse) day(t *testing.T, day models.DayOfWeek) planDay {
	t.Helper()
	for _, d := range p.Days {
		if d.Day == day {
			return d
		}
	}
	t.Fatalf("day %s missing from plan", day)
	return planDay{}
}

func fetchPlan(t *testing.T, srv *Server, petID int64, week int) planResponse {
	t.Helper()

	rec := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/pets/%d/plan?week=%d", petID, week), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp planResponse
	decode(t, rec, &resp)
	require.Len(t, resp.Days, 7)
	return resp
}

func TestWeekPlanCompletion(t *testing.T) {
	srv := newTestServer(t)
	pet := createPet(t, srv, "Rex")
	a := createTask(t, srv, pet.ID, "A", "Mo")
	createTask(t, srv, pet.ID, "B", "Mo")
	createTask(t, srv, pet.ID, "C", "Mo")
	createTask(t, srv, pet.ID, "D", "Mo")

	rec := doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/complete", a.ID), map[string]any{"completed": true})
	require.Equal(t, http.StatusOK, rec.Code)

	plan := fetchPlan(t, srv, pet.ID, 0)
	assert.Equal(t, 25, plan.day(t, models.Monday).CompletionPercent)
	assert.Equal(t, 0, plan.day(t, models.Sunday).CompletionPercent)
}

func TestDeleteTask(t *testing.T) {
	srv := newTestServer(t)
	pet := createPet(t, srv, "Rex")
	a := createTask(t, srv, pet.ID, "A", "Mo")
	b := createTask(t, srv, pet.ID, "B", "Mo")
	c := createTask(t, srv, pet.ID, "C", "Mo")

	rec := doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", b.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Survivors keep their ordinals; the gap closes on the next reorder.
	plan := fetchPlan(t, srv, pet.ID, 0)
	monday := plan.day(t, models.Monday)
	require.Len(t, monday.Tasks, 2)
	assert.Equal(t, a.Order, monday.Tasks[0].Order)
	assert.Equal(t, c.Order, monday.Tasks[1].Order)

	rec = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", b.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownTaskReturnsNotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPut, "/api/tasks/999", map[string]string{
		"title":            "Ghost",
		"time":             "09:00",
		"duration_minutes": "15",
		"day_of_week":      "Mo",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
