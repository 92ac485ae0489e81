package schedule

import (
	"context"
	"sort"
	"sync"

	"pawhub/internal/models"
)

// Backend is the slice of the persistence collaborator the scheduler needs.
// The SQLite store implements it in production; tests use an in-memory fake.
type Backend interface {
	ListTasks(ctx context.Context, petID int64) ([]models.Task, error)
	InsertTask(ctx context.Context, t models.Task) (models.Task, error)
	UpdateTaskFields(ctx context.Context, id int64, fields map[string]any) error
	DeleteTask(ctx context.Context, id int64) error
}

// TaskStore is the single source of truth for the in-memory task list of the
// currently selected pet. Every read and write goes through it; partitioning
// and reordering operate on its snapshots.
type TaskStore struct {
	mu      sync.Mutex
	backend Backend
	petID   int64
	tasks   []models.Task
}

// NewTaskStore builds an empty store over the given backend. Call Load
// before using it.
func NewTaskStore(backend Backend) *TaskStore {
	return &TaskStore{backend: backend}
}

// Load replaces the in-memory state with the backend's task list for petID.
// On failure the prior state is left untouched.
func (s *TaskStore) Load(ctx context.Context, petID int64) error {
	tasks, err := s.backend.ListTasks(ctx, petID)
	if err != nil {
		return storageErr("load", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.petID = petID
	s.tasks = tasks
	return nil
}

// PetID returns the pet whose tasks are currently loaded.
func (s *TaskStore) PetID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.petID
}

// Tasks returns a copy of the full in-memory task list.
func (s *TaskStore) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Partition returns the tasks of one weekday, sorted ascending by order.
func (s *TaskStore) Partition(day models.DayOfWeek) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Task
	for _, t := range s.tasks {
		if t.Day == day {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Create validates the raw form input, appends the task at the end of its
// day partition and persists it. selectedDay supplies the form's weekday
// default.
func (s *TaskStore) Create(ctx context.Context, in FormInput, selectedDay models.DayOfWeek, ownerID string) (models.Task, error) {
	fields, err := ParseForm(in, selectedDay)
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		PetID:           s.PetID(),
		OwnerID:         ownerID,
		Day:             fields.Day,
		Title:           fields.Title,
		Category:        fields.Category,
		Description:     fields.Description,
		Time:            fields.Time,
		DurationMinutes: fields.DurationMinutes,
		Completed:       false,
		Order:           s.nextOrder(fields.Day),
	}

	created, err := s.backend.InsertTask(ctx, task)
	if err != nil {
		return models.Task{}, storageErr("create", err)
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, created)
	s.mu.Unlock()
	return created, nil
}

// Update applies a validated field set to an existing task. Changing the
// weekday removes the task from its old partition without renumbering the
// remainder and appends it at the end of the new one. On backend failure
// the optimistic local change is reverted.
func (s *TaskStore) Update(ctx context.Context, id int64, in FormInput, selectedDay models.DayOfWeek) (models.Task, error) {
	fields, err := ParseForm(in, selectedDay)
	if err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.Task{}, &NotFoundError{ID: id}
	}
	prev := s.tasks[idx]

	next := prev
	next.Title = fields.Title
	next.Category = fields.Category
	next.Description = fields.Description
	next.Time = fields.Time
	next.DurationMinutes = fields.DurationMinutes
	next.Day = fields.Day

	changes := map[string]any{
		"title":            next.Title,
		"category":         string(next.Category),
		"description":      next.Description,
		"time":             next.Time,
		"duration_minutes": next.DurationMinutes,
	}
	if next.Day != prev.Day {
		next.Order = s.maxOrderLocked(next.Day) + 1
		changes["day_of_week"] = string(next.Day)
		changes["order"] = next.Order
	}

	s.tasks[idx] = next
	s.mu.Unlock()

	if err := s.backend.UpdateTaskFields(ctx, id, changes); err != nil {
		s.revert(id, prev)
		return models.Task{}, storageErr("update", err)
	}
	return next, nil
}

// Remove deletes the task remotely, then drops it from local state. A
// backend failure leaves local state unchanged. Surviving siblings keep
// their order values; gaps are tolerated until the next reorder.
func (s *TaskStore) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	s.mu.Unlock()
	if idx < 0 {
		return &NotFoundError{ID: id}
	}

	if err := s.backend.DeleteTask(ctx, id); err != nil {
		return storageErr("delete", err)
	}

	s.mu.Lock()
	if idx = s.indexOf(id); idx >= 0 {
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	}
	s.mu.Unlock()
	return nil
}

// SetCompleted toggles only the completed flag. Ordering is never touched.
func (s *TaskStore) SetCompleted(ctx context.Context, id int64, completed bool) (models.Task, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.Task{}, &NotFoundError{ID: id}
	}
	prev := s.tasks[idx]
	next := prev
	next.Completed = completed
	s.tasks[idx] = next
	s.mu.Unlock()

	if err := s.backend.UpdateTaskFields(ctx, id, map[string]any{"completed": completed}); err != nil {
		s.revert(id, prev)
		return models.Task{}, storageErr("update", err)
	}
	return next, nil
}

// SetOrder persists a single task's ordinal and applies it locally. Used by
// the reorder engine, which handles partial-failure resync itself.
func (s *TaskStore) SetOrder(ctx context.Context, id int64, order int) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return &NotFoundError{ID: id}
	}
	prev := s.tasks[idx]
	next := prev
	next.Order = order
	s.tasks[idx] = next
	s.mu.Unlock()

	if err := s.backend.UpdateTaskFields(ctx, id, map[string]any{"order": order}); err != nil {
		s.revert(id, prev)
		return storageErr("reorder", err)
	}
	return nil
}

func (s *TaskStore) nextOrder(day models.DayOfWeek) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxOrderLocked(day) + 1
}

func (s *TaskStore) maxOrderLocked(day models.DayOfWeek) int {
	max := 0
	for _, t := range s.tasks {
		if t.Day == day && t.Order > max {
			max = t.Order
		}
	}
	return max
}

func (s *TaskStore) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) revert(id int64, prev models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		s.tasks[idx] = prev
	}
}
