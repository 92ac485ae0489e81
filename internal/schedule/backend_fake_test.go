package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"pawhub/internal/models"
)

// fakeBackend is an in-memory persistence collaborator for tests. Failures
// are injected per operation; update calls are recorded in arrival order.
type fakeBackend struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]models.Task

	listCalls   int
	updateCalls []fieldUpdate

	listErr   error
	insertErr error
	deleteErr error
	// updateErr is consulted before each UpdateTaskFields call with the
	// 1-based call number.
	updateErr func(call int) error
}

type fieldUpdate struct {
	id     int64
	fields map[string]any
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{tasks: map[int64]models.Task{}}
}

func (f *fakeBackend) seed(petID int64, day models.DayOfWeek, titles ...string) []models.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Task
	for i, title := range titles {
		f.nextID++
		t := models.Task{
			ID:              f.nextID,
			PetID:           petID,
			OwnerID:         "owner",
			Day:             day,
			Title:           title,
			Category:        models.Obedience,
			Time:            "09:00",
			DurationMinutes: 15,
			Order:           i + 1,
		}
		f.tasks[t.ID] = t
		out = append(out, t)
	}
	return out
}

func (f *fakeBackend) ListTasks(_ context.Context, petID int64) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Task
	for _, t := range f.tasks {
		if t.PetID == petID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBackend) InsertTask(_ context.Context, t models.Task) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return models.Task{}, f.insertErr
	}
	f.nextID++
	t.ID = f.nextID
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeBackend) UpdateTaskFields(_ context.Context, id int64, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		if err := f.updateErr(len(f.updateCalls) + 1); err != nil {
			return err
		}
	}
	t, ok := f.tasks[id]
	if !ok {
		return fmt.Errorf("task %d not found", id)
	}
	for name, value := range fields {
		switch name {
		case "title":
			t.Title = value.(string)
		case "category":
			t.Category = models.Category(value.(string))
		case "description":
			t.Description = value.(string)
		case "time":
			t.Time = value.(string)
		case "duration_minutes":
			t.DurationMinutes = value.(int)
		case "day_of_week":
			t.Day = models.DayOfWeek(value.(string))
		case "completed":
			t.Completed = value.(bool)
		case "order":
			t.Order = value.(int)
		default:
			return fmt.Errorf("unknown field %q", name)
		}
	}
	f.tasks[id] = t
	f.updateCalls = append(f.updateCalls, fieldUpdate{id: id, fields: fields})
	return nil
}

func (f *fakeBackend) DeleteTask(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.tasks[id]; !ok {
		return fmt.Errorf("task %d not found", id)
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeBackend) task(id int64) models.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tasks[id]
}
