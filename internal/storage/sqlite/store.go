package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"pawhub/internal/models"
)

// ErrNotFound is returned when a row id does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps access to the SQLite database and exposes the persistence
// contract the scheduler consumes: pets are the read-only selector, training
// tasks carry the per-day ordinals.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open initializes a new SQLite store and runs the required migrations.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	s := &Store{db: conn, logger: logger}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS pets (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            owner_id TEXT NOT NULL,
            name TEXT NOT NULL,
            breed TEXT NOT NULL DEFAULT '',
            color TEXT NOT NULL DEFAULT '#2563eb',
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS training_tasks (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            pet_id INTEGER NOT NULL,
            owner_id TEXT NOT NULL,
            day_of_week TEXT NOT NULL,
            title TEXT NOT NULL,
            category TEXT NOT NULL DEFAULT 'obedience',
            description TEXT NOT NULL DEFAULT '',
            time TEXT NOT NULL DEFAULT '',
            duration_minutes INTEGER NOT NULL DEFAULT 0,
            completed INTEGER NOT NULL DEFAULT 0,
            position INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            FOREIGN KEY(pet_id) REFERENCES pets(id) ON DELETE CASCADE
        );`,
		`CREATE INDEX IF NOT EXISTS idx_pets_owner ON pets(owner_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_pet ON training_tasks(pet_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_pet_day ON training_tasks(pet_id, day_of_week);`,
		`CREATE TRIGGER IF NOT EXISTS trg_pets_updated
            AFTER UPDATE ON pets
            FOR EACH ROW BEGIN
                UPDATE pets SET updated_at = CURRENT_TIMESTAMP WHERE id = OLD.id;
            END;`,
		`CREATE TRIGGER IF NOT EXISTS trg_tasks_updated
            AFTER UPDATE ON training_tasks
            FOR EACH ROW BEGIN
                UPDATE training_tasks SET updated_at = CURRENT_TIMESTAMP WHERE id = OLD.id;
            END;`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// ListPets retrieves the pets owned by one user, oldest first.
func (s *Store) ListPets(ctx context.Context, ownerID string) ([]models.Pet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, owner_id, name, breed, color, created_at, updated_at
        FROM pets WHERE owner_id = ? ORDER BY created_at ASC, id ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	defer rows.Close()

	var pets []models.Pet
	for rows.Next() {
		var p models.Pet
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Breed, &p.Color, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

// CreatePet persists a new pet profile with an optional avatar color.
func (s *Store) CreatePet(ctx context.Context, ownerID, name, breed, color string) (models.Pet, error) {
	if strings.TrimSpace(name) == "" {
		return models.Pet{}, fmt.Errorf("pet name must not be empty")
	}
	if color == "" {
		color = randomPaletteColor()
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO pets(owner_id, name, breed, color) VALUES(?, ?, ?, ?)`,
		ownerID, strings.TrimSpace(name), strings.TrimSpace(breed), color)
	if err != nil {
		return models.Pet{}, fmt.Errorf("insert pet: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Pet{}, fmt.Errorf("pet id: %w", err)
	}
	return s.GetPet(ctx, id)
}

// GetPet fetches a single pet by id.
func (s *Store) GetPet(ctx context.Context, id int64) (models.Pet, error) {
	var p models.Pet
	err := s.db.QueryRowContext(ctx, `SELECT id, owner_id, name, breed, color, created_at, updated_at FROM pets WHERE id = ?`, id).
		Scan(&p.ID, &p.OwnerID, &p.Name, &p.Breed, &p.Color, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Pet{}, fmt.Errorf("pet %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Pet{}, fmt.Errorf("get pet: %w", err)
	}
	return p, nil
}

// UpdatePet renames a pet and optionally changes breed or color.
func (s *Store) UpdatePet(ctx context.Context, id int64, name, breed, color string) (models.Pet, error) {
	if strings.TrimSpace(name) == "" {
		return models.Pet{}, fmt.Errorf("pet name must not be empty")
	}
	if color == "" {
		color = randomPaletteColor()
	}

	res, err := s.db.ExecContext(ctx, `UPDATE pets SET name = ?, breed = ?, color = ? WHERE id = ?`,
		strings.TrimSpace(name), strings.TrimSpace(breed), color, id)
	if err != nil {
		return models.Pet{}, fmt.Errorf("update pet: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Pet{}, err
	}
	if affected == 0 {
		return models.Pet{}, fmt.Errorf("pet %d: %w", id, ErrNotFound)
	}
	return s.GetPet(ctx, id)
}

// DeletePet removes a pet along with its training tasks.
func (s *Store) DeletePet(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("pet %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListTasks returns all training tasks for a pet ordered by day and ordinal.
func (s *Store) ListTasks(ctx context.Context, petID int64) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, pet_id, owner_id, day_of_week, title, category, description,
        time, duration_minutes, completed, position, created_at, updated_at
        FROM training_tasks WHERE pet_id = ?
        ORDER BY day_of_week, position, id`, petID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// InsertTask persists a new task; the database assigns id and timestamps.
func (s *Store) InsertTask(ctx context.Context, t models.Task) (models.Task, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO training_tasks(pet_id, owner_id, day_of_week, title, category,
        description, time, duration_minutes, completed, position)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.PetID, t.OwnerID, string(t.Day), t.Title, string(t.Category),
		t.Description, t.Time, t.DurationMinutes, t.Completed, t.Order)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("task id: %w", err)
	}
	return s.GetTask(ctx, id)
}

// GetTask retrieves a task by id.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, pet_id, owner_id, day_of_week, title, category, description,
        time, duration_minutes, completed, position, created_at, updated_at
        FROM training_tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// taskColumns maps the scheduler's field names onto table columns. Anything
// outside this map is rejected, keeping the partial update surface closed.
var taskColumns = map[string]string{
	"title":            "title",
	"category":         "category",
	"description":      "description",
	"time":             "time",
	"duration_minutes": "duration_minutes",
	"day_of_week":      "day_of_week",
	"completed":        "completed",
	"order":            "position",
}

// UpdateTaskFields updates only the named fields of one task.
func (s *Store) UpdateTaskFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	assignments := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, name := range orderedFieldNames(fields) {
		column, ok := taskColumns[name]
		if !ok {
			return fmt.Errorf("unknown task field %q", name)
		}
		assignments = append(assignments, column+" = ?")
		args = append(args, fields[name])
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, `UPDATE training_tasks SET `+strings.Join(assignments, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteTask removes a task by id. Sibling ordinals are left untouched.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM training_tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var day, category string
	err := row.Scan(&t.ID, &t.PetID, &t.OwnerID, &day, &t.Title, &category, &t.Description,
		&t.Time, &t.DurationMinutes, &t.Completed, &t.Order, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, err
		}
		return models.Task{}, fmt.Errorf("scan task: %w", err)
	}
	t.Day = models.DayOfWeek(day)
	t.Category = models.Category(category)
	return t, nil
}

func orderedFieldNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func randomPaletteColor() string {
	palette := []string{
		"#2563eb", // blue-600
		"#7c3aed", // violet-600
		"#dc2626", // red-600
		"#059669", // green-600
		"#ea580c", // orange-600
		"#d97706", // amber-600
		"#0ea5e9", // sky-500
	}
	return palette[rand.Intn(len(palette))]
}
