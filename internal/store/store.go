package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// TaskStore handles SQLite storage of users and their daily tasks
type TaskStore struct {
	db *sql.DB
}

// TaskType distinguishes regular schedule items from interview slots
type TaskType string

const (
	TypeSchedule  TaskType = "schedule"
	TypeInterview TaskType = "interview"
)

// User is one entry in the user directory
type User struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// DailyTask is one task record for a user on a date
type DailyTask struct {
	ID          string
	Time        string
	Title       string
	Description string
	Type        TaskType
	Date        string // YYYY-MM-DD
	Completed   bool
	UserID      string
}

// Open opens the task store at dbPath, creating it and its schema if needed
func Open(dbPath string) (*TaskStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &TaskStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// migrate creates the necessary tables
func (s *TaskStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS daily_tasks (
			id TEXT PRIMARY KEY,
			time TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL DEFAULT 'schedule',
			date TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			user_id TEXT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id)
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_user_date ON daily_tasks(user_id, date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *TaskStore) Close() error {
	return s.db.Close()
}

// ListUsers returns all known users in a stable order
func (s *TaskStore) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM users
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// TasksForDay returns the tasks for one user on one date. No tasks is not an
// error: it returns an empty slice.
func (s *TaskStore) TasksForDay(ctx context.Context, userID, date string) ([]DailyTask, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, time, title, description, type, date, completed, user_id
		FROM daily_tasks
		WHERE user_id = ? AND date = ?
		ORDER BY time ASC, id ASC
	`, userID, date)
	if err != nil {
		return nil, fmt.Errorf("tasks for %s on %s: %w", userID, date, err)
	}
	defer rows.Close()

	tasks := []DailyTask{}
	for rows.Next() {
		var t DailyTask
		var desc sql.NullString
		if err := rows.Scan(&t.ID, &t.Time, &t.Title, &desc, &t.Type, &t.Date, &t.Completed, &t.UserID); err != nil {
			return nil, fmt.Errorf("tasks for %s on %s: %w", userID, date, err)
		}
		t.Description = desc.String
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// SaveUser inserts or replaces a user
func (s *TaskStore) SaveUser(u *User) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO users (id, name, created_at)
		VALUES (?, ?, ?)
	`, u.ID, u.Name, u.CreatedAt)

	return err
}

// SaveTask inserts or replaces a daily task
func (s *TaskStore) SaveTask(t *DailyTask) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO daily_tasks (id, time, title, description, type, date, completed, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Time, t.Title, t.Description, t.Type, t.Date, t.Completed, t.UserID)

	return err
}
