package repositories

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/lia-xyz/to-do-list-app/internal/app/models"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

// ErrNotFound is returned when no task row matches the given id.
var ErrNotFound = errors.New("task not found")

//go:embed schema.sql
var schema string

type TaskRepository interface {
	List(ctx context.Context, completed *bool) ([]models.Task, error)
	Stats(ctx context.Context) (models.Stats, error)
	Create(ctx context.Context, title string) (models.Task, error)
	SetCompleted(ctx context.Context, id int64, completed bool) (models.Task, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Ping(ctx context.Context) error
}

type PostgresTaskRepo struct {
	db *sql.DB
}

// NewPostgresTaskRepo opens a pool with the given database/sql driver name:
// "postgres" (lib/pq) or "pgx" (pgx stdlib).
func NewPostgresTaskRepo(driver, dsn string) (*PostgresTaskRepo, error) {
	switch driver {
	case "", "postgres":
		driver = "postgres"
	case "pgx":
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	return &PostgresTaskRepo{db: db}, nil
}

func (r *PostgresTaskRepo) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Reset empties the table and restarts the id sequence. Test databases only.
func (r *PostgresTaskRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "TRUNCATE tasks RESTART IDENTITY"); err != nil {
		return fmt.Errorf("reset tasks: %w", err)
	}
	return nil
}

func (r *PostgresTaskRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PostgresTaskRepo) Close() error {
	return r.db.Close()
}

func (r *PostgresTaskRepo) List(ctx context.Context, completed *bool) ([]models.Task, error) {
	query := "SELECT id, title, completed FROM tasks"
	var args []any
	if completed != nil {
		query += " WHERE completed = $1"
		args = append(args, *completed)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *PostgresTaskRepo) Stats(ctx context.Context) (models.Stats, error) {
	var s models.Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE completed),
			COUNT(*) FILTER (WHERE NOT completed)
		FROM tasks
	`).Scan(&s.Completed, &s.Uncompleted)
	if err != nil {
		return models.Stats{}, fmt.Errorf("task stats: %w", err)
	}
	return s, nil
}

func (r *PostgresTaskRepo) Create(ctx context.Context, title string) (models.Task, error) {
	var t models.Task
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO tasks (title) VALUES ($1) RETURNING id, title, completed", title,
	).Scan(&t.ID, &t.Title, &t.Completed)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (r *PostgresTaskRepo) SetCompleted(ctx context.Context, id int64, completed bool) (models.Task, error) {
	var t models.Task
	err := r.db.QueryRowContext(ctx,
		"UPDATE tasks SET completed = $1 WHERE id = $2 RETURNING id, title, completed", completed, id,
	).Scan(&t.ID, &t.Title, &t.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("update task %d: %w", id, err)
	}
	return t, nil
}

func (r *PostgresTaskRepo) Delete(ctx context.Context, id int64) (int64, error) {
	var deleted int64
	err := r.db.QueryRowContext(ctx, "DELETE FROM tasks WHERE id = $1 RETURNING id", id).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("delete task %d: %w", id, err)
	}
	return deleted, nil
}
