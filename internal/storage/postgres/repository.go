// Package postgres is the remote binding of the task repository: one record
// per task in a "tasks" table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskswift/internal/models"
	"github.com/adanyl0v/taskswift/internal/query"
	"github.com/adanyl0v/taskswift/internal/services"
)

var (
	ErrInvalidRecord = errors.New("invalid task record")
	ErrUnavailable   = errors.New("task database unavailable")
)

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	logger zerolog.Logger
	db     DB
}

func NewRepository(logger zerolog.Logger, db DB) *Repository {
	return &Repository{
		logger: logger,
		db:     db,
	}
}

func (r *Repository) Migrate(ctx context.Context) error {
	const createTasksTableQuery = `
CREATE TABLE IF NOT EXISTS tasks (
    id          BIGSERIAL PRIMARY KEY,
    title       TEXT        NOT NULL CHECK (btrim(title) <> ''),
    description TEXT        NOT NULL DEFAULT '',
    due_date    DATE,
    priority    TEXT        NOT NULL DEFAULT 'medium'
                            CHECK (priority IN ('low', 'medium', 'high')),
    category    TEXT        NOT NULL DEFAULT 'personal'
                            CHECK (category IN ('work', 'personal', 'shopping', 'health', 'other')),
    completed   BOOLEAN     NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)
`
	_, err := r.db.Exec(ctx, createTasksTableQuery)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to create tasks table")
		return classify(err)
	}
	r.logger.Info().Msg("migrated tasks table")
	return nil
}

func (r *Repository) List(ctx context.Context, params services.ListParams) ([]*models.Task, error) {
	sql, args := buildListQuery(params)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, classify(err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[taskRecord])
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to scan tasks")
		return nil, classify(err)
	}

	tasks := make([]*models.Task, len(records))
	for i, rec := range records {
		tasks[i] = rec.toTask()
	}
	r.logger.Debug().
		Int("count", len(tasks)).
		Str("filter", string(params.Filter)).
		Str("sort", string(params.Sort)).
		Msg("selected tasks")
	return tasks, nil
}

func (r *Repository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	rec := newTaskRecord(task)

	const insertTaskQuery = `
INSERT INTO tasks (title,
                   description,
                   due_date,
                   priority,
                   category,
                   completed,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at
`
	err := r.db.QueryRow(
		ctx,
		insertTaskQuery,
		rec.Title,
		rec.Description,
		rec.DueDate,
		rec.Priority,
		rec.Category,
		rec.Completed,
		rec.CreatedAt,
		rec.UpdatedAt,
	).Scan(
		&rec.ID,
		&rec.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, classify(err)
	}

	created := rec.toTask()
	r.logger.Debug().
		Str("task_id", created.ID).
		Msg("inserted task")
	return created, nil
}

func (r *Repository) Update(ctx context.Context, id string, patch models.TaskPatch, updatedAt time.Time) (bool, error) {
	recordID, ok := parseID(id)
	if !ok {
		r.logger.Warn().
			Str("task_id", id).
			Msg("task id is not a record id")
		return false, nil
	}

	sql, args := buildUpdateQuery(recordID, patch, updatedAt)
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to update task")
		return false, classify(err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Str("task_id", id).
			Msg("task record not found")
		return false, nil
	}
	r.logger.Debug().
		Str("task_id", id).
		Msg("updated task")
	return true, nil
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	recordID, ok := parseID(id)
	if !ok {
		r.logger.Warn().
			Str("task_id", id).
			Msg("task id is not a record id")
		return false, nil
	}

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := r.db.Exec(ctx, deleteTaskQuery, recordID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return false, classify(err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Str("task_id", id).
			Msg("task record not found")
		return false, nil
	}
	r.logger.Debug().
		Str("task_id", id).
		Msg("deleted task")
	return true, nil
}

const selectTasksQuery = `
SELECT id,
       title,
       description,
       due_date,
       priority,
       category,
       completed,
       created_at,
       updated_at
FROM tasks`

func buildListQuery(params services.ListParams) (string, []any) {
	var b strings.Builder
	var args []any
	b.WriteString(selectTasksQuery)

	switch params.Filter {
	case query.FilterActive:
		args = append(args, false)
		b.WriteString("\nWHERE completed = $1")
	case query.FilterCompleted:
		args = append(args, true)
		b.WriteString("\nWHERE completed = $1")
	case query.FilterHighPriority:
		args = append(args, string(models.PriorityHigh))
		b.WriteString("\nWHERE priority = $1")
	}

	switch params.Sort {
	case query.SortTitle:
		b.WriteString("\nORDER BY title ASC, id ASC")
	case query.SortPriority:
		b.WriteString("\nORDER BY CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END ASC, id ASC")
	case query.SortDueDate:
		b.WriteString("\nORDER BY due_date ASC NULLS LAST, id ASC")
	default:
		b.WriteString("\nORDER BY created_at DESC, id DESC")
	}

	return b.String(), args
}

func buildUpdateQuery(id int64, patch models.TaskPatch, updatedAt time.Time) (string, []any) {
	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.DueDate != nil {
		set("due_date", dateValue(patch.DueDate))
	}
	if patch.Priority != nil {
		set("priority", string(*patch.Priority))
	}
	if patch.Category != nil {
		set("category", string(*patch.Category))
	}
	if patch.Completed != nil {
		set("completed", *patch.Completed)
	}
	set("updated_at", updatedAt)

	args = append(args, id)
	sql := fmt.Sprintf("UPDATE tasks\nSET %s\nWHERE id = $%d", strings.Join(sets, ",\n    "), len(args))
	return sql, args
}

func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// classify maps driver errors onto the package's sentinel errors, keeping
// the original error in the chain.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgerrcode.IsIntegrityConstraintViolation(pgErr.Code),
			pgerrcode.IsDataException(pgErr.Code):
			return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgerrcode.IsInsufficientResources(pgErr.Code),
			pgerrcode.IsOperatorIntervention(pgErr.Code):
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return err
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
