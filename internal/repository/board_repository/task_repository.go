package board_repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lianjung1/kanban-app/internal/model/board_model"
)

type TaskRepo struct {
	DB *sqlx.DB
}

func NewTaskRepo(db *sqlx.DB) *TaskRepo {
	return &TaskRepo{DB: db}
}

func (r *TaskRepo) Create(ctx context.Context, task *board_model.Task) error {
	task.ID = uuid.New().String()

	q := `INSERT INTO board_tasks (id, title, description, priority, assigned_to, column_id, board_id)
	      VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, q, task.ID, task.Title, task.Description,
		task.Priority, task.AssignedTo, task.ColumnID, task.BoardID).
		Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, taskID string) (*board_model.Task, error) {
	var task board_model.Task
	err := r.DB.GetContext(ctx, &task, `SELECT * FROM board_tasks WHERE id = $1`, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepo) UpdateFields(ctx context.Context, taskID, title, description string, priority board_model.Priority, assignedTo *string) (*board_model.Task, error) {
	var task board_model.Task
	q := `UPDATE board_tasks
	      SET title = $1, description = $2, priority = $3, assigned_to = $4, updated_at = NOW()
	      WHERE id = $5 RETURNING *;`
	err := r.DB.QueryRowxContext(ctx, q, title, description, priority, assignedTo, taskID).StructScan(&task)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepo) SetColumn(ctx context.Context, taskID, columnID string) (*board_model.Task, error) {
	var task board_model.Task
	q := `UPDATE board_tasks SET column_id = $1, updated_at = NOW() WHERE id = $2 RETURNING *;`
	err := r.DB.QueryRowxContext(ctx, q, columnID, taskID).StructScan(&task)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepo) ListByColumn(ctx context.Context, columnID string) ([]*board_model.Task, error) {
	var tasks []*board_model.Task
	q := `SELECT * FROM board_tasks WHERE column_id = $1`
	if err := r.DB.SelectContext(ctx, &tasks, q, columnID); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepo) ListByBoard(ctx context.Context, boardID string) ([]*board_model.Task, error) {
	var tasks []*board_model.Task
	q := `SELECT * FROM board_tasks WHERE board_id = $1`
	if err := r.DB.SelectContext(ctx, &tasks, q, boardID); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepo) Delete(ctx context.Context, taskID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM board_tasks WHERE id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteByColumn removes every task in the column and reports the deleted
// ids so the caller can clean up dependent comments.
func (r *TaskRepo) DeleteByColumn(ctx context.Context, columnID string) ([]string, error) {
	var deleted pq.StringArray
	q := `WITH gone AS (DELETE FROM board_tasks WHERE column_id = $1 RETURNING id)
	      SELECT COALESCE(array_agg(id), '{}') FROM gone;`
	if err := r.DB.GetContext(ctx, &deleted, q, columnID); err != nil {
		return nil, fmt.Errorf("failed to delete column tasks: %w", err)
	}
	return deleted, nil
}

func (r *TaskRepo) DeleteByBoard(ctx context.Context, boardID string) ([]string, error) {
	var deleted pq.StringArray
	q := `WITH gone AS (DELETE FROM board_tasks WHERE board_id = $1 RETURNING id)
	      SELECT COALESCE(array_agg(id), '{}') FROM gone;`
	if err := r.DB.GetContext(ctx, &deleted, q, boardID); err != nil {
		return nil, fmt.Errorf("failed to delete board tasks: %w", err)
	}
	return deleted, nil
}
