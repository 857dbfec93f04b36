package board_repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lianjung1/kanban-app/internal/model/board_model"
)

type ColumnRepo struct {
	DB *sqlx.DB
}

func NewColumnRepo(db *sqlx.DB) *ColumnRepo {
	return &ColumnRepo{DB: db}
}

func (r *ColumnRepo) Create(ctx context.Context, title, boardID string) (*board_model.Column, error) {
	column := &board_model.Column{}
	q := `INSERT INTO board_columns (id, title, board_id) VALUES ($1, $2, $3) RETURNING *;`
	err := r.DB.QueryRowxContext(ctx, q, uuid.New().String(), title, boardID).StructScan(column)
	if err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}
	return column, nil
}

func (r *ColumnRepo) GetByID(ctx context.Context, columnID string) (*board_model.Column, error) {
	var column board_model.Column
	err := r.DB.GetContext(ctx, &column, `SELECT * FROM board_columns WHERE id = $1`, columnID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepo) Rename(ctx context.Context, columnID, title string) (*board_model.Column, error) {
	var column board_model.Column
	q := `UPDATE board_columns SET title = $1, updated_at = NOW() WHERE id = $2 RETURNING *;`
	err := r.DB.QueryRowxContext(ctx, q, title, columnID).StructScan(&column)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepo) AppendTask(ctx context.Context, columnID, taskID string) error {
	q := `UPDATE board_columns SET tasks = array_append(tasks, $1), updated_at = NOW() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, q, taskID, columnID)
	if err != nil {
		return fmt.Errorf("failed to append task to column: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrColumnNotFound
	}
	return nil
}

func (r *ColumnRepo) RemoveTask(ctx context.Context, columnID, taskID string) error {
	q := `UPDATE board_columns SET tasks = array_remove(tasks, $1), updated_at = NOW() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, q, taskID, columnID)
	if err != nil {
		return fmt.Errorf("failed to remove task from column: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrColumnNotFound
	}
	return nil
}

func (r *ColumnRepo) ClearTasks(ctx context.Context, columnID string) error {
	q := `UPDATE board_columns SET tasks = '{}', updated_at = NOW() WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, q, columnID)
	if err != nil {
		return fmt.Errorf("failed to clear column tasks: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrColumnNotFound
	}
	return nil
}

func (r *ColumnRepo) ListByBoard(ctx context.Context, boardID string) ([]*board_model.Column, error) {
	var columns []*board_model.Column
	q := `SELECT * FROM board_columns WHERE board_id = $1`
	if err := r.DB.SelectContext(ctx, &columns, q, boardID); err != nil {
		return nil, err
	}
	return columns, nil
}

func (r *ColumnRepo) Delete(ctx context.Context, columnID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM board_columns WHERE id = $1`, columnID)
	if err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrColumnNotFound
	}
	return nil
}

func (r *ColumnRepo) DeleteByBoard(ctx context.Context, boardID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM board_columns WHERE board_id = $1`, boardID)
	if err != nil {
		return fmt.Errorf("failed to delete board columns: %w", err)
	}
	return nil
}
