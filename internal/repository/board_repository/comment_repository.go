package board_repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lianjung1/kanban-app/internal/model/auth_model"
	"github.com/lianjung1/kanban-app/internal/model/board_model"
)

type CommentRepo struct {
	DB *sqlx.DB
}

func NewCommentRepo(db *sqlx.DB) *CommentRepo {
	return &CommentRepo{DB: db}
}

func (r *CommentRepo) Create(ctx context.Context, comment *board_model.Comment) error {
	comment.ID = uuid.New().String()

	q := `INSERT INTO comments (id, content, task_id, user_id) VALUES ($1, $2, $3, $4)
	      RETURNING created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, q, comment.ID, comment.Content, comment.TaskID, comment.UserID).
		Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepo) GetByID(ctx context.Context, commentID string) (*board_model.Comment, error) {
	var comment board_model.Comment
	err := r.DB.GetContext(ctx, &comment, `SELECT * FROM comments WHERE id = $1`, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListByTask returns the task's comments newest first, each populated with
// its author. Display-side chronological ordering is the client's re-sort.
func (r *CommentRepo) ListByTask(ctx context.Context, taskID string) ([]*board_model.CommentDetail, error) {
	var comments []*board_model.Comment
	q := `SELECT * FROM comments WHERE task_id = $1 ORDER BY created_at DESC`
	if err := r.DB.SelectContext(ctx, &comments, q, taskID); err != nil {
		return nil, err
	}

	authorIDs := make([]string, 0, len(comments))
	seen := make(map[string]bool)
	for _, c := range comments {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			authorIDs = append(authorIDs, c.UserID)
		}
	}

	authorMap := make(map[string]*auth_model.User, len(authorIDs))
	if len(authorIDs) > 0 {
		var authors []*auth_model.User
		qAuthors := `SELECT * FROM users WHERE id = ANY($1)`
		if err := r.DB.SelectContext(ctx, &authors, qAuthors, pq.Array(authorIDs)); err != nil {
			return nil, err
		}
		for _, u := range authors {
			authorMap[u.ID] = u
		}
	}

	details := make([]*board_model.CommentDetail, 0, len(comments))
	for _, c := range comments {
		details = append(details, &board_model.CommentDetail{
			ID:        c.ID,
			Content:   c.Content,
			TaskID:    c.TaskID,
			Author:    authorMap[c.UserID],
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return details, nil
}

func (r *CommentRepo) UpdateContent(ctx context.Context, commentID, content string) (*board_model.Comment, error) {
	var comment board_model.Comment
	q := `UPDATE comments SET content = $1, updated_at = NOW() WHERE id = $2 RETURNING *;`
	err := r.DB.QueryRowxContext(ctx, q, content, commentID).StructScan(&comment)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepo) Delete(ctx context.Context, commentID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepo) DeleteByTask(ctx context.Context, taskID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE task_id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task comments: %w", err)
	}
	return nil
}

func (r *CommentRepo) DeleteByTasks(ctx context.Context, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	_, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE task_id = ANY($1)`, pq.Array(taskIDs))
	if err != nil {
		return fmt.Errorf("failed to delete task comments: %w", err)
	}
	return nil
}
