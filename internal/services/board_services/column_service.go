package board_services

import (
	"context"
	"strings"

	"github.com/lianjung1/kanban-app/internal/model/board_model"
)

type ColumnService struct {
	Boards   BoardStore
	Columns  ColumnStore
	Tasks    TaskStore
	Comments CommentStore
}

func NewColumnService(boards BoardStore, columns ColumnStore, tasks TaskStore, comments CommentStore) *ColumnService {
	return &ColumnService{Boards: boards, Columns: columns, Tasks: tasks, Comments: comments}
}

// Create persists the column first and only then resolves the board, so an
// unknown boardId reports not-found after the column row already exists.
func (s *ColumnService) Create(ctx context.Context, title, boardID string) (*board_model.Column, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if boardID == "" {
		return nil, ErrBoardIDRequired
	}

	column, err := s.Columns.Create(ctx, title, boardID)
	if err != nil {
		return nil, err
	}

	if err := s.Boards.AppendColumn(ctx, boardID, column.ID); err != nil {
		return nil, err
	}
	return column, nil
}

func (s *ColumnService) Rename(ctx context.Context, columnID, title string) (*board_model.Column, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if columnID == "" {
		return nil, ErrColumnIDRequired
	}
	return s.Columns.Rename(ctx, columnID, title)
}

// Delete removes the column from its board's sequence, deletes the column,
// then its tasks and their comments. No cross-collection transaction.
func (s *ColumnService) Delete(ctx context.Context, columnID string) (*board_model.Column, error) {
	column, err := s.Columns.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}

	if err := s.Boards.RemoveColumn(ctx, column.BoardID, columnID); err != nil {
		return nil, err
	}
	if err := s.Columns.Delete(ctx, columnID); err != nil {
		return nil, err
	}
	taskIDs, err := s.Tasks.DeleteByColumn(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if err := s.Comments.DeleteByTasks(ctx, taskIDs); err != nil {
		return nil, err
	}
	return column, nil
}

// ClearTasks empties the column without deleting it: tasks and their
// comments go, the task sequence resets.
func (s *ColumnService) ClearTasks(ctx context.Context, columnID string) error {
	if _, err := s.Columns.GetByID(ctx, columnID); err != nil {
		return err
	}

	taskIDs, err := s.Tasks.DeleteByColumn(ctx, columnID)
	if err != nil {
		return err
	}
	if err := s.Comments.DeleteByTasks(ctx, taskIDs); err != nil {
		return err
	}
	return s.Columns.ClearTasks(ctx, columnID)
}
