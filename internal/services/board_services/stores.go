package board_services

import (
	"context"

	"github.com/lianjung1/kanban-app/internal/model/auth_model"
	"github.com/lianjung1/kanban-app/internal/model/board_model"
)

// Store interfaces satisfied by the board_repository and auth_repository
// types. Services depend on these so cascade logic is testable without a
// database.

type UserStore interface {
	GetByID(ctx context.Context, userID string) (*auth_model.User, error)
	GetByEmail(ctx context.Context, email string) (*auth_model.User, error)
	GetByFullName(ctx context.Context, fullName string) (*auth_model.User, error)
	AppendBoard(ctx context.Context, userID, boardID string) error
	RemoveBoardFromAll(ctx context.Context, boardID string) error
}

type BoardStore interface {
	Create(ctx context.Context, title, description, ownerID string) (*board_model.Board, error)
	GetByID(ctx context.Context, boardID string) (*board_model.Board, error)
	GetDetail(ctx context.Context, boardID string) (*board_model.BoardDetail, error)
	ListDetailsByMember(ctx context.Context, userID string) ([]*board_model.BoardDetail, error)
	ListDetailsByOwner(ctx context.Context, userID string) ([]*board_model.BoardDetail, error)
	UpdateFields(ctx context.Context, boardID, title, description string) (*board_model.Board, error)
	AppendColumn(ctx context.Context, boardID, columnID string) error
	RemoveColumn(ctx context.Context, boardID, columnID string) error
	AppendMember(ctx context.Context, boardID, userID string) error
	Delete(ctx context.Context, boardID string) error
}

type ColumnStore interface {
	Create(ctx context.Context, title, boardID string) (*board_model.Column, error)
	GetByID(ctx context.Context, columnID string) (*board_model.Column, error)
	Rename(ctx context.Context, columnID, title string) (*board_model.Column, error)
	AppendTask(ctx context.Context, columnID, taskID string) error
	RemoveTask(ctx context.Context, columnID, taskID string) error
	ClearTasks(ctx context.Context, columnID string) error
	Delete(ctx context.Context, columnID string) error
	DeleteByBoard(ctx context.Context, boardID string) error
}

type TaskStore interface {
	Create(ctx context.Context, task *board_model.Task) error
	GetByID(ctx context.Context, taskID string) (*board_model.Task, error)
	UpdateFields(ctx context.Context, taskID, title, description string, priority board_model.Priority, assignedTo *string) (*board_model.Task, error)
	SetColumn(ctx context.Context, taskID, columnID string) (*board_model.Task, error)
	Delete(ctx context.Context, taskID string) error
	DeleteByColumn(ctx context.Context, columnID string) ([]string, error)
	DeleteByBoard(ctx context.Context, boardID string) ([]string, error)
}

type CommentStore interface {
	Create(ctx context.Context, comment *board_model.Comment) error
	GetByID(ctx context.Context, commentID string) (*board_model.Comment, error)
	ListByTask(ctx context.Context, taskID string) ([]*board_model.CommentDetail, error)
	UpdateContent(ctx context.Context, commentID, content string) (*board_model.Comment, error)
	Delete(ctx context.Context, commentID string) error
	DeleteByTask(ctx context.Context, taskID string) error
	DeleteByTasks(ctx context.Context, taskIDs []string) error
}
