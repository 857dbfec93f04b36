package board_services

import (
	"context"
	"errors"
	"strings"

	"github.com/lianjung1/kanban-app/internal/model/board_model"
	"github.com/lianjung1/kanban-app/internal/repository/auth_repository"
)

type TaskService struct {
	Columns  ColumnStore
	Tasks    TaskStore
	Comments CommentStore
	Users    UserStore
}

func NewTaskService(columns ColumnStore, tasks TaskStore, comments CommentStore, users UserStore) *TaskService {
	return &TaskService{Columns: columns, Tasks: tasks, Comments: comments, Users: users}
}

// resolveAssignee maps a display name to a user id. An empty or unknown name
// leaves the task unassigned; under duplicate names the oldest account wins
// (the name lookup is not a stable identifier).
func (s *TaskService) resolveAssignee(ctx context.Context, assigneeName string) (*string, error) {
	assigneeName = strings.TrimSpace(assigneeName)
	if assigneeName == "" {
		return nil, nil
	}

	user, err := s.Users.GetByFullName(ctx, assigneeName)
	if err != nil {
		if errors.Is(err, auth_repository.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user.ID, nil
}

func (s *TaskService) Create(ctx context.Context, title, description string, priority board_model.Priority, assigneeName, columnID, boardID string) (*board_model.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if priority == "" {
		priority = board_model.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	assignedTo, err := s.resolveAssignee(ctx, assigneeName)
	if err != nil {
		return nil, err
	}

	task := &board_model.Task{
		Title:       title,
		Description: description,
		Priority:    priority,
		AssignedTo:  assignedTo,
		ColumnID:    columnID,
		BoardID:     boardID,
	}
	if err := s.Tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	if err := s.Columns.AppendTask(ctx, columnID, task.ID); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, taskID, title, description string, priority board_model.Priority, assigneeName string) (*board_model.Task, error) {
	task, err := s.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(title) == "" {
		title = task.Title
	}
	if priority == "" {
		priority = task.Priority
	}
	if !priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	// The assignee is re-resolved from the name on every update.
	assignedTo, err := s.resolveAssignee(ctx, assigneeName)
	if err != nil {
		return nil, err
	}

	return s.Tasks.UpdateFields(ctx, taskID, title, description, priority, assignedTo)
}

// Move re-parents the task: append to the destination's task sequence,
// remove from the source's, then update the task's column reference. Three
// independent statements; a crash mid-sequence can leave the task referenced
// by two columns or by none.
func (s *TaskService) Move(ctx context.Context, taskID, newColumnID, sourceColumnID string) (*board_model.Task, error) {
	if _, err := s.Tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	if err := s.Columns.AppendTask(ctx, newColumnID, taskID); err != nil {
		return nil, err
	}
	if err := s.Columns.RemoveTask(ctx, sourceColumnID, taskID); err != nil {
		return nil, err
	}
	return s.Tasks.SetColumn(ctx, taskID, newColumnID)
}

func (s *TaskService) Delete(ctx context.Context, taskID string) error {
	task, err := s.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.Columns.RemoveTask(ctx, task.ColumnID, taskID); err != nil {
		return err
	}
	if err := s.Tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	return s.Comments.DeleteByTask(ctx, taskID)
}
