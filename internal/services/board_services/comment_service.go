package board_services

import (
	"context"
	"strings"

	"github.com/lianjung1/kanban-app/internal/model/board_model"
)

type CommentService struct {
	Comments CommentStore
}

func NewCommentService(comments CommentStore) *CommentService {
	return &CommentService{Comments: comments}
}

func (s *CommentService) List(ctx context.Context, taskID string) ([]*board_model.CommentDetail, error) {
	return s.Comments.ListByTask(ctx, taskID)
}

func (s *CommentService) Create(ctx context.Context, userID, taskID, content string) (*board_model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	comment := &board_model.Comment{
		Content: content,
		TaskID:  taskID,
		UserID:  userID,
	}
	if err := s.Comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Update edits the comment body; only the authoring user may edit.
func (s *CommentService) Update(ctx context.Context, userID, commentID, content string) (*board_model.Comment, error) {
	comment, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != userID {
		return nil, ErrNotCommentAuthor
	}

	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}
	return s.Comments.UpdateContent(ctx, commentID, content)
}

func (s *CommentService) Delete(ctx context.Context, commentID string) (*board_model.Comment, error) {
	comment, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.Comments.Delete(ctx, commentID); err != nil {
		return nil, err
	}
	return comment, nil
}
