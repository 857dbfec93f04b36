package board_services

import (
	"context"
	"strings"

	"github.com/lianjung1/kanban-app/internal/model/board_model"
)

type BoardService struct {
	Boards   BoardStore
	Columns  ColumnStore
	Tasks    TaskStore
	Comments CommentStore
	Users    UserStore

	// Lists only owned boards when true; the default membership-inclusive
	// listing is the intended behavior.
	OwnerOnlyListing bool
}

func NewBoardService(boards BoardStore, columns ColumnStore, tasks TaskStore, comments CommentStore, users UserStore) *BoardService {
	return &BoardService{
		Boards:   boards,
		Columns:  columns,
		Tasks:    tasks,
		Comments: comments,
		Users:    users,
	}
}

// List returns every board the user can see, populated with columns and
// their tasks.
func (s *BoardService) List(ctx context.Context, userID string) ([]*board_model.BoardDetail, error) {
	if s.OwnerOnlyListing {
		return s.Boards.ListDetailsByOwner(ctx, userID)
	}
	return s.Boards.ListDetailsByMember(ctx, userID)
}

func (s *BoardService) Get(ctx context.Context, boardID string) (*board_model.BoardDetail, error) {
	return s.Boards.GetDetail(ctx, boardID)
}

func (s *BoardService) Create(ctx context.Context, userID, title, description string) (*board_model.Board, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	board, err := s.Boards.Create(ctx, title, description, userID)
	if err != nil {
		return nil, err
	}

	if err := s.Users.AppendBoard(ctx, userID, board.ID); err != nil {
		return nil, err
	}
	return board, nil
}

// Update patches title/description and, when shareeEmail is given, first
// adds that user to the board. Sharing and patching are separate store
// calls, so a failed patch can leave a sharee already added.
func (s *BoardService) Update(ctx context.Context, boardID, title, description, shareeEmail string) (*board_model.Board, error) {
	board, err := s.Boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if shareeEmail != "" {
		sharee, err := s.Users.GetByEmail(ctx, shareeEmail)
		if err != nil {
			return nil, err
		}

		for _, memberID := range board.Members {
			if memberID == sharee.ID {
				return nil, ErrAlreadyMember
			}
		}

		if err := s.Boards.AppendMember(ctx, boardID, sharee.ID); err != nil {
			return nil, err
		}
		if err := s.Users.AppendBoard(ctx, sharee.ID, boardID); err != nil {
			return nil, err
		}
	}

	// The title invariant (required, non-empty) survives an empty patch.
	if strings.TrimSpace(title) == "" {
		title = board.Title
	}
	return s.Boards.UpdateFields(ctx, boardID, title, description)
}

// Delete removes the board and performs the referential cleanup: user board
// lists, columns, tasks, then comments. Five independent statements with no
// rollback; a failure partway through leaves the earlier steps applied.
func (s *BoardService) Delete(ctx context.Context, boardID string) error {
	if _, err := s.Boards.GetByID(ctx, boardID); err != nil {
		return err
	}

	if err := s.Boards.Delete(ctx, boardID); err != nil {
		return err
	}
	if err := s.Users.RemoveBoardFromAll(ctx, boardID); err != nil {
		return err
	}
	if err := s.Columns.DeleteByBoard(ctx, boardID); err != nil {
		return err
	}
	taskIDs, err := s.Tasks.DeleteByBoard(ctx, boardID)
	if err != nil {
		return err
	}
	return s.Comments.DeleteByTasks(ctx, taskIDs)
}
