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

var (
	ErrBoardNotFound   = errors.New("board not found")
	ErrColumnNotFound  = errors.New("column not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrCommentNotFound = errors.New("comment not found")
)

type BoardRepo struct {
	DB *sqlx.DB
}

func NewBoardRepo(db *sqlx.DB) *BoardRepo {
	return &BoardRepo{DB: db}
}

func (r *BoardRepo) Create(ctx context.Context, title, description, ownerID string) (*board_model.Board, error) {
	board := &board_model.Board{}

	q := `INSERT INTO boards (id, title, description, members, owner_id)
	      VALUES ($1, $2, $3, $4, $5) RETURNING *;`
	err := r.DB.QueryRowxContext(ctx, q, uuid.New().String(), title, description,
		pq.StringArray{ownerID}, ownerID).StructScan(board)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return board, nil
}

func (r *BoardRepo) GetByID(ctx context.Context, boardID string) (*board_model.Board, error) {
	var board board_model.Board
	err := r.DB.GetContext(ctx, &board, `SELECT * FROM boards WHERE id = $1`, boardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepo) ListByMember(ctx context.Context, userID string) ([]*board_model.Board, error) {
	var boards []*board_model.Board
	q := `SELECT * FROM boards WHERE $1 = ANY(members) ORDER BY created_at`
	if err := r.DB.SelectContext(ctx, &boards, q, userID); err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *BoardRepo) ListByOwner(ctx context.Context, userID string) ([]*board_model.Board, error) {
	var boards []*board_model.Board
	q := `SELECT * FROM boards WHERE owner_id = $1 ORDER BY created_at`
	if err := r.DB.SelectContext(ctx, &boards, q, userID); err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *BoardRepo) UpdateFields(ctx context.Context, boardID, title, description string) (*board_model.Board, error) {
	var board board_model.Board
	q := `UPDATE boards SET title = $1, description = $2, updated_at = NOW() WHERE id = $3 RETURNING *;`
	err := r.DB.QueryRowxContext(ctx, q, title, description, boardID).StructScan(&board)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepo) AppendColumn(ctx context.Context, boardID, columnID string) error {
	q := `UPDATE boards SET columns = array_append(columns, $1), updated_at = NOW() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, q, columnID, boardID)
	if err != nil {
		return fmt.Errorf("failed to append column to board: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrBoardNotFound
	}
	return nil
}

func (r *BoardRepo) RemoveColumn(ctx context.Context, boardID, columnID string) error {
	q := `UPDATE boards SET columns = array_remove(columns, $1), updated_at = NOW() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, q, columnID, boardID)
	if err != nil {
		return fmt.Errorf("failed to remove column from board: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrBoardNotFound
	}
	return nil
}

func (r *BoardRepo) AppendMember(ctx context.Context, boardID, userID string) error {
	q := `UPDATE boards SET members = array_append(members, $1), updated_at = NOW() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, q, userID, boardID)
	if err != nil {
		return fmt.Errorf("failed to append member to board: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrBoardNotFound
	}
	return nil
}

func (r *BoardRepo) Delete(ctx context.Context, boardID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM boards WHERE id = $1`, boardID)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrBoardNotFound
	}
	return nil
}

func (r *BoardRepo) GetOwnerID(ctx context.Context, boardID string) (string, error) {
	var ownerID string
	err := r.DB.GetContext(ctx, &ownerID, `SELECT owner_id FROM boards WHERE id = $1`, boardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrBoardNotFound
		}
		return "", fmt.Errorf("failed to get board owner: %w", err)
	}
	return ownerID, nil
}

func (r *BoardRepo) IsMember(ctx context.Context, boardID, userID string) (bool, error) {
	var isMember bool
	q := `SELECT $2 = ANY(members) FROM boards WHERE id = $1`
	err := r.DB.GetContext(ctx, &isMember, q, boardID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrBoardNotFound
		}
		return false, fmt.Errorf("failed to check board membership: %w", err)
	}
	return isMember, nil
}

// GetDetail resolves the full board aggregate: columns in the board's column
// sequence order, each column's tasks in its task sequence order, each task's
// assignee, plus owner and members. One query per collection, stitched here.
func (r *BoardRepo) GetDetail(ctx context.Context, boardID string) (*board_model.BoardDetail, error) {
	board, err := r.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	columns, err := r.columnsOf(ctx, board)
	if err != nil {
		return nil, err
	}

	users, err := r.usersOf(ctx, board, columns)
	if err != nil {
		return nil, err
	}

	detail := &board_model.BoardDetail{
		ID:          board.ID,
		Title:       board.Title,
		Description: board.Description,
		Columns:     columns,
		Owner:       users[board.OwnerID],
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
	}
	for _, memberID := range board.Members {
		if u, ok := users[memberID]; ok {
			detail.Members = append(detail.Members, u)
		}
	}
	for _, col := range columns {
		for _, task := range col.Tasks {
			if task.Assignee == nil {
				continue
			}
			if u, ok := users[task.Assignee.ID]; ok {
				task.Assignee = u
			}
		}
	}
	return detail, nil
}

// ListDetailsByMember returns every board the user belongs to, populated with
// columns and tasks but without owner or member documents.
func (r *BoardRepo) ListDetailsByMember(ctx context.Context, userID string) ([]*board_model.BoardDetail, error) {
	boards, err := r.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.detailsOf(ctx, boards)
}

func (r *BoardRepo) ListDetailsByOwner(ctx context.Context, userID string) ([]*board_model.BoardDetail, error) {
	boards, err := r.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.detailsOf(ctx, boards)
}

func (r *BoardRepo) detailsOf(ctx context.Context, boards []*board_model.Board) ([]*board_model.BoardDetail, error) {
	details := make([]*board_model.BoardDetail, 0, len(boards))
	for _, board := range boards {
		columns, err := r.columnsOf(ctx, board)
		if err != nil {
			return nil, err
		}
		details = append(details, &board_model.BoardDetail{
			ID:          board.ID,
			Title:       board.Title,
			Description: board.Description,
			Columns:     columns,
			CreatedAt:   board.CreatedAt,
			UpdatedAt:   board.UpdatedAt,
		})
	}
	return details, nil
}

func (r *BoardRepo) columnsOf(ctx context.Context, board *board_model.Board) ([]*board_model.ColumnDetail, error) {
	var columns []*board_model.Column
	q := `SELECT * FROM board_columns WHERE board_id = $1`
	if err := r.DB.SelectContext(ctx, &columns, q, board.ID); err != nil {
		return nil, err
	}

	var tasks []*board_model.Task
	qTasks := `SELECT * FROM board_tasks WHERE board_id = $1`
	if err := r.DB.SelectContext(ctx, &tasks, qTasks, board.ID); err != nil {
		return nil, err
	}

	taskMap := make(map[string]*board_model.Task, len(tasks))
	for _, t := range tasks {
		taskMap[t.ID] = t
	}

	columnMap := make(map[string]*board_model.ColumnDetail, len(columns))
	for _, col := range columns {
		detail := &board_model.ColumnDetail{
			ID:        col.ID,
			Title:     col.Title,
			BoardID:   col.BoardID,
			Tasks:     []*board_model.TaskDetail{},
			CreatedAt: col.CreatedAt,
			UpdatedAt: col.UpdatedAt,
		}
		for _, taskID := range col.Tasks {
			t, ok := taskMap[taskID]
			if !ok {
				continue
			}
			td := &board_model.TaskDetail{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				Priority:    t.Priority,
				ColumnID:    t.ColumnID,
				BoardID:     t.BoardID,
				CreatedAt:   t.CreatedAt,
				UpdatedAt:   t.UpdatedAt,
			}
			if t.AssignedTo != nil {
				td.Assignee = &auth_model.User{ID: *t.AssignedTo}
			}
			detail.Tasks = append(detail.Tasks, td)
		}
		columnMap[col.ID] = detail
	}

	// Board column sequence dictates ordering; columns missing from the
	// sequence (a dangling-reference artifact) are simply not shown.
	ordered := make([]*board_model.ColumnDetail, 0, len(columnMap))
	for _, columnID := range board.Columns {
		if detail, ok := columnMap[columnID]; ok {
			ordered = append(ordered, detail)
		}
	}
	return ordered, nil
}

func (r *BoardRepo) usersOf(ctx context.Context, board *board_model.Board, columns []*board_model.ColumnDetail) (map[string]*auth_model.User, error) {
	ids := make([]string, 0, len(board.Members)+1)
	seen := make(map[string]bool)
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	add(board.OwnerID)
	for _, m := range board.Members {
		add(m)
	}
	for _, col := range columns {
		for _, task := range col.Tasks {
			if task.Assignee != nil {
				add(task.Assignee.ID)
			}
		}
	}

	var users []*auth_model.User
	q := `SELECT * FROM users WHERE id = ANY($1)`
	if err := r.DB.SelectContext(ctx, &users, q, pq.Array(ids)); err != nil {
		return nil, err
	}

	userMap := make(map[string]*auth_model.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}
	return userMap, nil
}
