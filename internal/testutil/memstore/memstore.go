// Package memstore provides in-memory implementations of the store
// interfaces consumed by board_services, for tests that exercise cascade and
// handler logic without a database. Semantics mirror the SQL repositories,
// including the sentinel errors and the one-call-per-step granularity.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/lianjung1/kanban-app/internal/model/auth_model"
	"github.com/lianjung1/kanban-app/internal/model/board_model"
	"github.com/lianjung1/kanban-app/internal/repository/auth_repository"
	"github.com/lianjung1/kanban-app/internal/repository/board_repository"
)

type Store struct {
	mu       sync.Mutex
	users    map[string]*auth_model.User
	boards   map[string]*board_model.Board
	columns  map[string]*board_model.Column
	tasks    map[string]*board_model.Task
	comments map[string]*board_model.Comment

	clock time.Time
	fail  map[string]error
}

func New() *Store {
	return &Store{
		users:    make(map[string]*auth_model.User),
		boards:   make(map[string]*board_model.Board),
		columns:  make(map[string]*board_model.Column),
		tasks:    make(map[string]*board_model.Task),
		comments: make(map[string]*board_model.Comment),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		fail:     make(map[string]error),
	}
}

// FailWith injects an error for one named store operation, simulating a
// store failure partway through a cascade.
func (s *Store) FailWith(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op] = err
}

func (s *Store) failure(op string) error {
	return s.fail[op]
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// AddUser seeds an account and returns it.
func (s *Store) AddUser(fullName, email string) *auth_model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.tick()
	u := &auth_model.User{
		ID:        uuid.New().String(),
		FullName:  fullName,
		Email:     email,
		Boards:    pq.StringArray{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[u.ID] = u
	return u
}

func (s *Store) User(id string) *auth_model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func (s *Store) Board(id string) *board_model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boards[id]
}

func (s *Store) Column(id string) *board_model.Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.columns[id]
}

func (s *Store) Task(id string) *board_model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[id]
}

func (s *Store) Comment(id string) *board_model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comments[id]
}

func (s *Store) CountBoards() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.boards)
}

func (s *Store) TasksByBoard(boardID string) []*board_model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []*board_model.Task
	for _, t := range s.tasks {
		if t.BoardID == boardID {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

func (s *Store) ColumnsByBoard(boardID string) []*board_model.Column {
	s.mu.Lock()
	defer s.mu.Unlock()

	var columns []*board_model.Column
	for _, c := range s.columns {
		if c.BoardID == boardID {
			columns = append(columns, c)
		}
	}
	return columns
}

func (s *Store) CommentsByTask(taskID string) []*board_model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var comments []*board_model.Comment
	for _, c := range s.comments {
		if c.TaskID == taskID {
			comments = append(comments, c)
		}
	}
	return comments
}

// Accessor views implementing the board_services store interfaces.

func (s *Store) UserStore() *UserStore       { return &UserStore{s} }
func (s *Store) BoardStore() *BoardStore     { return &BoardStore{s} }
func (s *Store) ColumnStore() *ColumnStore   { return &ColumnStore{s} }
func (s *Store) TaskStore() *TaskStore       { return &TaskStore{s} }
func (s *Store) CommentStore() *CommentStore { return &CommentStore{s} }

type UserStore struct{ s *Store }

func (r *UserStore) GetByID(_ context.Context, userID string) (*auth_model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, auth_repository.ErrUserNotFound
	}
	return u, nil
}

func (r *UserStore) GetByEmail(_ context.Context, email string) (*auth_model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, auth_repository.ErrUserNotFound
}

// GetByFullName matches the SQL repository: oldest account wins on name
// collisions.
func (r *UserStore) GetByFullName(_ context.Context, fullName string) (*auth_model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matches []*auth_model.User
	for _, u := range r.s.users {
		if u.FullName == fullName {
			matches = append(matches, u)
		}
	}
	if len(matches) == 0 {
		return nil, auth_repository.ErrUserNotFound
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})
	return matches[0], nil
}

func (r *UserStore) AppendBoard(_ context.Context, userID, boardID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("users.appendBoard"); err != nil {
		return err
	}
	u, ok := r.s.users[userID]
	if !ok {
		return auth_repository.ErrUserNotFound
	}
	u.Boards = append(u.Boards, boardID)
	return nil
}

func (r *UserStore) RemoveBoardFromAll(_ context.Context, boardID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("users.removeBoardFromAll"); err != nil {
		return err
	}
	for _, u := range r.s.users {
		u.Boards = remove(u.Boards, boardID)
	}
	return nil
}

type BoardStore struct{ s *Store }

func (r *BoardStore) Create(_ context.Context, title, description, ownerID string) (*board_model.Board, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("boards.create"); err != nil {
		return nil, err
	}
	now := r.s.tick()
	board := &board_model.Board{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Columns:     pq.StringArray{},
		Members:     pq.StringArray{ownerID},
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.boards[board.ID] = board
	return board, nil
}

func (r *BoardStore) GetByID(_ context.Context, boardID string) (*board_model.Board, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	board, ok := r.s.boards[boardID]
	if !ok {
		return nil, board_repository.ErrBoardNotFound
	}
	return board, nil
}

func (r *BoardStore) GetDetail(ctx context.Context, boardID string) (*board_model.BoardDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	board, ok := r.s.boards[boardID]
	if !ok {
		return nil, board_repository.ErrBoardNotFound
	}

	detail := r.s.detail(board)
	detail.Owner = r.s.users[board.OwnerID]
	for _, memberID := range board.Members {
		if u, ok := r.s.users[memberID]; ok {
			detail.Members = append(detail.Members, u)
		}
	}
	return detail, nil
}

func (r *BoardStore) ListDetailsByMember(_ context.Context, userID string) ([]*board_model.BoardDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.listDetails(func(b *board_model.Board) bool {
		for _, m := range b.Members {
			if m == userID {
				return true
			}
		}
		return false
	}), nil
}

func (r *BoardStore) ListDetailsByOwner(_ context.Context, userID string) ([]*board_model.BoardDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.listDetails(func(b *board_model.Board) bool {
		return b.OwnerID == userID
	}), nil
}

func (r *BoardStore) UpdateFields(_ context.Context, boardID, title, description string) (*board_model.Board, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("boards.updateFields"); err != nil {
		return nil, err
	}
	board, ok := r.s.boards[boardID]
	if !ok {
		return nil, board_repository.ErrBoardNotFound
	}
	board.Title = title
	board.Description = description
	board.UpdatedAt = r.s.tick()
	return board, nil
}

func (r *BoardStore) AppendColumn(_ context.Context, boardID, columnID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("boards.appendColumn"); err != nil {
		return err
	}
	board, ok := r.s.boards[boardID]
	if !ok {
		return board_repository.ErrBoardNotFound
	}
	board.Columns = append(board.Columns, columnID)
	return nil
}

func (r *BoardStore) RemoveColumn(_ context.Context, boardID, columnID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("boards.removeColumn"); err != nil {
		return err
	}
	board, ok := r.s.boards[boardID]
	if !ok {
		return board_repository.ErrBoardNotFound
	}
	board.Columns = remove(board.Columns, columnID)
	return nil
}

func (r *BoardStore) AppendMember(_ context.Context, boardID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("boards.appendMember"); err != nil {
		return err
	}
	board, ok := r.s.boards[boardID]
	if !ok {
		return board_repository.ErrBoardNotFound
	}
	board.Members = append(board.Members, userID)
	return nil
}

func (r *BoardStore) Delete(_ context.Context, boardID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("boards.delete"); err != nil {
		return err
	}
	if _, ok := r.s.boards[boardID]; !ok {
		return board_repository.ErrBoardNotFound
	}
	delete(r.s.boards, boardID)
	return nil
}

// IsMember and GetOwnerID satisfy middlewares.BoardRepoInterface.

func (r *BoardStore) IsMember(_ context.Context, boardID, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	board, ok := r.s.boards[boardID]
	if !ok {
		return false, board_repository.ErrBoardNotFound
	}
	for _, m := range board.Members {
		if m == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *BoardStore) GetOwnerID(_ context.Context, boardID string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	board, ok := r.s.boards[boardID]
	if !ok {
		return "", board_repository.ErrBoardNotFound
	}
	return board.OwnerID, nil
}

type ColumnStore struct{ s *Store }

func (r *ColumnStore) Create(_ context.Context, title, boardID string) (*board_model.Column, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("columns.create"); err != nil {
		return nil, err
	}
	now := r.s.tick()
	column := &board_model.Column{
		ID:        uuid.New().String(),
		Title:     title,
		BoardID:   boardID,
		Tasks:     pq.StringArray{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.columns[column.ID] = column
	return column, nil
}

func (r *ColumnStore) GetByID(_ context.Context, columnID string) (*board_model.Column, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	column, ok := r.s.columns[columnID]
	if !ok {
		return nil, board_repository.ErrColumnNotFound
	}
	return column, nil
}

func (r *ColumnStore) Rename(_ context.Context, columnID, title string) (*board_model.Column, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	column, ok := r.s.columns[columnID]
	if !ok {
		return nil, board_repository.ErrColumnNotFound
	}
	column.Title = title
	column.UpdatedAt = r.s.tick()
	return column, nil
}

func (r *ColumnStore) AppendTask(_ context.Context, columnID, taskID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("columns.appendTask"); err != nil {
		return err
	}
	column, ok := r.s.columns[columnID]
	if !ok {
		return board_repository.ErrColumnNotFound
	}
	column.Tasks = append(column.Tasks, taskID)
	return nil
}

func (r *ColumnStore) RemoveTask(_ context.Context, columnID, taskID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("columns.removeTask"); err != nil {
		return err
	}
	column, ok := r.s.columns[columnID]
	if !ok {
		return board_repository.ErrColumnNotFound
	}
	column.Tasks = remove(column.Tasks, taskID)
	return nil
}

func (r *ColumnStore) ClearTasks(_ context.Context, columnID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("columns.clearTasks"); err != nil {
		return err
	}
	column, ok := r.s.columns[columnID]
	if !ok {
		return board_repository.ErrColumnNotFound
	}
	column.Tasks = pq.StringArray{}
	return nil
}

func (r *ColumnStore) Delete(_ context.Context, columnID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("columns.delete"); err != nil {
		return err
	}
	if _, ok := r.s.columns[columnID]; !ok {
		return board_repository.ErrColumnNotFound
	}
	delete(r.s.columns, columnID)
	return nil
}

func (r *ColumnStore) DeleteByBoard(_ context.Context, boardID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("columns.deleteByBoard"); err != nil {
		return err
	}
	for id, c := range r.s.columns {
		if c.BoardID == boardID {
			delete(r.s.columns, id)
		}
	}
	return nil
}

type TaskStore struct{ s *Store }

func (r *TaskStore) Create(_ context.Context, task *board_model.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("tasks.create"); err != nil {
		return err
	}
	task.ID = uuid.New().String()
	now := r.s.tick()
	task.CreatedAt = now
	task.UpdatedAt = now
	stored := *task
	r.s.tasks[task.ID] = &stored
	return nil
}

func (r *TaskStore) GetByID(_ context.Context, taskID string) (*board_model.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	task, ok := r.s.tasks[taskID]
	if !ok {
		return nil, board_repository.ErrTaskNotFound
	}
	return task, nil
}

func (r *TaskStore) UpdateFields(_ context.Context, taskID, title, description string, priority board_model.Priority, assignedTo *string) (*board_model.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("tasks.updateFields"); err != nil {
		return nil, err
	}
	task, ok := r.s.tasks[taskID]
	if !ok {
		return nil, board_repository.ErrTaskNotFound
	}
	task.Title = title
	task.Description = description
	task.Priority = priority
	task.AssignedTo = assignedTo
	task.UpdatedAt = r.s.tick()
	return task, nil
}

func (r *TaskStore) SetColumn(_ context.Context, taskID, columnID string) (*board_model.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("tasks.setColumn"); err != nil {
		return nil, err
	}
	task, ok := r.s.tasks[taskID]
	if !ok {
		return nil, board_repository.ErrTaskNotFound
	}
	task.ColumnID = columnID
	task.UpdatedAt = r.s.tick()
	return task, nil
}

func (r *TaskStore) Delete(_ context.Context, taskID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("tasks.delete"); err != nil {
		return err
	}
	if _, ok := r.s.tasks[taskID]; !ok {
		return board_repository.ErrTaskNotFound
	}
	delete(r.s.tasks, taskID)
	return nil
}

func (r *TaskStore) DeleteByColumn(_ context.Context, columnID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("tasks.deleteByColumn"); err != nil {
		return nil, err
	}
	deleted := []string{}
	for id, t := range r.s.tasks {
		if t.ColumnID == columnID {
			deleted = append(deleted, id)
			delete(r.s.tasks, id)
		}
	}
	return deleted, nil
}

func (r *TaskStore) DeleteByBoard(_ context.Context, boardID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("tasks.deleteByBoard"); err != nil {
		return nil, err
	}
	deleted := []string{}
	for id, t := range r.s.tasks {
		if t.BoardID == boardID {
			deleted = append(deleted, id)
			delete(r.s.tasks, id)
		}
	}
	return deleted, nil
}

type CommentStore struct{ s *Store }

func (r *CommentStore) Create(_ context.Context, comment *board_model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("comments.create"); err != nil {
		return err
	}
	comment.ID = uuid.New().String()
	now := r.s.tick()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	stored := *comment
	r.s.comments[comment.ID] = &stored
	return nil
}

func (r *CommentStore) GetByID(_ context.Context, commentID string) (*board_model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comment, ok := r.s.comments[commentID]
	if !ok {
		return nil, board_repository.ErrCommentNotFound
	}
	return comment, nil
}

func (r *CommentStore) ListByTask(_ context.Context, taskID string) ([]*board_model.CommentDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var comments []*board_model.Comment
	for _, c := range r.s.comments {
		if c.TaskID == taskID {
			comments = append(comments, c)
		}
	}
	// Newest first, as the SQL repository orders.
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})

	details := make([]*board_model.CommentDetail, 0, len(comments))
	for _, c := range comments {
		details = append(details, &board_model.CommentDetail{
			ID:        c.ID,
			Content:   c.Content,
			TaskID:    c.TaskID,
			Author:    r.s.users[c.UserID],
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return details, nil
}

func (r *CommentStore) UpdateContent(_ context.Context, commentID, content string) (*board_model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("comments.update"); err != nil {
		return nil, err
	}
	comment, ok := r.s.comments[commentID]
	if !ok {
		return nil, board_repository.ErrCommentNotFound
	}
	comment.Content = content
	comment.UpdatedAt = r.s.tick()
	return comment, nil
}

func (r *CommentStore) Delete(_ context.Context, commentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("comments.delete"); err != nil {
		return err
	}
	if _, ok := r.s.comments[commentID]; !ok {
		return board_repository.ErrCommentNotFound
	}
	delete(r.s.comments, commentID)
	return nil
}

func (r *CommentStore) DeleteByTask(_ context.Context, taskID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("comments.deleteByTask"); err != nil {
		return err
	}
	for id, c := range r.s.comments {
		if c.TaskID == taskID {
			delete(r.s.comments, id)
		}
	}
	return nil
}

func (r *CommentStore) DeleteByTasks(_ context.Context, taskIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("comments.deleteByTasks"); err != nil {
		return err
	}
	wanted := make(map[string]bool, len(taskIDs))
	for _, id := range taskIDs {
		wanted[id] = true
	}
	for id, c := range r.s.comments {
		if wanted[c.TaskID] {
			delete(r.s.comments, id)
		}
	}
	return nil
}

// detail and listDetails assemble populated aggregates the way the SQL
// repository does: columns in the board's sequence order, tasks in each
// column's sequence order.

func (s *Store) detail(board *board_model.Board) *board_model.BoardDetail {
	detail := &board_model.BoardDetail{
		ID:          board.ID,
		Title:       board.Title,
		Description: board.Description,
		Columns:     []*board_model.ColumnDetail{},
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
	}
	for _, columnID := range board.Columns {
		column, ok := s.columns[columnID]
		if !ok {
			continue
		}
		cd := &board_model.ColumnDetail{
			ID:        column.ID,
			Title:     column.Title,
			BoardID:   column.BoardID,
			Tasks:     []*board_model.TaskDetail{},
			CreatedAt: column.CreatedAt,
			UpdatedAt: column.UpdatedAt,
		}
		for _, taskID := range column.Tasks {
			task, ok := s.tasks[taskID]
			if !ok {
				continue
			}
			td := &board_model.TaskDetail{
				ID:          task.ID,
				Title:       task.Title,
				Description: task.Description,
				Priority:    task.Priority,
				ColumnID:    task.ColumnID,
				BoardID:     task.BoardID,
				CreatedAt:   task.CreatedAt,
				UpdatedAt:   task.UpdatedAt,
			}
			if task.AssignedTo != nil {
				td.Assignee = s.users[*task.AssignedTo]
			}
			cd.Tasks = append(cd.Tasks, td)
		}
		detail.Columns = append(detail.Columns, cd)
	}
	return detail
}

func (s *Store) listDetails(match func(*board_model.Board) bool) []*board_model.BoardDetail {
	var boards []*board_model.Board
	for _, b := range s.boards {
		if match(b) {
			boards = append(boards, b)
		}
	}
	sort.Slice(boards, func(i, j int) bool {
		return boards[i].CreatedAt.Before(boards[j].CreatedAt)
	})

	details := make([]*board_model.BoardDetail, 0, len(boards))
	for _, b := range boards {
		details = append(details, s.detail(b))
	}
	return details
}

func remove(arr pq.StringArray, value string) pq.StringArray {
	out := arr[:0]
	for _, v := range arr {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
