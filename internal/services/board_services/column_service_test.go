package board_services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lianjung1/kanban-app/internal/repository/board_repository"
	"github.com/lianjung1/kanban-app/internal/testutil/memstore"
)

func newColumnService(store *memstore.Store) *ColumnService {
	return NewColumnService(
		store.BoardStore(),
		store.ColumnStore(),
		store.TaskStore(),
		store.CommentStore(),
	)
}

func TestCreateColumn(t *testing.T) {
	store := memstore.New()
	boardSvc := newBoardService(store)
	columnSvc := newColumnService(store)
	owner := store.AddUser("Ada Lovelace", "ada@example.com")
	ctx := context.Background()

	board, err := boardSvc.Create(ctx, owner.ID, "Sprint 1", "")
	require.NoError(t, err)

	column, err := columnSvc.Create(ctx, "Todo", board.ID)
	require.NoError(t, err)

	assert.Equal(t, "Todo", column.Title)
	assert.Equal(t, board.ID, column.BoardID)
	assert.Equal(t, []string{column.ID}, []string(store.Board(board.ID).Columns))
}

func TestCreateColumnValidation(t *testing.T) {
	store := memstore.New()
	columnSvc := newColumnService(store)
	ctx := context.Background()

	_, err := columnSvc.Create(ctx, "", "b1")
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = columnSvc.Create(ctx, "Todo", "")
	assert.ErrorIs(t, err, ErrBoardIDRequired)
}

// The column row is written before the board lookup, so an unknown board
// reports not-found with the orphan row already persisted.
func TestCreateColumnUnknownBoardLeavesOrphan(t *testing.T) {
	store := memstore.New()
	columnSvc := newColumnService(store)

	_, err := columnSvc.Create(context.Background(), "Todo", "missing-board")
	assert.ErrorIs(t, err, board_repository.ErrBoardNotFound)
	assert.Len(t, store.ColumnsByBoard("missing-board"), 1)
}

func TestRenameColumn(t *testing.T) {
	store := memstore.New()
	boardSvc := newBoardService(store)
	columnSvc := newColumnService(store)
	owner := store.AddUser("Ada Lovelace", "ada@example.com")
	ctx := context.Background()

	board, err := boardSvc.Create(ctx, owner.ID, "Sprint 1", "")
	require.NoError(t, err)
	column, err := columnSvc.Create(ctx, "Todo", board.ID)
	require.NoError(t, err)

	renamed, err := columnSvc.Rename(ctx, column.ID, "Backlog")
	require.NoError(t, err)
	assert.Equal(t, "Backlog", renamed.Title)

	_, err = columnSvc.Rename(ctx, column.ID, "  ")
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestDeleteColumnCascades(t *testing.T) {
	store := memstore.New()
	boardSvc := newBoardService(store)
	columnSvc := newColumnService(store)
	taskSvc := NewTaskService(store.ColumnStore(), store.TaskStore(), store.CommentStore(), store.UserStore())
	commentSvc := NewCommentService(store.CommentStore())
	owner := store.AddUser("Ada Lovelace", "ada@example.com")
	ctx := context.Background()

	board, err := boardSvc.Create(ctx, owner.ID, "Sprint 1", "")
	require.NoError(t, err)
	todo, err := columnSvc.Create(ctx, "Todo", board.ID)
	require.NoError(t, err)
	done, err := columnSvc.Create(ctx, "Done", board.ID)
	require.NoError(t, err)
	task, err := taskSvc.Create(ctx, "Write spec", "", "", "", todo.ID, board.ID)
	require.NoError(t, err)
	comment, err := commentSvc.Create(ctx, owner.ID, task.ID, "in progress")
	require.NoError(t, err)

	deleted, err := columnSvc.Delete(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, deleted.ID)

	assert.Nil(t, store.Column(todo.ID))
	assert.Nil(t, store.Task(task.ID))
	assert.Nil(t, store.Comment(comment.ID))
	assert.Equal(t, []string{done.ID}, []string(store.Board(board.ID).Columns))
}

func TestClearTasks(t *testing.T) {
	store := memstore.New()
	boardSvc := newBoardService(store)
	columnSvc := newColumnService(store)
	taskSvc := NewTaskService(store.ColumnStore(), store.TaskStore(), store.CommentStore(), store.UserStore())
	commentSvc := NewCommentService(store.CommentStore())
	owner := store.AddUser("Ada Lovelace", "ada@example.com")
	ctx := context.Background()

	board, err := boardSvc.Create(ctx, owner.ID, "Sprint 1", "")
	require.NoError(t, err)
	column, err := columnSvc.Create(ctx, "Todo", board.ID)
	require.NoError(t, err)
	first, err := taskSvc.Create(ctx, "Write spec", "", "", "", column.ID, board.ID)
	require.NoError(t, err)
	second, err := taskSvc.Create(ctx, "Review spec", "", "", "", column.ID, board.ID)
	require.NoError(t, err)
	_, err = commentSvc.Create(ctx, owner.ID, first.ID, "started")
	require.NoError(t, err)

	require.NoError(t, columnSvc.ClearTasks(ctx, column.ID))

	assert.NotNil(t, store.Column(column.ID))
	assert.Empty(t, store.Column(column.ID).Tasks)
	assert.Nil(t, store.Task(first.ID))
	assert.Nil(t, store.Task(second.ID))
	assert.Empty(t, store.CommentsByTask(first.ID))
}

func TestClearTasksUnknownColumn(t *testing.T) {
	store := memstore.New()
	columnSvc := newColumnService(store)

	err := columnSvc.ClearTasks(context.Background(), "missing")
	assert.ErrorIs(t, err, board_repository.ErrColumnNotFound)
}
