package board_api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lianjung1/kanban-app/internal/api/middlewares"
	"github.com/lianjung1/kanban-app/internal/model/board_model"
	"github.com/lianjung1/kanban-app/internal/services/auth_services"
	"github.com/lianjung1/kanban-app/internal/services/board_services"
	"github.com/lianjung1/kanban-app/internal/testutil/memstore"
)

type apiEnv struct {
	store  *memstore.Store
	router *mux.Router
	auth   *auth_services.AuthService
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()

	store := memstore.New()
	auth := auth_services.NewAuthService(nil, "test-secret")

	boardSvc := board_services.NewBoardService(
		store.BoardStore(), store.ColumnStore(), store.TaskStore(), store.CommentStore(), store.UserStore())
	columnSvc := board_services.NewColumnService(
		store.BoardStore(), store.ColumnStore(), store.TaskStore(), store.CommentStore())
	taskSvc := board_services.NewTaskService(
		store.ColumnStore(), store.TaskStore(), store.CommentStore(), store.UserStore())
	commentSvc := board_services.NewCommentService(store.CommentStore())

	router := mux.NewRouter()
	NewBoardHandler(boardSvc, auth, store.BoardStore()).BoardRoutes(router)
	NewColumnHandler(columnSvc, auth).ColumnRoutes(router)
	NewTaskHandler(taskSvc, auth).TaskRoutes(router)
	NewCommentHandler(commentSvc, auth).CommentRoutes(router)

	return &apiEnv{store: store, router: router, auth: auth}
}

// do issues a request as the given user; an empty userID sends no cookie.
func (e *apiEnv) do(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		token, err := e.auth.IssueToken(userID)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: middlewares.CookieName, Value: token})
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

// Full board flow: board, two columns, a task created in Todo, moved to
// Done, visible under Done on the populated board fetch.
func TestBoardFlow(t *testing.T) {
	env := newAPIEnv(t)
	owner := env.store.AddUser("Ada Lovelace", "ada@example.com")

	rec := env.do(t, "POST", "/api/board", owner.ID, map[string]string{
		"title": "Sprint 1", "description": "first sprint",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var board board_model.Board
	decodeInto(t, rec, &board)

	rec = env.do(t, "POST", "/api/column", owner.ID, map[string]string{
		"title": "Todo", "boardId": board.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var todo board_model.Column
	decodeInto(t, rec, &todo)

	rec = env.do(t, "POST", "/api/column", owner.ID, map[string]string{
		"title": "Done", "boardId": board.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var done board_model.Column
	decodeInto(t, rec, &done)

	rec = env.do(t, "POST", "/api/task/"+board.ID, owner.ID, map[string]string{
		"title": "Write spec", "priority": "high", "columnId": todo.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var task board_model.Task
	decodeInto(t, rec, &task)
	assert.Equal(t, board_model.PriorityHigh, task.Priority)

	rec = env.do(t, "PATCH", "/api/task/move/"+task.ID, owner.ID, map[string]string{
		"newColumnId": done.ID, "sourceColumnId": todo.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "GET", "/api/board/"+board.ID, owner.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail board_model.BoardDetail
	decodeInto(t, rec, &detail)

	require.Len(t, detail.Columns, 2)
	assert.Equal(t, todo.ID, detail.Columns[0].ID)
	assert.Empty(t, detail.Columns[0].Tasks)
	require.Len(t, detail.Columns[1].Tasks, 1)
	assert.Equal(t, task.ID, detail.Columns[1].Tasks[0].ID)
	assert.Equal(t, board_model.PriorityHigh, detail.Columns[1].Tasks[0].Priority)
	assert.Equal(t, done.ID, detail.Columns[1].Tasks[0].ColumnID)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, owner.ID, detail.Owner.ID)
}

func TestBoardRoutesRequireAuth(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, "GET", "/api/board", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest("GET", "/api/board", nil)
	req.AddCookie(&http.Cookie{Name: middlewares.CookieName, Value: "garbage"})
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestBoardAccessControl(t *testing.T) {
	env := newAPIEnv(t)
	owner := env.store.AddUser("Ada Lovelace", "ada@example.com")
	member := env.store.AddUser("Grace Hopper", "grace@example.com")
	outsider := env.store.AddUser("Mallory Mal", "mallory@example.com")

	rec := env.do(t, "POST", "/api/board", owner.ID, map[string]string{"title": "Private"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var board board_model.Board
	decodeInto(t, rec, &board)

	rec = env.do(t, "PATCH", "/api/board/"+board.ID, owner.ID, map[string]string{
		"shareeEmail": member.Email,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Non-member reads are forbidden; members may read.
	rec = env.do(t, "GET", "/api/board/"+board.ID, outsider.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(t, "GET", "/api/board/"+board.ID, member.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Deletion is owner-only.
	rec = env.do(t, "DELETE", "/api/board/"+board.ID, member.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(t, "DELETE", "/api/board/"+board.ID, owner.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Board deleted successfully")

	rec = env.do(t, "GET", "/api/board/"+board.ID, owner.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	env := newAPIEnv(t)
	user := env.store.AddUser("Ada Lovelace", "ada@example.com")

	// Validation failures.
	rec := env.do(t, "POST", "/api/board", user.ID, map[string]string{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, "POST", "/api/task/some-board", user.ID, map[string]string{
		"title": "Task", "priority": "critical", "columnId": "c1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown references.
	rec = env.do(t, "POST", "/api/column", user.ID, map[string]string{
		"title": "Todo", "boardId": "missing",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, "PATCH", "/api/task/missing", user.ID, map[string]string{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Malformed JSON.
	req := httptest.NewRequest("POST", "/api/board", strings.NewReader("{not json"))
	token, err := env.auth.IssueToken(user.ID)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: middlewares.CookieName, Value: token})
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid request payload")
}

func TestShareBoardConflicts(t *testing.T) {
	env := newAPIEnv(t)
	owner := env.store.AddUser("Ada Lovelace", "ada@example.com")
	member := env.store.AddUser("Grace Hopper", "grace@example.com")

	rec := env.do(t, "POST", "/api/board", owner.ID, map[string]string{"title": "Shared"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var board board_model.Board
	decodeInto(t, rec, &board)

	rec = env.do(t, "PATCH", "/api/board/"+board.ID, owner.ID, map[string]string{
		"shareeEmail": member.Email,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "PATCH", "/api/board/"+board.ID, owner.ID, map[string]string{
		"shareeEmail": member.Email,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already a member")

	rec = env.do(t, "PATCH", "/api/board/"+board.ID, owner.ID, map[string]string{
		"shareeEmail": "nobody@example.com",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommentEndpoints(t *testing.T) {
	env := newAPIEnv(t)
	author := env.store.AddUser("Ada Lovelace", "ada@example.com")
	other := env.store.AddUser("Grace Hopper", "grace@example.com")

	rec := env.do(t, "POST", "/api/comment", author.ID, map[string]string{
		"taskId": "t1", "content": "first",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var comment board_model.Comment
	decodeInto(t, rec, &comment)
	assert.Equal(t, author.ID, comment.UserID)

	rec = env.do(t, "GET", "/api/comment/t1", author.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var comments []*board_model.CommentDetail
	decodeInto(t, rec, &comments)
	require.Len(t, comments, 1)
	require.NotNil(t, comments[0].Author)
	assert.Equal(t, author.FullName, comments[0].Author.FullName)

	// Only the author may edit.
	rec = env.do(t, "PATCH", "/api/comment/"+comment.ID, other.ID, map[string]string{
		"content": "edited",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, "PATCH", "/api/comment/"+comment.ID, author.ID, map[string]string{
		"content": "edited",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Delete returns the removed comment.
	rec = env.do(t, "DELETE", "/api/comment/"+comment.ID, author.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted board_model.Comment
	decodeInto(t, rec, &deleted)
	assert.Equal(t, comment.ID, deleted.ID)
	assert.Equal(t, "edited", deleted.Content)
}

func TestClearColumnTasksEndpoint(t *testing.T) {
	env := newAPIEnv(t)
	owner := env.store.AddUser("Ada Lovelace", "ada@example.com")

	rec := env.do(t, "POST", "/api/board", owner.ID, map[string]string{"title": "Sprint 1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var board board_model.Board
	decodeInto(t, rec, &board)

	rec = env.do(t, "POST", "/api/column", owner.ID, map[string]string{
		"title": "Todo", "boardId": board.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var column board_model.Column
	decodeInto(t, rec, &column)

	rec = env.do(t, "POST", "/api/task/"+board.ID, owner.ID, map[string]string{
		"title": "Write spec", "columnId": column.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, "DELETE", "/api/column/"+column.ID+"/tasks", owner.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "All tasks deleted successfully")

	assert.Empty(t, env.store.TasksByBoard(board.ID))
	assert.Empty(t, env.store.Column(column.ID).Tasks)
}
