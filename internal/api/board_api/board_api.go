package board_api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lianjung1/kanban-app/internal/api/middlewares"
	"github.com/lianjung1/kanban-app/internal/repository/auth_repository"
	"github.com/lianjung1/kanban-app/internal/repository/board_repository"
	"github.com/lianjung1/kanban-app/internal/services/auth_services"
	"github.com/lianjung1/kanban-app/internal/services/board_services"
)

// handleError maps the service and store error taxonomy onto HTTP statuses.
// Unexpected store errors pass their message through in the 500 body.
func handleError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, board_repository.ErrBoardNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Board not found"})
	case errors.Is(err, board_repository.ErrColumnNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Column not found"})
	case errors.Is(err, board_repository.ErrTaskNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Task not found"})
	case errors.Is(err, board_repository.ErrCommentNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Comment not found"})
	case errors.Is(err, auth_repository.ErrUserNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "User not found"})
	case errors.Is(err, board_services.ErrAlreadyMember):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "User already a member"})
	case errors.Is(err, board_services.ErrNotCommentAuthor):
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "You are not authorized to update this comment"})
	case errors.Is(err, board_services.ErrTitleRequired),
		errors.Is(err, board_services.ErrBoardIDRequired),
		errors.Is(err, board_services.ErrColumnIDRequired),
		errors.Is(err, board_services.ErrContentRequired),
		errors.Is(err, board_services.ErrInvalidPriority):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
	default:
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid request payload"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type BoardHandler struct {
	Service     *board_services.BoardService
	AuthService *auth_services.AuthService
	BoardRepo   middlewares.BoardRepoInterface
}

func NewBoardHandler(s *board_services.BoardService, a *auth_services.AuthService, br middlewares.BoardRepoInterface) *BoardHandler {
	return &BoardHandler{Service: s, AuthService: a, BoardRepo: br}
}

func (h *BoardHandler) BoardRoutes(r *mux.Router) {
	r.Handle("/api/board",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.listBoards)),
	).Methods("GET")

	r.Handle("/api/board",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.createBoard)),
	).Methods("POST")

	boardRouter := r.PathPrefix("/api/board/{id}").Subrouter()

	boardRouter.Handle("",
		middlewares.AuthMiddleware(h.AuthService,
			middlewares.RequireBoardMember(h.BoardRepo, http.HandlerFunc(h.getBoard))),
	).Methods("GET")

	boardRouter.Handle("",
		middlewares.AuthMiddleware(h.AuthService,
			middlewares.RequireBoardMember(h.BoardRepo, http.HandlerFunc(h.updateBoard))),
	).Methods("PATCH")

	boardRouter.Handle("",
		middlewares.AuthMiddleware(h.AuthService,
			middlewares.RequireBoardOwner(h.BoardRepo, http.HandlerFunc(h.deleteBoard))),
	).Methods("DELETE")
}

func (h *BoardHandler) listBoards(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User authentication data missing", http.StatusInternalServerError)
		return
	}

	boards, err := h.Service.List(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, boards)
}

func (h *BoardHandler) getBoard(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["id"]

	board, err := h.Service.Get(r.Context(), boardID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, board)
}

func (h *BoardHandler) createBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, err)
		return
	}
	defer r.Body.Close()

	userID, ok := middlewares.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User authentication data missing", http.StatusInternalServerError)
		return
	}

	board, err := h.Service.Create(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, board)
}

func (h *BoardHandler) updateBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ShareeEmail string `json:"shareeEmail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, err)
		return
	}
	defer r.Body.Close()

	boardID := mux.Vars(r)["id"]

	board, err := h.Service.Update(r.Context(), boardID, req.Title, req.Description, req.ShareeEmail)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, board)
}

func (h *BoardHandler) deleteBoard(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["id"]

	if err := h.Service.Delete(r.Context(), boardID); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Board deleted successfully"})
}
