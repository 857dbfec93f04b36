package board_api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lianjung1/kanban-app/internal/api/middlewares"
	"github.com/lianjung1/kanban-app/internal/services/auth_services"
	"github.com/lianjung1/kanban-app/internal/services/board_services"
)

type CommentHandler struct {
	Service     *board_services.CommentService
	AuthService *auth_services.AuthService
}

func NewCommentHandler(s *board_services.CommentService, a *auth_services.AuthService) *CommentHandler {
	return &CommentHandler{Service: s, AuthService: a}
}

func (h *CommentHandler) CommentRoutes(r *mux.Router) {
	r.Handle("/api/comment",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.createComment)),
	).Methods("POST")

	r.Handle("/api/comment/{taskId}",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.listComments)),
	).Methods("GET")

	r.Handle("/api/comment/{commentId}",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.updateComment)),
	).Methods("PATCH")

	r.Handle("/api/comment/{commentId}",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.deleteComment)),
	).Methods("DELETE")
}

// listComments returns the task's comments newest first; the client re-sorts
// chronologically for display.
func (h *CommentHandler) listComments(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]

	comments, err := h.Service.List(r.Context(), taskID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) createComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskID  string `json:"taskId"`
		Content string `json:"content"`
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

	comment, err := h.Service.Create(r.Context(), userID, req.TaskID, req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) updateComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, err)
		return
	}
	defer r.Body.Close()

	commentID := mux.Vars(r)["commentId"]

	userID, ok := middlewares.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User authentication data missing", http.StatusInternalServerError)
		return
	}

	comment, err := h.Service.Update(r.Context(), userID, commentID, req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) deleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["commentId"]

	comment, err := h.Service.Delete(r.Context(), commentID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}
