package board_api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lianjung1/kanban-app/internal/api/middlewares"
	"github.com/lianjung1/kanban-app/internal/services/auth_services"
	"github.com/lianjung1/kanban-app/internal/services/board_services"
)

type ColumnHandler struct {
	Service     *board_services.ColumnService
	AuthService *auth_services.AuthService
}

func NewColumnHandler(s *board_services.ColumnService, a *auth_services.AuthService) *ColumnHandler {
	return &ColumnHandler{Service: s, AuthService: a}
}

func (h *ColumnHandler) ColumnRoutes(r *mux.Router) {
	r.Handle("/api/column",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.createColumn)),
	).Methods("POST")

	r.Handle("/api/column",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.updateColumn)),
	).Methods("PATCH")

	r.Handle("/api/column",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.deleteColumn)),
	).Methods("DELETE")

	r.Handle("/api/column/{id}/tasks",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.clearTasks)),
	).Methods("DELETE")
}

func (h *ColumnHandler) createColumn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		BoardID string `json:"boardId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, err)
		return
	}
	defer r.Body.Close()

	column, err := h.Service.Create(r.Context(), req.Title, req.BoardID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, column)
}

func (h *ColumnHandler) updateColumn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title"`
		ColumnID string `json:"columnId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, err)
		return
	}
	defer r.Body.Close()

	column, err := h.Service.Rename(r.Context(), req.ColumnID, req.Title)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, column)
}

func (h *ColumnHandler) deleteColumn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ColumnID string `json:"columnId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, err)
		return
	}
	defer r.Body.Close()

	column, err := h.Service.Delete(r.Context(), req.ColumnID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, column)
}

func (h *ColumnHandler) clearTasks(w http.ResponseWriter, r *http.Request) {
	columnID := mux.Vars(r)["id"]

	if err := h.Service.ClearTasks(r.Context(), columnID); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "All tasks deleted successfully"})
}
