package board_api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lianjung1/kanban-app/internal/api/middlewares"
	"github.com/lianjung1/kanban-app/internal/model/board_model"
	"github.com/lianjung1/kanban-app/internal/services/auth_services"
	"github.com/lianjung1/kanban-app/internal/services/board_services"
)

type TaskHandler struct {
	Service     *board_services.TaskService
	AuthService *auth_services.AuthService
}

func NewTaskHandler(s *board_services.TaskService, a *auth_services.AuthService) *TaskHandler {
	return &TaskHandler{Service: s, AuthService: a}
}

func (h *TaskHandler) TaskRoutes(r *mux.Router) {
	r.Handle("/api/task/move/{id}",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.moveTask)),
	).Methods("PATCH")

	r.Handle("/api/task/{boardId}",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.createTask)),
	).Methods("POST")

	r.Handle("/api/task/{id}",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.updateTask)),
	).Methods("PATCH")

	r.Handle("/api/task/{id}",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.deleteTask)),
	).Methods("DELETE")
}

func (h *TaskHandler) createTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string               `json:"title"`
		Description string               `json:"description"`
		Priority    board_model.Priority `json:"priority"`
		AssignedTo  string               `json:"assignedTo"`
		ColumnID    string               `json:"columnId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, err)
		return
	}
	defer r.Body.Close()

	boardID := mux.Vars(r)["boardId"]

	task, err := h.Service.Create(r.Context(), req.Title, req.Description, req.Priority,
		req.AssignedTo, req.ColumnID, boardID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) updateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string               `json:"title"`
		Description string               `json:"description"`
		Priority    board_model.Priority `json:"priority"`
		AssignedTo  string               `json:"assignedTo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, err)
		return
	}
	defer r.Body.Close()

	taskID := mux.Vars(r)["id"]

	task, err := h.Service.Update(r.Context(), taskID, req.Title, req.Description,
		req.Priority, req.AssignedTo)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) moveTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewColumnID    string `json:"newColumnId"`
		SourceColumnID string `json:"sourceColumnId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, err)
		return
	}
	defer r.Body.Close()

	taskID := mux.Vars(r)["id"]

	task, err := h.Service.Move(r.Context(), taskID, req.NewColumnID, req.SourceColumnID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) deleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	if err := h.Service.Delete(r.Context(), taskID); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
