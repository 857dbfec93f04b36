package socket_api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lianjung1/kanban-app/internal/api/middlewares"
	"github.com/lianjung1/kanban-app/internal/services/auth_services"
	"github.com/lianjung1/kanban-app/internal/services/socket_services"
)

type SocketHandler struct {
	Hub         *socket_services.Hub
	AuthService *auth_services.AuthService
}

func NewSocketHandler(hub *socket_services.Hub, a *auth_services.AuthService) *SocketHandler {
	return &SocketHandler{Hub: hub, AuthService: a}
}

func (h *SocketHandler) SocketRoutes(r *mux.Router) {
	r.Handle("/api/ws",
		middlewares.AuthMiddleware(h.AuthService, http.HandlerFunc(h.serveWS)),
	).Methods("GET")
}

func (h *SocketHandler) serveWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User authentication data missing", http.StatusInternalServerError)
		return
	}

	socket_services.ServeWS(h.Hub, userID, w, r)
}
