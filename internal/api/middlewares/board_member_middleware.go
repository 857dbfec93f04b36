package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lianjung1/kanban-app/internal/repository/board_repository"
)

type BoardRepoInterface interface {
	IsMember(ctx context.Context, boardID, userID string) (bool, error)
	GetOwnerID(ctx context.Context, boardID string) (string, error)
}

// RequireBoardMember gates single-board routes: the acting user must appear
// in the board's member set (the owner always does).
func RequireBoardMember(boardRepo BoardRepoInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		boardID, ok := vars["id"]
		if !ok || boardID == "" {
			http.Error(w, "Board ID is missing in URL path", http.StatusBadRequest)
			return
		}

		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "User authentication data missing", http.StatusInternalServerError)
			return
		}

		isMember, err := boardRepo.IsMember(r.Context(), boardID, userID)
		if err != nil {
			if errors.Is(err, board_repository.ErrBoardNotFound) {
				http.Error(w, "Board not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Error checking board membership", http.StatusInternalServerError)
			return
		}

		if !isMember {
			http.Error(w, "Access Forbidden: Not a board member", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireBoardOwner gates destructive board routes; deletion is an owner
// action.
func RequireBoardOwner(boardRepo BoardRepoInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		boardID, ok := vars["id"]
		if !ok || boardID == "" {
			http.Error(w, "Board ID is missing in URL path", http.StatusBadRequest)
			return
		}

		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "User authentication data missing", http.StatusInternalServerError)
			return
		}

		ownerID, err := boardRepo.GetOwnerID(r.Context(), boardID)
		if err != nil {
			if errors.Is(err, board_repository.ErrBoardNotFound) {
				http.Error(w, "Board not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Error checking board ownership", http.StatusInternalServerError)
			return
		}

		if ownerID != userID {
			http.Error(w, "Access Forbidden: Not the board owner", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
