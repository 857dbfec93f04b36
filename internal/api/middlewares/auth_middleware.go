package middlewares

import (
	"context"
	"net/http"

	"github.com/lianjung1/kanban-app/internal/services/auth_services"
)

type contextKey string

const userIDKey contextKey = "user_id"

// CookieName is the session cookie carrying the signed identity token.
const CookieName = "jwt"

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// AuthMiddleware verifies the identity cookie and attaches the acting user's
// id to the request context.
func AuthMiddleware(auth *auth_services.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		userID, err := auth.ParseToken(cookie.Value)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
