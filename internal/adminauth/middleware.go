package adminauth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/y84-dev/API-FRIZZLY/internal/storage"
)

type contextKey string

const AdminIDKey contextKey = "adminID"

// NewMiddleware создаёт middleware админской аутентификации.
// Bearer-токен — это id записи администратора: токен валиден, если такая
// запись существует. Отдельного хранилища сессий нет.
func NewMiddleware(log *slog.Logger, adminRepo storage.AdminStorage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "missing token")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "invalid token format")
				return
			}
			token := parts[1]

			admin, err := adminRepo.GetAdminByID(r.Context(), token)
			if err != nil {
				if errors.Is(err, storage.ErrAdminNotFound) {
					writeError(w, http.StatusForbidden, "admin access required")
					return
				}
				log.Error("admin lookup failed", slog.Any("error", err))
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), AdminIDKey, admin.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext извлекает id администратора из контекста.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AdminIDKey).(string)
	return id, ok
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":     "error",
		"message":    message,
		"statusCode": status,
	})
}
