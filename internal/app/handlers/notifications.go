package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/y84-dev/API-FRIZZLY/internal/jwt-new/jwtmiddleware"
	"github.com/y84-dev/API-FRIZZLY/internal/service"
)

// ListNotificationsHandler обрабатывает GET /api/notifications —
// лента уведомлений текущего пользователя, новые первыми.
func ListNotificationsHandler(log *slog.Logger, notifications service.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListNotificationsHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			respondErrorMsg(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		list, err := notifications.ListNotifications(r.Context(), userID)
		if err != nil {
			logger.Error("failed to list notifications", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"notifications": list})
	}
}

// MarkNotificationReadHandler обрабатывает PUT /api/notifications/{id}/read.
// Чужие уведомления неотличимы от несуществующих.
func MarkNotificationReadHandler(log *slog.Logger, notifications service.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MarkNotificationReadHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			respondErrorMsg(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondErrorMsg(w, http.StatusBadRequest, "notification id must be an integer")
			return
		}

		if err := notifications.MarkNotificationRead(r.Context(), id, userID); err != nil {
			logger.Error("failed to mark notification read", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
