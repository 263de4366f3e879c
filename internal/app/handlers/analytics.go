package handlers

import (
	"log/slog"
	"net/http"

	"github.com/y84-dev/API-FRIZZLY/internal/jwt-new/jwtmiddleware"
	"github.com/y84-dev/API-FRIZZLY/internal/service"
)

// OrderStatsHandler обрабатывает GET /api/analytics/orders —
// статистика по заказам текущего пользователя.
func OrderStatsHandler(log *slog.Logger, analytics service.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OrderStatsHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			respondErrorMsg(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		stats, err := analytics.OrderStats(r.Context(), userID)
		if err != nil {
			logger.Error("failed to compute order stats", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}

// AdminOrderStatsHandler обрабатывает GET /api/admin/analytics —
// статистика по всем заказам.
func AdminOrderStatsHandler(log *slog.Logger, analytics service.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminOrderStatsHandler"
		logger := log.With(slog.String("op", op))

		stats, err := analytics.OrderStats(r.Context(), "")
		if err != nil {
			logger.Error("failed to compute order stats", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}
