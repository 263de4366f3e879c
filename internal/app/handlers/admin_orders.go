package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/y84-dev/API-FRIZZLY/internal/adminauth"
	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
	"github.com/y84-dev/API-FRIZZLY/internal/service"
)

// Размер выборки polling-фолбэка ленты заказов
const recentOrdersLimit = 10

// AdminListOrdersHandler обрабатывает GET /api/admin/orders — все заказы
func AdminListOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminListOrdersHandler"
		logger := log.With(slog.String("op", op))

		orders, err := orderService.ListOrders(r.Context(), "")
		if err != nil {
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"orders": orders})
	}
}

// AdminGetOrderHandler обрабатывает GET /api/admin/orders/{id}
func AdminGetOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminGetOrderHandler"
		logger := log.With(slog.String("op", op))

		adminID, _ := adminauth.FromContext(r.Context())
		orderID := chi.URLParam(r, "id")

		order, err := orderService.GetOrder(r.Context(), orderID, adminID, true)
		if err != nil {
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"order": order})
	}
}

// AdminUpdateOrderHandler обрабатывает PUT /api/admin/orders/{id}.
// Смена статуса здесь — событие перехода: владельцу заказа создаётся
// уведомление и отправляется push.
func AdminUpdateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminUpdateOrderHandler"
		logger := log.With(slog.String("op", op))

		adminID, _ := adminauth.FromContext(r.Context())
		orderID := chi.URLParam(r, "id")

		var patch models.OrderPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondErrorMsg(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if _, err := orderService.UpdateOrder(r.Context(), orderID, adminID, &patch, true); err != nil {
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// AdminDeleteOrderHandler обрабатывает DELETE /api/admin/orders/{id}
func AdminDeleteOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminDeleteOrderHandler"
		logger := log.With(slog.String("op", op))

		adminID, _ := adminauth.FromContext(r.Context())
		orderID := chi.URLParam(r, "id")

		if err := orderService.DeleteOrder(r.Context(), orderID, adminID, true); err != nil {
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// AdminRecentOrdersHandler обрабатывает GET /api/admin/orders/recent —
// polling-фолбэк для клиентов без стриминга
func AdminRecentOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminRecentOrdersHandler"
		logger := log.With(slog.String("op", op))

		orders, err := orderService.ListRecent(r.Context(), recentOrdersLimit)
		if err != nil {
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"orders": orders})
	}
}
