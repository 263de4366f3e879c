package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
	"github.com/y84-dev/API-FRIZZLY/internal/jwt-new/jwtmiddleware"
	"github.com/y84-dev/API-FRIZZLY/internal/service"
)

// orderCreateRequest — тело запроса создания заказа.
// orderId опционален: пустой — идентификатор сгенерирует хранилище.
type orderCreateRequest struct {
	OrderID          string             `json:"orderId"`
	Items            []models.OrderItem `json:"items"`
	TotalAmount      float64            `json:"totalAmount"`
	DeliveryLocation string             `json:"deliveryLocation"`
}

func (r *orderCreateRequest) toModel() *models.Order {
	return &models.Order{
		ID:               r.OrderID,
		Items:            r.Items,
		TotalAmount:      r.TotalAmount,
		DeliveryLocation: r.DeliveryLocation,
	}
}

// ListOrdersHandler обрабатывает GET /api/orders — заказы текущего пользователя
func ListOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			respondErrorMsg(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		orders, err := orderService.ListOrders(r.Context(), userID)
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"orders": orders})
	}
}

// CreateOrderHandler обрабатывает POST /api/orders
func CreateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			respondErrorMsg(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req orderCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondErrorMsg(w, http.StatusBadRequest, "invalid request body")
			return
		}

		order, err := orderService.CreateOrder(r.Context(), userID, req.toModel())
		if err != nil {
			logger.Warn("order creation rejected", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{"success": true, "orderId": order.ID})
	}
}

// GetOrderHandler обрабатывает GET /api/orders/{id}
func GetOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			respondErrorMsg(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		orderID := chi.URLParam(r, "id")

		order, err := orderService.GetOrder(r.Context(), orderID, userID, false)
		if err != nil {
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"order": order})
	}
}

// UpdateOrderHandler обрабатывает PUT /api/orders/{id} — self-service
// обновление владельцем, уведомлений не порождает
func UpdateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			respondErrorMsg(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		orderID := chi.URLParam(r, "id")

		var patch models.OrderPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondErrorMsg(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if _, err := orderService.UpdateOrder(r.Context(), orderID, userID, &patch, false); err != nil {
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// DeleteOrderHandler обрабатывает DELETE /api/orders/{id}
func DeleteOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			respondErrorMsg(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		orderID := chi.URLParam(r, "id")

		if err := orderService.DeleteOrder(r.Context(), orderID, userID, false); err != nil {
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
