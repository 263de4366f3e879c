package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/y84-dev/API-FRIZZLY/internal/jwt-new/jwtmiddleware"
	"github.com/y84-dev/API-FRIZZLY/internal/service"
)

// submitRequest — тело POST /api/order/submit: заказ обёрнут в поле order
type submitRequest struct {
	Order orderCreateRequest `json:"order"`
}

// SubmitResponse — ответ с выданным порядковым номером заказа
type SubmitResponse struct {
	Success     bool   `json:"success"`
	OrderID     string `json:"orderId"`
	OrderNumber int64  `json:"orderNumber"`
}

// SubmitOrderHandler обрабатывает POST /api/order/submit — создание заказа
// с последовательной нумерацией ORD<n>
func SubmitOrderHandler(log *slog.Logger, submitService service.SubmitService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SubmitOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			respondErrorMsg(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondErrorMsg(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := submitService.Submit(r.Context(), userID, req.Order.toModel())
		if err != nil {
			logger.Warn("order submit rejected", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, SubmitResponse{
			Success:     true,
			OrderID:     result.OrderID,
			OrderNumber: result.OrderNumber,
		})
	}
}
