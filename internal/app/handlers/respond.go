package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/y84-dev/API-FRIZZLY/internal/service"
)

// errorResponse — единый конверт ошибок API
type errorResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code,omitempty"`
	Details    string `json:"details,omitempty"`
}

// respondJSON пишет ответ в формате JSON
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondErrorMsg пишет конверт ошибки с заданным статусом и сообщением
func respondErrorMsg(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{
		Status:     "error",
		Message:    message,
		StatusCode: status,
	})
}

// respondError переводит ошибку бизнес-логики в конверт ошибки.
// Неожиданные ошибки дают 500 без деталей (детали — только при
// включённом DEBUG_ERRORS, для отладки).
func respondError(w http.ResponseWriter, log *slog.Logger, err error) {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		respondJSON(w, svcErr.StatusCode, errorResponse{
			Status:     "error",
			Message:    svcErr.Message,
			StatusCode: svcErr.StatusCode,
			Code:       svcErr.Code,
		})
		return
	}
	if errors.Is(err, service.ErrInvalidCredentials) {
		respondErrorMsg(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	log.Error("internal error", slog.Any("error", err))
	resp := errorResponse{
		Status:     "error",
		Message:    "internal server error",
		StatusCode: http.StatusInternalServerError,
	}
	if os.Getenv("DEBUG_ERRORS") == "true" {
		resp.Details = err.Error()
	}
	respondJSON(w, http.StatusInternalServerError, resp)
}
