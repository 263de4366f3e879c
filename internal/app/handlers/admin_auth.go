package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/y84-dev/API-FRIZZLY/internal/adminauth"
	"github.com/y84-dev/API-FRIZZLY/internal/service"
)

var validate = validator.New()

// AdminLoginRequest — структура запроса логина администратора с тегами валидации
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginHandler обрабатывает POST /api/admin/login.
// В ответе token — id записи администратора, отдельных сессий нет.
func AdminLoginHandler(log *slog.Logger, authService service.AdminAuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminLoginHandler"
		logger := log.With(slog.String("op", op))

		var req AdminLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondErrorMsg(w, http.StatusBadRequest, "invalid request body")
			return
		}

		// Валидация структуры запроса с использованием validator
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respondErrorMsg(w, http.StatusBadRequest, "email and password are required")
			return
		}

		result, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			logger.Warn("admin login failed", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"token":   result.Token,
			"adminId": result.AdminID,
			"email":   result.Email,
			"name":    result.Name,
		})
	}
}

// FCMTokenRequest — регистрация push-токена устройства администратора
type FCMTokenRequest struct {
	FCMToken string `json:"fcmToken" validate:"required"`
}

// AdminFCMTokenHandler обрабатывает POST /api/admin/fcm-token
func AdminFCMTokenHandler(log *slog.Logger, authService service.AdminAuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminFCMTokenHandler"
		logger := log.With(slog.String("op", op))

		adminID, ok := adminauth.FromContext(r.Context())
		if !ok {
			respondErrorMsg(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req FCMTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondErrorMsg(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			respondErrorMsg(w, http.StatusBadRequest, "fcmToken is required")
			return
		}

		if err := authService.SaveFCMToken(r.Context(), adminID, req.FCMToken); err != nil {
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
