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

type createUserRequest struct {
	UserID       string   `json:"userId"`
	Email        string   `json:"email"`
	DisplayName  string   `json:"displayName"`
	PhoneNumbers []string `json:"phoneNumbers"`
	FCMToken     string   `json:"fcmToken"`
}

// CreateUserHandler обрабатывает POST /api/users — публичное создание
// профиля сразу после регистрации во внешнем сервисе.
func CreateUserHandler(log *slog.Logger, users service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateUserHandler"
		logger := log.With(slog.String("op", op))

		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondErrorMsg(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := users.CreateUser(r.Context(), &models.User{
			ID:           req.UserID,
			Email:        req.Email,
			DisplayName:  req.DisplayName,
			PhoneNumbers: req.PhoneNumbers,
			FCMToken:     req.FCMToken,
		})
		if err != nil {
			logger.Error("failed to create user", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusCreated, user)
	}
}

// GetUserHandler обрабатывает GET /api/users/{id}.
// Профиль виден только самому пользователю, чужой — 403.
func GetUserHandler(log *slog.Logger, users service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetUserHandler"
		logger := log.With(slog.String("op", op))

		principal, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			respondErrorMsg(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id := chi.URLParam(r, "id")
		if id != principal {
			respondErrorMsg(w, http.StatusForbidden, "access denied")
			return
		}

		user, err := users.GetUser(r.Context(), id)
		if err != nil {
			logger.Error("failed to get user", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"user": user})
	}
}

type userFCMTokenRequest struct {
	FCMToken string `json:"fcmToken"`
}

// UserFCMTokenHandler обрабатывает POST /api/fcm-token — регистрация
// push-токена устройства текущего пользователя.
func UserFCMTokenHandler(log *slog.Logger, users service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UserFCMTokenHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			respondErrorMsg(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req userFCMTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondErrorMsg(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := users.SaveFCMToken(r.Context(), userID, req.FCMToken); err != nil {
			logger.Error("failed to save fcm token", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// AdminListUsersHandler обрабатывает GET /api/admin/users.
func AdminListUsersHandler(log *slog.Logger, users service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminListUsersHandler"
		logger := log.With(slog.String("op", op))

		list, err := users.ListUsers(r.Context())
		if err != nil {
			logger.Error("failed to list users", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"users": list})
	}
}
