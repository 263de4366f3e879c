package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/y84-dev/API-FRIZZLY/internal/service"
)

type categoryRequest struct {
	Name string `json:"name"`
}

// ListCategoriesHandler обрабатывает GET /api/categories.
// Чтение идёт через кэш сервиса, в БД ходим только по истечении TTL.
func ListCategoriesHandler(log *slog.Logger, categories service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListCategoriesHandler"
		logger := log.With(slog.String("op", op))

		list, err := categories.ListCategories(r.Context())
		if err != nil {
			logger.Error("failed to list categories", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"categories": list})
	}
}

// CreateCategoryHandler обрабатывает POST /api/admin/categories.
// Дубликат имени — 409.
func CreateCategoryHandler(log *slog.Logger, categories service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCategoryHandler"
		logger := log.With(slog.String("op", op))

		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondErrorMsg(w, http.StatusBadRequest, "invalid request body")
			return
		}

		category, err := categories.CreateCategory(r.Context(), req.Name)
		if err != nil {
			logger.Error("failed to create category", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusCreated, category)
	}
}

// UpdateCategoryHandler обрабатывает PUT /api/admin/categories/{id}.
func UpdateCategoryHandler(log *slog.Logger, categories service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCategoryHandler"
		logger := log.With(slog.String("op", op))

		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondErrorMsg(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := categories.UpdateCategory(r.Context(), chi.URLParam(r, "id"), req.Name); err != nil {
			logger.Error("failed to update category", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// DeleteCategoryHandler обрабатывает DELETE /api/admin/categories/{id}.
func DeleteCategoryHandler(log *slog.Logger, categories service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCategoryHandler"
		logger := log.With(slog.String("op", op))

		if err := categories.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
			logger.Error("failed to delete category", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
