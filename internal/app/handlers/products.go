package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/y84-dev/API-FRIZZLY/internal/domain/models"
	"github.com/y84-dev/API-FRIZZLY/internal/service"
	"github.com/y84-dev/API-FRIZZLY/internal/storage"
)

// ListProductsHandler обрабатывает GET /api/products.
// Поддерживает фильтры ?active=true и ?limit= (не больше 100).
func ListProductsHandler(log *slog.Logger, products service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListProductsHandler"
		logger := log.With(slog.String("op", op))

		// Без параметра отдаём только активные товары; скрытые — по ?active=false.
		activeOnly := true
		if raw := r.URL.Query().Get("active"); raw != "" {
			activeOnly = strings.EqualFold(raw, "true")
		}

		var limit int
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				respondErrorMsg(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = parsed
		}

		list, err := products.ListProducts(r.Context(), activeOnly, limit)
		if err != nil {
			logger.Error("failed to list products", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"products": list})
	}
}

// CreateProductHandler обрабатывает POST /api/products.
func CreateProductHandler(log *slog.Logger, products service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateProductHandler"
		logger := log.With(slog.String("op", op))

		var product models.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			respondErrorMsg(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := products.CreateProduct(r.Context(), &product)
		if err != nil {
			logger.Error("failed to create product", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusCreated, created)
	}
}

// UpdateProductHandler обрабатывает PUT /api/products/{id} —
// частичное обновление: отсутствующие поля не трогаются.
func UpdateProductHandler(log *slog.Logger, products service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateProductHandler"
		logger := log.With(slog.String("op", op))

		var patch storage.ProductPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			respondErrorMsg(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := products.UpdateProduct(r.Context(), chi.URLParam(r, "id"), &patch); err != nil {
			logger.Error("failed to update product", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// DeleteProductHandler обрабатывает DELETE /api/products/{id}.
func DeleteProductHandler(log *slog.Logger, products service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteProductHandler"
		logger := log.With(slog.String("op", op))

		if err := products.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
			logger.Error("failed to delete product", slog.Any("error", err))
			respondError(w, logger, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
