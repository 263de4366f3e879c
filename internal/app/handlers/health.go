package handlers

import (
	"net/http"
	"time"
)

// BannerHandler обрабатывает GET / — визитка сервиса.
func BannerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{
			"service": "FRIZZLY API",
			"status":  "running",
		})
	}
}

// HealthHandler обрабатывает GET /api/health.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
