package handler

import (
	"database/sql"
	"net/http"

	"authgate/internal/common"

	"github.com/go-chi/chi/v5"
)

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.health)
	r.Get("/db", h.databaseHealth)
}

func (h *HealthHandler) health(w http.ResponseWriter, r *http.Request) {
	var count int
	if err := h.db.QueryRowContext(r.Context(), `SELECT count(*) FROM users`).Scan(&count); err != nil {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{
			"status":   "unhealthy",
			"message":  "Auth service has issues",
			"database": "disconnected",
		})
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"message":  "Auth service is running",
		"database": "connected",
	})
}

func (h *HealthHandler) databaseHealth(w http.ResponseWriter, r *http.Request) {
	var version string
	if err := h.db.QueryRowContext(r.Context(), `SELECT version()`).Scan(&version); err != nil {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{
			"status":     "unhealthy",
			"database":   "PostgreSQL",
			"connection": "failed",
		})
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status":     "healthy",
		"database":   "PostgreSQL",
		"version":    version,
		"connection": "active",
	})
}
