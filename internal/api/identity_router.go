package api

import (
	"net/http"
	"time"

	"authgate/internal/api/handler"
	"authgate/internal/common"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewIdentityRouter wires the identity service: registration, login, token
// verification, the current-user endpoint, and health checks.
func NewIdentityRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{
			"message": "Authentication Service is running",
			"status":  "success",
		})
	})

	r.Route("/auth", authHandler.RegisterRoutes)
	r.Route("/users", userHandler.RegisterRoutes)
	r.Route("/health", healthHandler.RegisterRoutes)

	return r
}
