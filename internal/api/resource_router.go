package api

import (
	"net/http"
	"time"

	"authgate/internal/api/handler"
	"authgate/internal/api/middleware"
	"authgate/internal/common"
	"authgate/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewResourceRouter wires the resource service. The authenticator gate runs
// on every request and enforces credentials for the configured protected
// prefixes; everything else passes through untouched.
func NewResourceRouter(
	verifier security.TokenVerifier,
	protectedPaths []string,
	tokenHandler *handler.TokenHandler,
	productHandler *handler.ProductHandler,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Use(middleware.Authenticator(verifier, protectedPaths))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{
			"message": "Resource service is running",
			"status":  "success",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "resource-service",
			"version": "1.0.0",
		})
	})

	r.Route("/api/auth", tokenHandler.RegisterRoutes)
	r.Route("/products", productHandler.RegisterRoutes)

	return r
}
