package handler

import (
	"net/http"

	"authgate/internal/app/service"
	"authgate/internal/common/security"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	users    *service.UserService
	verifier security.TokenVerifier
}

func NewUserHandler(users *service.UserService, verifier security.TokenVerifier) *UserHandler {
	return &UserHandler{users: users, verifier: verifier}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.me)
}

// me returns the record of the user the presented token encodes.
func (h *UserHandler) me(w http.ResponseWriter, r *http.Request) {
	respondWithTokenUser(w, r, h.verifier, h.users)
}
