package handler

import (
	"net/http"

	"authgate/internal/common"
	"authgate/internal/common/security"

	"github.com/go-chi/chi/v5"
)

// ValidateTokenResponse is the soft-check payload: it reports validity
// instead of rejecting the request, unlike the gate's hard enforcement.
type ValidateTokenResponse struct {
	Valid   bool             `json:"valid"`
	Message string           `json:"message"`
	Error   string           `json:"error,omitempty"`
	User    *security.Claims `json:"user,omitempty"`
}

type TokenHandler struct {
	verifier security.TokenVerifier
}

func NewTokenHandler(verifier security.TokenVerifier) *TokenHandler {
	return &TokenHandler{verifier: verifier}
}

func (h *TokenHandler) RegisterRoutes(r chi.Router) {
	r.Post("/validate-token", h.validateToken)
}

func (h *TokenHandler) validateToken(w http.ResponseWriter, r *http.Request) {
	tokenString, err := security.BearerFromHeader(r.Header.Get("Authorization"))
	if err != nil {
		common.RespondWithAuthError(w, err.Error())
		return
	}

	claims, err := h.verifier.Verify(r.Context(), tokenString)
	if err != nil {
		common.RespondWithJSON(w, http.StatusOK, ValidateTokenResponse{
			Valid:   false,
			Message: err.Error(),
			Error:   "Invalid token",
		})
		return
	}

	common.RespondWithJSON(w, http.StatusOK, ValidateTokenResponse{
		Valid:   true,
		Message: "Token is valid",
		User:    claims,
	})
}
