package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"authgate/internal/app/service"
	"authgate/internal/common"
	"authgate/internal/common/security"
	"authgate/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

// TokenResponse is the login payload: the token itself plus how long, in
// seconds, it stays valid.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"`
	User        *model.User `json:"user"`
}

type AuthHandler struct {
	users    *service.UserService
	issuer   *security.TokenIssuer
	verifier security.TokenVerifier
}

func NewAuthHandler(users *service.UserService, issuer *security.TokenIssuer, verifier security.TokenVerifier) *AuthHandler {
	return &AuthHandler{users: users, issuer: issuer, verifier: verifier}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Get("/verify", h.verify)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		status := common.HTTPStatusFromError(err)
		if status == http.StatusInternalServerError {
			common.RespondWithError(w, status, "Internal server error during user registration")
			return
		}
		common.RespondWithError(w, status, err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			common.RespondWithAuthError(w, err.Error())
			return
		}
		common.RespondWithError(w, http.StatusInternalServerError, "Internal server error during login")
		return
	}

	token, err := h.issuer.Issue(user.Username, user.ID)
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Internal server error during login")
		return
	}

	common.RespondWithJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   h.issuer.ExpiresInSeconds(),
		User:        user,
	})
}

// verify validates a presented token and returns the record of the user it
// encodes. The resource service's remote verification mode calls this.
func (h *AuthHandler) verify(w http.ResponseWriter, r *http.Request) {
	respondWithTokenUser(w, r, h.verifier, h.users)
}

// respondWithTokenUser is the shared verify/users-me flow: check the bearer
// token, then resolve the encoded user against current directory state.
func respondWithTokenUser(w http.ResponseWriter, r *http.Request, verifier security.TokenVerifier, users *service.UserService) {
	tokenString, err := security.BearerFromHeader(r.Header.Get("Authorization"))
	if err != nil {
		common.RespondWithAuthError(w, err.Error())
		return
	}

	claims, err := verifier.Verify(r.Context(), tokenString)
	if err != nil {
		common.RespondWithAuthError(w, "Could not validate credentials")
		return
	}

	user, err := users.FindByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		common.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !user.IsActive {
		common.RespondWithError(w, http.StatusBadRequest, "Inactive user")
		return
	}

	common.RespondWithJSON(w, http.StatusOK, user)
}
