package handler

import (
	"net/http"

	"authgate/internal/api/middleware"
	"authgate/internal/common"

	"github.com/go-chi/chi/v5"
)

type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ProductHandler serves the protected demo catalog. The gate does the
// actual credential work; this handler only consumes the attached identity.
type ProductHandler struct{}

func NewProductHandler() *ProductHandler {
	return &ProductHandler{}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
		// Gate never ran: the handler is mounted outside a protected
		// prefix, not a client error.
		common.RespondWithError(w, http.StatusInternalServerError, "User not authenticated")
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string][]Product{
		"products": {
			{ID: 1, Name: "Product 1", Price: 100.0},
			{ID: 2, Name: "Product 2", Price: 150.0},
			{ID: 3, Name: "Product 3", Price: 200.0},
		},
	})
}
