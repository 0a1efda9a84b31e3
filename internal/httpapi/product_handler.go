package httpapi

import (
	"errors"
	"net/http"

	"github.com/touhidul7/orbin-storefront/internal/catalog"
	"github.com/touhidul7/orbin-storefront/internal/domain"
)

type ProductHandler struct {
	source catalog.ProductSource
}

func NewProductHandler(source catalog.ProductSource) *ProductHandler {
	return &ProductHandler{source: source}
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	p, err := h.source.ProductByID(r.Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil || p == nil {
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "could not load product")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// Related serves the related-products view: every product in the
// requested category, in catalog order.
func (h *ProductHandler) Related(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "category is required")
		return
	}

	products, err := h.source.ProductsByCategory(r.Context(), category)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "could not load products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}
