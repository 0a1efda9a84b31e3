package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/touhidul7/orbin-storefront/internal/cart"
	"github.com/touhidul7/orbin-storefront/internal/domain"
)

type CartHandler struct {
	cart *cart.Service
}

func NewCartHandler(cartSvc *cart.Service) *CartHandler {
	return &CartHandler{cart: cartSvc}
}

type AddItemRequestDTO struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cart.Get(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "store_unavailable", "could not load cart")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if !req.Product.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be positive")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	c, err := h.cart.AddItem(r.Context(), req.Product, req.Quantity)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "store_unavailable", "could not persist cart")
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	c, err := h.cart.RemoveItem(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "store_unavailable", "could not persist cart")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *CartHandler) IncrementItem(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	c, err := h.cart.IncrementItem(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "store_unavailable", "could not persist cart")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *CartHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	c, err := h.cart.DecrementItem(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "store_unavailable", "could not persist cart")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be positive")
		return 0, false
	}
	return id, true
}
