package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/touhidul7/orbin-storefront/internal/cart"
	"github.com/touhidul7/orbin-storefront/internal/catalog"
	"github.com/touhidul7/orbin-storefront/internal/checkout"
	"github.com/touhidul7/orbin-storefront/internal/domain"
	"github.com/touhidul7/orbin-storefront/internal/recommend"
)

// CheckoutHandler binds the checkout flow to HTTP. One recommendation
// session is active at a time, mirroring the single checkout surface of
// the storefront; opening checkout again tears the old session down.
type CheckoutHandler struct {
	cart    *cart.Service
	source  catalog.ProductSource
	manager *checkout.Manager

	mu      sync.Mutex
	session *recommend.Session
}

func NewCheckoutHandler(cartSvc *cart.Service, source catalog.ProductSource, manager *checkout.Manager) *CheckoutHandler {
	return &CheckoutHandler{cart: cartSvc, source: source, manager: manager}
}

type OpenCheckoutRequestDTO struct {
	Authenticated bool `json:"authenticated"`
}

type CheckoutStateDTO struct {
	Draft           domain.OrderDraft `json:"draft"`
	SessionID       string            `json:"sessionId"`
	SessionState    string            `json:"sessionState"`
	Recommendations []domain.Product  `json:"recommendations"`
}

func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req OpenCheckoutRequestDTO
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // empty body means guest checkout
	}

	liveCart, err := h.cart.Get(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "store_unavailable", "could not load cart")
		return
	}

	h.mu.Lock()
	if h.session != nil {
		h.session.Close()
	}
	session := recommend.NewSession(h.source, h.cart)
	h.session = session
	h.mu.Unlock()

	draft := h.manager.Open(req.Authenticated)
	session.Observe(r.Context(), liveCart)

	respondJSON(w, http.StatusCreated, CheckoutStateDTO{
		Draft:           draft,
		SessionID:       session.ID(),
		SessionState:    session.State().String(),
		Recommendations: session.Recommendations(),
	})
}

func (h *CheckoutHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	session := h.activeSession()
	if session == nil {
		respondError(w, http.StatusConflict, "no_open_checkout", "open checkout first")
		return
	}

	// The cart may have become non-empty since open; the session captures
	// it only if it has no snapshot yet.
	liveCart, err := h.cart.Get(r.Context())
	if err == nil {
		session.Observe(r.Context(), liveCart)
	}

	respondJSON(w, http.StatusOK, CheckoutStateDTO{
		SessionID:       session.ID(),
		SessionState:    session.State().String(),
		Recommendations: session.Recommendations(),
	})
}

type IncludeRecommendationDTO struct {
	Product domain.Product `json:"product"`
}

func (h *CheckoutHandler) IncludeRecommendation(w http.ResponseWriter, r *http.Request) {
	session := h.activeSession()
	if session == nil {
		respondError(w, http.StatusConflict, "no_open_checkout", "open checkout first")
		return
	}

	var req IncludeRecommendationDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Product.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_product", "a product with positive id is required")
		return
	}

	if err := session.Include(r.Context(), req.Product); err != nil {
		respondError(w, http.StatusServiceUnavailable, "store_unavailable", "could not persist cart")
		return
	}
	respondJSON(w, http.StatusOK, session.Recommendations())
}

func (h *CheckoutHandler) ExcludeRecommendation(w http.ResponseWriter, r *http.Request) {
	session := h.activeSession()
	if session == nil {
		respondError(w, http.StatusConflict, "no_open_checkout", "open checkout first")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be positive")
		return
	}

	if err := session.Exclude(r.Context(), id); err != nil {
		respondError(w, http.StatusServiceUnavailable, "store_unavailable", "could not persist cart")
		return
	}
	respondJSON(w, http.StatusOK, session.Recommendations())
}

type ContactRequestDTO struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (h *CheckoutHandler) SetContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.manager.SetContact(req.Name, req.Address, req.Phone); err != nil {
		respondError(w, http.StatusConflict, "no_open_checkout", "open checkout first")
		return
	}
	h.respondDraft(w, r)
}

type AreaRequestDTO struct {
	Area string `json:"area"`
}

func (h *CheckoutHandler) SetArea(w http.ResponseWriter, r *http.Request) {
	var req AreaRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.manager.SetArea(domain.DeliveryArea(req.Area)); err != nil {
		respondError(w, http.StatusConflict, "no_open_checkout", "open checkout first")
		return
	}
	h.respondDraft(w, r)
}

func (h *CheckoutHandler) Totals(w http.ResponseWriter, r *http.Request) {
	h.respondDraft(w, r)
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	draft, err := h.manager.Submit(r.Context())
	if errors.Is(err, checkout.ErrNoOpenDraft) {
		respondError(w, http.StatusConflict, "no_open_checkout", "open checkout first")
		return
	}
	if errors.Is(err, checkout.ErrNotSubmittable) {
		respondError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "store_unavailable", "could not submit order")
		return
	}

	h.closeSession()
	respondJSON(w, http.StatusOK, draft)
}

func (h *CheckoutHandler) Close(w http.ResponseWriter, _ *http.Request) {
	h.manager.Close()
	h.closeSession()
	w.WriteHeader(http.StatusNoContent)
}

func (h *CheckoutHandler) respondDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.manager.Draft(r.Context())
	if errors.Is(err, checkout.ErrNoOpenDraft) {
		respondError(w, http.StatusConflict, "no_open_checkout", "open checkout first")
		return
	}
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "store_unavailable", "could not load cart")
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

func (h *CheckoutHandler) activeSession() *recommend.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session
}

func (h *CheckoutHandler) closeSession() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session != nil {
		h.session.Close()
		h.session = nil
	}
}
