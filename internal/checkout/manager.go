package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/touhidul7/orbin-storefront/internal/cart"
	"github.com/touhidul7/orbin-storefront/internal/domain"
	"github.com/touhidul7/orbin-storefront/internal/notify"
)

var (
	ErrEmptyCart      = errors.New("cart is empty, nothing to order")
	ErrInvalidPhone   = errors.New("phone number is not valid")
	ErrMissingName    = errors.New("name is required")
	ErrMissingAddress = errors.New("address is required")
	ErrNoOpenDraft    = errors.New("no open checkout draft")
	ErrNotSubmittable = errors.New("order draft failed validation")
)

// Manager owns the order draft lifecycle: created empty when checkout
// opens, mutated by form input, totals recomputed from the live cart,
// discarded on close or successful submission. Submission itself only
// gates and clears; the transport behind it is out of this core's hands.
type Manager struct {
	cart *cart.Service
	sink notify.Sink

	mu    sync.Mutex
	draft *domain.OrderDraft
}

func NewManager(cartSvc *cart.Service, sink notify.Sink) *Manager {
	return &Manager{cart: cartSvc, sink: sink}
}

// Open starts a checkout session with an empty draft. An already-open
// draft is replaced.
func (m *Manager) Open(authenticated bool) domain.OrderDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = &domain.OrderDraft{
		ID:            uuid.NewString(),
		Area:          domain.DeliveryOutside,
		Authenticated: authenticated,
		CreatedAt:     time.Now(),
	}
	return *m.draft
}

// SetContact updates the draft's contact fields. Empty arguments leave
// the corresponding field untouched so partial form updates compose.
func (m *Manager) SetContact(name, address, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return ErrNoOpenDraft
	}
	if name != "" {
		m.draft.Name = name
	}
	if address != "" {
		m.draft.Address = address
	}
	if phone != "" {
		m.draft.Phone = phone
	}
	return nil
}

func (m *Manager) SetArea(area domain.DeliveryArea) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return ErrNoOpenDraft
	}
	m.draft.Area = area
	return nil
}

// Draft returns the current draft with totals recomputed from the live
// cart (not the recommendation snapshot).
func (m *Manager) Draft(ctx context.Context) (domain.OrderDraft, error) {
	liveCart, err := m.cart.Get(ctx)
	if err != nil {
		return domain.OrderDraft{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return domain.OrderDraft{}, ErrNoOpenDraft
	}
	m.applyTotals(liveCart)
	return *m.draft, nil
}

// Validate runs the submission gates against the live cart and returns
// every failure individually, never one merged message.
func (m *Manager) Validate(liveCart domain.Cart, d domain.OrderDraft) []error {
	var failures []error
	if len(liveCart) == 0 {
		failures = append(failures, ErrEmptyCart)
	}
	if !d.Authenticated {
		if d.Name == "" {
			failures = append(failures, ErrMissingName)
		}
		if d.Address == "" {
			failures = append(failures, ErrMissingAddress)
		}
	}
	if !ValidPhone(d.Phone) {
		failures = append(failures, ErrInvalidPhone)
	}
	return failures
}

// Submit gates the draft: non-empty cart, valid phone, required fields.
// Each failure is reported to the feedback sink on its own and blocks
// submission with the cart untouched. On success the cart is cleared and
// the draft discarded.
func (m *Manager) Submit(ctx context.Context) (domain.OrderDraft, error) {
	liveCart, err := m.cart.Get(ctx)
	if err != nil {
		return domain.OrderDraft{}, err
	}

	m.mu.Lock()
	if m.draft == nil {
		m.mu.Unlock()
		return domain.OrderDraft{}, ErrNoOpenDraft
	}
	m.applyTotals(liveCart)
	draft := *m.draft
	m.mu.Unlock()

	failures := m.Validate(liveCart, draft)
	if len(failures) > 0 {
		for _, f := range failures {
			m.sink.Notify(notify.KindError, f.Error())
		}
		return domain.OrderDraft{}, errors.Join(append([]error{ErrNotSubmittable}, failures...)...)
	}

	if err := m.cart.Clear(ctx); err != nil {
		return domain.OrderDraft{}, err
	}

	m.mu.Lock()
	m.draft = nil
	m.mu.Unlock()

	m.sink.Notify(notify.KindSuccess, "order placed successfully")
	return draft, nil
}

// Close discards the draft without submitting.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = nil
}

// applyTotals recomputes the money fields from the live cart. Caller holds mu.
func (m *Manager) applyTotals(liveCart domain.Cart) {
	m.draft.Subtotal = Subtotal(liveCart)
	m.draft.DeliveryCharge = DeliveryCharge(m.draft.Area)
	m.draft.GrandTotal = m.draft.Subtotal + m.draft.DeliveryCharge
}
