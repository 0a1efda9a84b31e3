package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touhidul7/orbin-storefront/internal/cart"
	"github.com/touhidul7/orbin-storefront/internal/domain"
	"github.com/touhidul7/orbin-storefront/internal/notify"
)

type recordingSink struct {
	mu       sync.Mutex
	kinds    []notify.Kind
	messages []string
}

func (s *recordingSink) Notify(kind notify.Kind, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kinds = append(s.kinds, kind)
	s.messages = append(s.messages, message)
}

func (s *recordingSink) errorMessages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for i, kind := range s.kinds {
		if kind == notify.KindError {
			out = append(out, s.messages[i])
		}
	}
	return out
}

func newTestManager(t *testing.T) (*Manager, *cart.Service, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	cartSvc := cart.NewService(cart.NewMemoryStore(), notify.NopSink{})
	return NewManager(cartSvc, sink), cartSvc, sink
}

func fillCart(t *testing.T, cartSvc *cart.Service) {
	t.Helper()
	_, err := cartSvc.AddItem(context.Background(), domain.Product{ID: 1, Name: "keyboard", SellingPrice: 500}, 2)
	require.NoError(t, err)
}

func TestManager_DraftRecomputesTotalsFromLiveCart(t *testing.T) {
	m, cartSvc, _ := newTestManager(t)
	ctx := context.Background()

	m.Open(false)
	require.NoError(t, m.SetArea(domain.DeliveryInside))
	fillCart(t, cartSvc)

	draft, err := m.Draft(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, draft.Subtotal)
	assert.Equal(t, 70.0, draft.DeliveryCharge)
	assert.Equal(t, 1070.0, draft.GrandTotal)

	// Cart changes are reflected on the next read.
	_, err = cartSvc.AddItem(ctx, domain.Product{ID: 2, SellingPrice: 100}, 1)
	require.NoError(t, err)
	draft, err = m.Draft(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1100.0, draft.Subtotal)
}

func TestManager_OpenDefaultsToOutsideArea(t *testing.T) {
	m, _, _ := newTestManager(t)

	draft := m.Open(false)
	assert.Equal(t, domain.DeliveryOutside, draft.Area)
	assert.NotEmpty(t, draft.ID)
}

func TestManager_SubmitReportsEachFailureIndividually(t *testing.T) {
	m, _, sink := newTestManager(t)
	ctx := context.Background()

	m.Open(false)
	// Empty cart, no name, no address, no phone: four distinct failures.
	_, err := m.Submit(ctx)
	require.ErrorIs(t, err, ErrNotSubmittable)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.ErrorIs(t, err, ErrMissingName)
	assert.ErrorIs(t, err, ErrMissingAddress)
	assert.ErrorIs(t, err, ErrInvalidPhone)
	assert.Len(t, sink.errorMessages(), 4)
}

func TestManager_SubmitBlockedFailuresLeaveCartUntouched(t *testing.T) {
	m, cartSvc, _ := newTestManager(t)
	ctx := context.Background()

	m.Open(false)
	fillCart(t, cartSvc)
	require.NoError(t, m.SetContact("Rahim", "", "01712345678")) // missing address

	_, err := m.Submit(ctx)
	require.ErrorIs(t, err, ErrNotSubmittable)

	liveCart, err := cartSvc.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, liveCart, 1, "cart state untouched on blocked submission")
}

func TestManager_AuthenticatedCheckoutOnlyRevalidatesPhone(t *testing.T) {
	m, cartSvc, _ := newTestManager(t)
	ctx := context.Background()

	m.Open(true)
	fillCart(t, cartSvc)

	// No name or address, but a valid profile phone: submits.
	require.NoError(t, m.SetContact("", "", "01712345678"))
	_, err := m.Submit(ctx)
	assert.NoError(t, err)
}

func TestManager_AuthenticatedProfilePhoneStillValidated(t *testing.T) {
	m, cartSvc, _ := newTestManager(t)
	ctx := context.Background()

	m.Open(true)
	fillCart(t, cartSvc)

	// A stored profile phone that predates the format rules is not
	// trusted; it goes through the same validator and blocks.
	require.NoError(t, m.SetContact("", "", "12345"))
	_, err := m.Submit(ctx)
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestManager_SuccessfulSubmitClearsCartAndDiscardsDraft(t *testing.T) {
	m, cartSvc, sink := newTestManager(t)
	ctx := context.Background()

	m.Open(false)
	fillCart(t, cartSvc)
	require.NoError(t, m.SetContact("Rahim", "Mirpur, Dhaka", "01712345678"))
	require.NoError(t, m.SetArea(domain.DeliveryInside))

	draft, err := m.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1070.0, draft.GrandTotal)

	liveCart, err := cartSvc.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, liveCart)

	_, err = m.Draft(ctx)
	assert.ErrorIs(t, err, ErrNoOpenDraft)

	assert.Contains(t, sink.messages[len(sink.messages)-1], "order placed")
}

func TestManager_CloseDiscardsDraft(t *testing.T) {
	m, _, _ := newTestManager(t)

	m.Open(false)
	m.Close()

	assert.ErrorIs(t, m.SetContact("x", "y", "z"), ErrNoOpenDraft)
}

func TestManager_SubmitWithoutOpenDraft(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoOpenDraft)
}
