package recommend

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/touhidul7/orbin-storefront/internal/catalog"
	"github.com/touhidul7/orbin-storefront/internal/domain"
	"github.com/touhidul7/orbin-storefront/internal/notify"
)

// mockSource implements catalog.ProductSource for testing.
type mockSource struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	failIDs  map[int64]struct{}
	delay    time.Duration
	calls    []int64
}

func newMockSource(products ...domain.Product) *mockSource {
	m := &mockSource{
		products: make(map[int64]domain.Product),
		failIDs:  make(map[int64]struct{}),
	}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockSource) failOn(ids ...int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		m.failIDs[id] = struct{}{}
	}
}

func (m *mockSource) ProductByID(_ context.Context, id int64) (*domain.Product, error) {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, id)
	if _, fail := m.failIDs[id]; fail {
		return nil, errors.New("lookup failed")
	}
	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockSource) ProductsByCategory(context.Context, string) ([]domain.Product, error) {
	return nil, nil
}

func (m *mockSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// recordingSink captures notifications for assertions.
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

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.kinds)
}
