package cart

import (
	"context"
	"sync"

	"github.com/touhidul7/orbin-storefront/internal/domain"
)

// Store persists the whole cart as an opaque blob under a well-known key.
// Load degrades to an empty cart on absent or corrupt content.
type Store interface {
	Load(ctx context.Context) (domain.Cart, error)
	Save(ctx context.Context, c domain.Cart) error
}

// MemoryStore keeps the blob in process memory. Used by tests and as the
// fallback backend when no redis or mongo address is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	blob []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(context.Context) (domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decodeCart(s.blob), nil
}

func (s *MemoryStore) Save(_ context.Context, c domain.Cart) error {
	data, err := encodeCart(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = data
	return nil
}
