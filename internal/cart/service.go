package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/touhidul7/orbin-storefront/internal/domain"
	"github.com/touhidul7/orbin-storefront/internal/notify"
)

var (
	ErrInvalidProduct = errors.New("product has no valid id")
	ErrItemNotFound   = errors.New("item not found in cart")
)

// Service serializes cart mutations and commits the full cart to the store
// after every one, so readers never observe a partially updated cart.
// Concurrent writers are last-writer-wins; the unique-id invariant holds
// because every write goes through the pure mutators under the lock.
type Service struct {
	store Store
	sink  notify.Sink
	mu    sync.Mutex
	sfg   singleflight.Group // Prevents concurrent load stampede
}

func NewService(store Store, sink notify.Sink) *Service {
	return &Service{store: store, sink: sink}
}

func (s *Service) Get(ctx context.Context) (domain.Cart, error) {
	v, err, _ := s.sfg.Do(DefaultKey, func() (interface{}, error) {
		return s.store.Load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(domain.Cart), nil
}

// AddItem upserts a product into the cart and persists the result.
func (s *Service) AddItem(ctx context.Context, p domain.Product, qty int) (domain.Cart, error) {
	if !p.Valid() {
		return nil, ErrInvalidProduct
	}

	next, err := s.mutate(ctx, func(c domain.Cart) domain.Cart {
		return Upsert(c, p, qty)
	})
	if err != nil {
		return nil, err
	}

	s.sink.Notify(notify.KindSuccess, fmt.Sprintf("%s added to cart", p.Name))
	return next, nil
}

func (s *Service) RemoveItem(ctx context.Context, id int64) (domain.Cart, error) {
	next, err := s.mutate(ctx, func(c domain.Cart) domain.Cart {
		return Remove(c, id)
	})
	if err != nil {
		return nil, err
	}

	s.sink.Notify(notify.KindSuccess, "item removed from cart")
	return next, nil
}

func (s *Service) IncrementItem(ctx context.Context, id int64) (domain.Cart, error) {
	return s.mutate(ctx, func(c domain.Cart) domain.Cart {
		return IncrementQuantity(c, id)
	})
}

func (s *Service) DecrementItem(ctx context.Context, id int64) (domain.Cart, error) {
	return s.mutate(ctx, func(c domain.Cart) domain.Cart {
		return DecrementQuantity(c, id)
	})
}

func (s *Service) Clear(ctx context.Context) error {
	_, err := s.mutate(ctx, func(domain.Cart) domain.Cart {
		return domain.Cart{}
	})
	return err
}

func (s *Service) mutate(ctx context.Context, fn func(domain.Cart) domain.Cart) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Load(ctx)
	if err != nil {
		log.Printf("cart load error: %v", err)
		return nil, err
	}

	next := fn(current)
	if err := s.store.Save(ctx, next); err != nil {
		log.Printf("cart save error: %v", err)
		return nil, err
	}
	return next, nil
}
