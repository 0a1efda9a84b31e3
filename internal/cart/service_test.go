package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

type failingStore struct {
	loadErr error
	saveErr error
}

func (f *failingStore) Load(context.Context) (domain.Cart, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return domain.Cart{}, nil
}

func (f *failingStore) Save(context.Context, domain.Cart) error {
	return f.saveErr
}

func TestService_AddItemPersistsAndNotifies(t *testing.T) {
	store := NewMemoryStore()
	sink := &recordingSink{}
	svc := NewService(store, sink)

	ctx := context.Background()
	c, err := svc.AddItem(ctx, product(1, "keyboard", 1500), 1)
	require.NoError(t, err)
	require.Len(t, c, 1)

	// The mutation is committed: a fresh load sees it.
	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, c, persisted)

	require.Len(t, sink.kinds, 1)
	assert.Equal(t, notify.KindSuccess, sink.kinds[0])
	assert.Contains(t, sink.messages[0], "keyboard")
}

func TestService_AddItemRejectsInvalidProduct(t *testing.T) {
	svc := NewService(NewMemoryStore(), notify.NopSink{})

	_, err := svc.AddItem(context.Background(), domain.Product{}, 1)
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestService_RemoveItemPersists(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, notify.NopSink{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, product(1, "keyboard", 1500), 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, product(2, "mouse", 450), 1)
	require.NoError(t, err)

	c, err := svc.RemoveItem(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, cartIDs(c))

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, c, persisted)
}

func TestService_SaveFailureSurfacesError(t *testing.T) {
	svc := NewService(&failingStore{saveErr: errors.New("boom")}, notify.NopSink{})

	_, err := svc.AddItem(context.Background(), product(1, "keyboard", 1500), 1)
	assert.Error(t, err)
}

func TestService_ConcurrentMutationsKeepUniqueIDs(t *testing.T) {
	svc := NewService(NewMemoryStore(), notify.NopSink{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, product(7, "pad", 200), 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, 10, c[0].Quantity, "each add contributes one unit")
}

func TestService_ClearEmptiesCart(t *testing.T) {
	svc := NewService(NewMemoryStore(), notify.NopSink{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, product(1, "keyboard", 1500), 1)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx))

	c, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, c)
}
