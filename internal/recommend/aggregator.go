package recommend

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/touhidul7/orbin-storefront/internal/cart"
	"github.com/touhidul7/orbin-storefront/internal/catalog"
	"github.com/touhidul7/orbin-storefront/internal/domain"
)

// State tracks a recommendation session's lifecycle.
type State string

const (
	StateEmpty     State = "EMPTY"
	StateCapturing State = "CAPTURING"
	StateHydrating State = "HYDRATING"
	StateReady     State = "READY"
)

func (s State) String() string {
	return string(s)
}

// recommendDepth is how far past the direct list the product graph is
// walked: the direct recommendations plus one level of indirection.
const recommendDepth = 1

// Session computes the "recommended, not already in cart" list for one
// checkout. The cart's item identities are captured once, at the first
// non-empty observation, so checking and unchecking recommended items
// (which mutates the live cart) never reshuffles the offered list.
//
// Results are applied only when the session token still matches the one
// the hydration started with; teardown bumps the token, so a hydration
// that finishes after Close is discarded instead of overwriting the state
// of a newer session.
type Session struct {
	source catalog.ProductSource
	cart   *cart.Service

	mu          sync.Mutex
	id          string
	token       uint64
	state       State
	snapshot    []int64 // ordered item ids as captured
	snapshotIDs map[int64]struct{}
	results     []domain.Product
	closed      bool
}

func NewSession(source catalog.ProductSource, cartSvc *cart.Service) *Session {
	return &Session{
		source: source,
		cart:   cartSvc,
		id:     uuid.NewString(),
		state:  StateEmpty,
	}
}

func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Recommendations returns the last computed list in discovery order.
func (s *Session) Recommendations() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.results))
	copy(out, s.results)
	return out
}

// Observe feeds the live cart into the session. The first non-empty cart
// is captured as the snapshot and hydrated; later observations are no-ops
// because the snapshot is frozen for the session's lifetime.
func (s *Session) Observe(ctx context.Context, c domain.Cart) {
	s.mu.Lock()
	if s.closed || s.state != StateEmpty || len(c) == 0 {
		s.mu.Unlock()
		return
	}
	s.state = StateCapturing
	s.snapshot = make([]int64, 0, len(c))
	s.snapshotIDs = make(map[int64]struct{}, len(c))
	for _, item := range c {
		if _, dup := s.snapshotIDs[item.ID]; dup {
			continue
		}
		s.snapshot = append(s.snapshot, item.ID)
		s.snapshotIDs[item.ID] = struct{}{}
	}
	s.token++
	tok := s.token
	s.mu.Unlock()

	s.compute(ctx, tok)
}

// Refresh recomputes the list from the frozen snapshot. With an unchanged
// hydrated set the result is identical to the previous one.
func (s *Session) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.closed || len(s.snapshot) == 0 {
		s.mu.Unlock()
		return
	}
	s.token++
	tok := s.token
	s.mu.Unlock()

	s.compute(ctx, tok)
}

// compute hydrates the snapshot concurrently, walks each hydrated product's
// recommendation graph, and merges the results first-seen-wins, excluding
// every id in the snapshot itself. The batch joins on the slowest lookup;
// a failed or nil lookup drops that item without aborting the rest.
func (s *Session) compute(ctx context.Context, tok uint64) {
	s.mu.Lock()
	if s.token != tok {
		s.mu.Unlock()
		return
	}
	s.state = StateHydrating
	ids := make([]int64, len(s.snapshot))
	copy(ids, s.snapshot)
	snapshotIDs := s.snapshotIDs
	s.mu.Unlock()

	hydrated := make([]*domain.Product, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			p, err := s.source.ProductByID(gctx, id)
			if err != nil {
				log.Printf("hydration failed for product %d: %v", id, err)
				return nil
			}
			hydrated[i] = p
			return nil
		})
	}
	_ = g.Wait()

	merged := make([]domain.Product, 0)
	seen := make(map[int64]struct{})
	for _, p := range hydrated {
		if p == nil {
			continue
		}
		for _, rec := range catalog.Normalize(*p, recommendDepth) {
			if _, inSnapshot := snapshotIDs[rec.ID]; inSnapshot {
				continue
			}
			if _, dup := seen[rec.ID]; dup {
				continue
			}
			seen[rec.ID] = struct{}{}
			merged = append(merged, rec)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.token != tok {
		// A newer session owns the state now; drop the stale batch.
		return
	}
	s.results = merged
	s.state = StateReady
}

// Include adds a recommended product to the live cart. The snapshot is
// untouched, so the offered list stays stable.
func (s *Session) Include(ctx context.Context, p domain.Product) error {
	_, err := s.cart.AddItem(ctx, p, 1)
	return err
}

// Exclude removes a previously included recommendation from the live cart.
func (s *Session) Exclude(ctx context.Context, id int64) error {
	_, err := s.cart.RemoveItem(ctx, id)
	return err
}

// Close tears the session down. In-flight hydrations finish but their
// results are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.token++
}
