package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/touhidul7/orbin-storefront/internal/domain"
)

// HTTPClient looks products up from a remote catalog API. Requests run
// through a circuit breaker so a flapping upstream fails fast instead of
// holding hydration batches open until timeout.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:    "catalog-api",
			Timeout: 10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// ProductByID fetches one product. The upstream may answer with a single
// object or a one-element array; both are normalized to a single product.
func (c *HTTPClient) ProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id))
	if err != nil {
		return nil, err
	}

	var single domain.Product
	if err := json.Unmarshal(body, &single); err == nil && single.Valid() {
		return &single, nil
	}

	var list []domain.Product
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("unexpected product payload for id %d: %w", id, err)
	}
	if len(list) == 0 || !list[0].Valid() {
		return nil, ErrProductNotFound
	}
	return &list[0], nil
}

func (c *HTTPClient) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/products?category=%s", c.baseURL, url.QueryEscape(category)))
	if err != nil {
		return nil, err
	}

	var list []domain.Product
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("unexpected category payload: %w", err)
	}
	return list, nil
}

func (c *HTTPClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrProductNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog responded with status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		return body, nil
	})
}
