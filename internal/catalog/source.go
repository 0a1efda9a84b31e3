package catalog

import (
	"context"
	"errors"

	"github.com/touhidul7/orbin-storefront/internal/domain"
)

// ProductSource resolves cart line items into full catalog records.
// Consumers define this interface, not the SQLite or HTTP implementation.
type ProductSource interface {
	ProductByID(ctx context.Context, id int64) (*domain.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
}

var ErrProductNotFound = errors.New("product not found")
