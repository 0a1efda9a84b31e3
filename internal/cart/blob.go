package cart

import (
	"encoding/json"
	"log"

	"github.com/touhidul7/orbin-storefront/internal/domain"
)

// The persisted cart is a versioned JSON blob. Version 1 wraps the items in
// an envelope; older clients wrote a bare item array, which still decodes.
// Corrupt content degrades to an empty cart rather than failing the caller.

const blobVersion = 1

// DefaultKey is the well-known key the storefront persists its cart under.
const DefaultKey = "orbin_cart"

type cartBlob struct {
	Version int         `json:"v"`
	Items   domain.Cart `json:"items"`
}

func encodeCart(c domain.Cart) ([]byte, error) {
	return json.Marshal(cartBlob{Version: blobVersion, Items: c})
}

func decodeCart(data []byte) domain.Cart {
	if len(data) == 0 {
		return domain.Cart{}
	}

	var blob cartBlob
	if err := json.Unmarshal(data, &blob); err == nil && blob.Version >= 1 {
		return sanitize(blob.Items)
	}

	// Legacy bare-array form.
	var items domain.Cart
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("cart blob is corrupt, recovering with empty cart: %v", err)
		return domain.Cart{}
	}
	return sanitize(items)
}

// sanitize re-establishes the cart invariants on load: unique ids,
// quantity at least 1, entries without identity dropped.
func sanitize(items domain.Cart) domain.Cart {
	out := make(domain.Cart, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if !item.Valid() {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		out = append(out, item)
	}
	return out
}
