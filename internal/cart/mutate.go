package cart

import "github.com/touhidul7/orbin-storefront/internal/domain"

// Pure cart mutators. Every function returns a fresh slice so the caller's
// previous reference is never aliased; persistence is the Service's job.

// Upsert merges a product into the cart. An invalid product returns the
// cart unchanged (nil coerced to empty). When the id already exists its
// quantity grows by qty and the remaining fields are refreshed from the
// incoming product, keeping the item's position and selections. Otherwise
// a new item is appended with no color/size selection.
func Upsert(c domain.Cart, p domain.Product, qty int) domain.Cart {
	next := clone(c)
	if !p.Valid() {
		return next
	}
	if qty < 1 {
		qty = 1
	}

	for i, item := range next {
		if item.ID != p.ID {
			continue
		}
		existing := item.Quantity
		if existing < 1 {
			existing = 1
		}
		next[i].Product = p
		next[i].Quantity = existing + qty
		return next
	}

	return append(next, domain.CartItem{
		Product:       p,
		Quantity:      qty,
		SelectedColor: nil,
		SelectedSize:  nil,
	})
}

// Remove filters out the item with the given id, preserving the relative
// order of the rest. An invalid id returns the cart unchanged.
func Remove(c domain.Cart, id int64) domain.Cart {
	if id <= 0 {
		return clone(c)
	}
	next := make(domain.Cart, 0, len(c))
	for _, item := range c {
		if item.ID != id {
			next = append(next, item)
		}
	}
	return next
}

// IncrementQuantity raises the quantity of the matching item by one.
func IncrementQuantity(c domain.Cart, id int64) domain.Cart {
	next := clone(c)
	for i, item := range next {
		if item.ID == id {
			if item.Quantity < 1 {
				next[i].Quantity = 1
			}
			next[i].Quantity++
			break
		}
	}
	return next
}

// DecrementQuantity lowers the quantity of the matching item by one.
// Decrementing at quantity 1 is a no-op: items are removed, never zeroed.
func DecrementQuantity(c domain.Cart, id int64) domain.Cart {
	next := clone(c)
	for i, item := range next {
		if item.ID == id {
			if item.Quantity > 1 {
				next[i].Quantity--
			}
			break
		}
	}
	return next
}

func clone(c domain.Cart) domain.Cart {
	next := make(domain.Cart, len(c))
	copy(next, c)
	return next
}
