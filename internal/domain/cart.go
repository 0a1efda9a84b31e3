package domain

// CartItem is a product selection in the cart. Identity is the product ID;
// a cart never holds two items with the same ID.
type CartItem struct {
	Product
	Quantity      int     `json:"quantity"`
	SelectedColor *string `json:"selectedColor"`
	SelectedSize  *string `json:"selectedSize"`
}

// Cart is an ordered sequence of items, insertion order preserved on upsert.
type Cart []CartItem

// Contains reports whether an item with the given product ID is in the cart.
func (c Cart) Contains(id int64) bool {
	for _, item := range c {
		if item.ID == id {
			return true
		}
	}
	return false
}
