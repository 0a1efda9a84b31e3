package domain

import "encoding/json"

// Product is a catalog record. Recommended carries the embedded
// "recommended products" payload exactly as the catalog delivered it:
// absent, a JSON array of nested product-shaped values, or a string
// encoding such an array. It is resolved lazily by the normalizer and
// must never be trusted to be well formed.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	SellingPrice float64         `json:"sellingPrice"`
	RegularPrice float64         `json:"regularPrice,omitempty"`
	Image        string          `json:"image,omitempty"`
	Category     string          `json:"category,omitempty"`
	Subcategory  string          `json:"subCategory,omitempty"`
	Availability string          `json:"availability,omitempty"`
	Recommended  json.RawMessage `json:"recommended,omitempty"`
}

// Valid reports whether the product carries a usable identity.
func (p Product) Valid() bool {
	return p.ID > 0
}
