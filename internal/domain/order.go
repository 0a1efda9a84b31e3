package domain

import "time"

// DeliveryArea selects the delivery fee tier.
type DeliveryArea string

const (
	DeliveryInside  DeliveryArea = "inside"
	DeliveryOutside DeliveryArea = "outside"
)

// OrderDraft is the mutable checkout form state. It is created empty when
// checkout opens, mutated by form input and cart changes, and discarded on
// close or successful submission.
type OrderDraft struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Address        string       `json:"address"`
	Phone          string       `json:"phone"`
	Area           DeliveryArea `json:"area"`
	Authenticated  bool         `json:"authenticated"`
	Subtotal       float64      `json:"subtotal"`
	DeliveryCharge float64      `json:"deliveryCharge"`
	GrandTotal     float64      `json:"grandTotal"`
	CreatedAt      time.Time    `json:"createdAt"`
}
