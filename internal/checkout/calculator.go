package checkout

import (
	"regexp"

	"github.com/touhidul7/orbin-storefront/internal/domain"
)

// Delivery fee tiers in taka. Inside the city is cheaper; any other or
// unknown area falls back to the outside fee so an order is never left
// without a charge.
const (
	InsideDeliveryCharge  = 70
	OutsideDeliveryCharge = 120
)

// Subtotal sums sellingPrice x quantity over the cart. A missing or
// negative price counts as 0 and an invalid quantity as 1; it never fails.
func Subtotal(c domain.Cart) float64 {
	var total float64
	for _, item := range c {
		price := item.SellingPrice
		if price < 0 {
			price = 0
		}
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		total += price * float64(qty)
	}
	return total
}

// DeliveryCharge maps the delivery area to its fee.
func DeliveryCharge(area domain.DeliveryArea) float64 {
	if area == domain.DeliveryInside {
		return InsideDeliveryCharge
	}
	return OutsideDeliveryCharge
}

// GrandTotal is the subtotal plus the delivery charge for the area.
func GrandTotal(c domain.Cart, area domain.DeliveryArea) float64 {
	return Subtotal(c) + DeliveryCharge(area)
}

// Accepts the leading-zero 11-digit local form or the +880 international
// form with the country prefix replacing the leading zero.
var phonePattern = regexp.MustCompile(`^(?:\+8801|01)[3-9][0-9]{8}$`)

// ValidPhone reports whether the value is a well-formed phone number.
// Stored profile phones go through the same check before submission; a
// profile value is never trusted as pre-validated.
func ValidPhone(value string) bool {
	return phonePattern.MatchString(value)
}
