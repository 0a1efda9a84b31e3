package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touhidul7/orbin-storefront/internal/domain"
)

func TestBlob_RoundTrip(t *testing.T) {
	size := "XL"
	c := domain.Cart{
		{Product: product(1, "keyboard", 1500), Quantity: 2},
		{Product: product(2, "mouse", 450), Quantity: 1, SelectedSize: &size},
	}

	data, err := encodeCart(c)
	require.NoError(t, err)

	got := decodeCart(data)
	assert.Equal(t, c, got)
}

func TestBlob_EmptyAndCorruptDegradeToEmptyCart(t *testing.T) {
	assert.Empty(t, decodeCart(nil))
	assert.Empty(t, decodeCart([]byte("")))
	assert.Empty(t, decodeCart([]byte("{not json")))
	assert.Empty(t, decodeCart([]byte(`"just a string"`)))
}

func TestBlob_LegacyBareArrayStillDecodes(t *testing.T) {
	data := []byte(`[{"id":5,"name":"pad","sellingPrice":200,"quantity":4,"selectedColor":null,"selectedSize":null}]`)

	got := decodeCart(data)
	require.Len(t, got, 1)
	assert.Equal(t, int64(5), got[0].ID)
	assert.Equal(t, 4, got[0].Quantity)
}

func TestBlob_SanitizesOnLoad(t *testing.T) {
	data := []byte(`{"v":1,"items":[
		{"id":1,"quantity":0},
		{"id":1,"quantity":3},
		{"id":0,"quantity":2},
		{"id":2,"quantity":-1}
	]}`)

	got := decodeCart(data)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, 1, got[0].Quantity, "quantity floors at 1")
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, 1, got[1].Quantity)
}
