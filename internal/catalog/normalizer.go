package catalog

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/touhidul7/orbin-storefront/internal/domain"
)

// Normalize flattens a product's embedded recommendation payload into a
// deduplicated ordered sequence. The payload is untrusted: it may be absent,
// a JSON array of product-shaped values, or a string encoding such an array,
// and its elements may themselves be strings needing another parse attempt.
// Malformed values and elements without a positive integer id are dropped
// silently. Dedup is by id, first occurrence wins, with one visited set
// shared across the whole walk so cycles terminate regardless of depth.
//
// maxDepth bounds recursion into each accepted element's own payload:
// 0 yields only directly listed products, 1 adds one level of indirection.
func Normalize(p domain.Product, maxDepth int) []domain.Product {
	seen := make(map[int64]struct{})
	out := []domain.Product{}
	walk(decodeList(p.Recommended), maxDepth, seen, &out)
	return out
}

// walk appends accepted products from items to out in discovery order.
// The visited set is shared by reference through the entire recursion.
func walk(items []any, depth int, seen map[int64]struct{}, out *[]domain.Product) {
	for _, el := range items {
		node, ok := resolveNode(el)
		if !ok {
			continue
		}
		id, ok := coerceID(node["id"])
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		*out = append(*out, productFromNode(id, node))
		if depth > 0 {
			walk(childList(node["recommended"]), depth-1, seen, out)
		}
	}
}

// decodeList turns the raw payload into a slice of untyped elements,
// tolerating the string-encoded form. Anything unparseable is absent.
func decodeList(raw json.RawMessage) []any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return childList(v)
}

// childList resolves an already-decoded value into a list of elements:
// a slice passes through, a string gets one structured parse attempt,
// everything else is malformed.
func childList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case string:
		var inner any
		if err := json.Unmarshal([]byte(t), &inner); err != nil {
			return nil
		}
		if list, ok := inner.([]any); ok {
			return list
		}
		return nil
	default:
		return nil
	}
}

// resolveNode turns one list element into a product-shaped map: an inline
// object passes through, a string gets a parse attempt, the rest is dropped.
func resolveNode(el any) (map[string]any, bool) {
	switch t := el.(type) {
	case map[string]any:
		return t, true
	case string:
		var inner any
		if err := json.Unmarshal([]byte(t), &inner); err != nil {
			return nil, false
		}
		node, ok := inner.(map[string]any)
		return node, ok
	default:
		return nil, false
	}
}

func productFromNode(id int64, node map[string]any) domain.Product {
	return domain.Product{
		ID:           id,
		Name:         coerceString(node["name"]),
		SellingPrice: coerceFloat(node["sellingPrice"]),
		RegularPrice: coerceFloat(node["regularPrice"]),
		Image:        coerceString(node["image"]),
		Category:     coerceString(node["category"]),
		Subcategory:  coerceString(node["subCategory"]),
		Availability: coerceString(node["availability"]),
	}
}

// coerceID accepts JSON numbers and numeric strings; only positive
// integral values qualify as an identity.
func coerceID(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		if t <= 0 || t != math.Trunc(t) {
			return 0, false
		}
		return int64(t), true
	case string:
		id, err := strconv.ParseInt(t, 10, 64)
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

func coerceFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}
