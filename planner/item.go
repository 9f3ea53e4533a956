package planner

import (
	"encoding/json"
	"strconv"
	"time"
)

// Item is one saved entry in a planning bucket. The price fields mirror the
// heterogeneous payloads the listing pages hand over: hotels send price,
// vehicles cost, package deals totalPrice, and any of them may arrive as a
// string. Amounts are raw numbers with no currency normalization; upstream
// listings all quote LKR.
type Item struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	TotalPrice any       `json:"totalPrice,omitempty"`
	Price      any       `json:"price,omitempty"`
	Cost       any       `json:"cost,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
}

// Amount resolves the item's price: first present of totalPrice, price,
// cost, coerced to a number. A non-numeric or absent value contributes 0 and
// never fails.
func (i Item) Amount() float64 {
	for _, candidate := range []any{i.TotalPrice, i.Price, i.Cost} {
		if candidate == nil {
			continue
		}
		return coerceNumber(candidate)
	}
	return 0
}

// coerceNumber converts the JSON-ish values a price field can hold into a
// float64, yielding 0 for anything non-numeric.
func coerceNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
