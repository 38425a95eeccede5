package model

import "github.com/shopspring/decimal"

// Quantity is an exact item amount. It goes over the wire as a JSON number
// and is stored as NUMERIC.
type Quantity struct {
	decimal.Decimal
}

func NewQuantity(d decimal.Decimal) Quantity {
	return Quantity{Decimal: d}
}

// MarshalJSON writes the amount unquoted, e.g. 2.5.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.Decimal.String()), nil
}
