package domain

import (
	"fmt"
	"math"
)

// Round2 rounds to 2 decimal places, half away from zero. Every monetary
// invariant boundary (amount, taxable base, tax, total, balance) is rounded
// independently so cumulative rounding matches document-by-document math.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LineItem is the atomic priced unit of work on a document. Amount is
// derived from Quantity and Rate and is never set independently.
type LineItem struct {
	ID          string       `json:"id"`
	Type        LineItemType `json:"type"`
	Description string       `json:"description"`
	Quantity    float64      `json:"quantity"`
	Rate        float64      `json:"rate"`
	Amount      float64      `json:"amount"`
	Taxable     bool         `json:"taxable"`
	Order       int          `json:"order"`
}

// NewLineItem creates a line item with Amount computed immediately.
// Quantity must be non-negative. A negative Rate is accepted so a line item
// can express a credit or discount.
func NewLineItem(id string, typ LineItemType, description string, quantity, rate float64, taxable bool) (LineItem, error) {
	li := LineItem{
		ID:          id,
		Type:        typ,
		Description: description,
		Taxable:     taxable,
	}
	if !ValidLineItemTypes[string(typ)] {
		return LineItem{}, fmt.Errorf("%w: unknown line item type %q", ErrValidation, typ)
	}
	if err := li.Reprice(quantity, rate); err != nil {
		return LineItem{}, err
	}
	return li, nil
}

// Reprice sets Quantity and Rate and recomputes Amount. Callers must use
// this for any later quantity/rate change; Amount is never recomputed on
// read.
func (li *LineItem) Reprice(quantity, rate float64) error {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return fmt.Errorf("%w: quantity is not finite", ErrComputation)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: rate is not finite", ErrComputation)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	li.Quantity = quantity
	li.Rate = rate
	li.Amount = Round2(quantity * rate)
	return nil
}

// CopyLineItems returns a value copy of the given line items. Conversions
// use it so a new document never shares a slice with its source.
func CopyLineItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
