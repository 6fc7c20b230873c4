package domain

import (
	"fmt"
	"math"
)

// DocumentTotals holds the computed financial summary of a document.
// AmountPaid and Balance are set on invoices only.
type DocumentTotals struct {
	Subtotal   float64  `json:"subtotal"`
	TaxAmount  float64  `json:"taxAmount"`
	Total      float64  `json:"total"`
	AmountPaid *float64 `json:"amountPaid,omitempty"`
	Balance    *float64 `json:"balance,omitempty"`
}

// CalculateDocumentTotals computes subtotal, tax and total from the line
// items and tax rate (a percentage, e.g. 10 for 10%). Pure and
// deterministic; rounding is applied at each boundary, not once at the end.
func CalculateDocumentTotals(items []LineItem, taxRate float64) (DocumentTotals, error) {
	if math.IsNaN(taxRate) || math.IsInf(taxRate, 0) {
		return DocumentTotals{}, fmt.Errorf("%w: tax rate is not finite", ErrComputation)
	}

	var subtotal, taxableBase float64
	for _, li := range items {
		if math.IsNaN(li.Amount) || math.IsInf(li.Amount, 0) {
			return DocumentTotals{}, fmt.Errorf("%w: line item %q amount is not finite", ErrComputation, li.ID)
		}
		subtotal += li.Amount
		if li.Taxable {
			taxableBase += li.Amount
		}
	}
	subtotal = Round2(subtotal)
	taxableBase = Round2(taxableBase)
	taxAmount := Round2(taxableBase * taxRate / 100)
	total := Round2(subtotal + taxAmount)

	if math.IsNaN(total) || math.IsInf(total, 0) {
		return DocumentTotals{}, fmt.Errorf("%w: total is not finite", ErrComputation)
	}

	return DocumentTotals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     total,
	}, nil
}

// CalculateInvoiceTotals extends CalculateDocumentTotals with the payment
// side: AmountPaid is the sum of payment amounts and Balance the rounded
// remainder. An empty payment list yields AmountPaid 0 and Balance == Total.
func CalculateInvoiceTotals(items []LineItem, taxRate float64, payments []Payment) (DocumentTotals, error) {
	totals, err := CalculateDocumentTotals(items, taxRate)
	if err != nil {
		return DocumentTotals{}, err
	}

	var paid float64
	for _, p := range payments {
		if math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
			return DocumentTotals{}, fmt.Errorf("%w: payment %q amount is not finite", ErrComputation, p.ID)
		}
		paid += p.Amount
	}
	balance := Round2(totals.Total - paid)

	totals.AmountPaid = &paid
	totals.Balance = &balance
	return totals, nil
}
