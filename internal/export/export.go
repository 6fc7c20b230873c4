// Package export writes document listings to CSV and XLSX files for use in
// spreadsheets and accounting handoffs.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/jobledger/jobledger/internal/domain"
)

// Table is a flat, ordered representation of a document listing, ready to be
// serialized by any writer.
type Table struct {
	Headers []string
	Rows    [][]string
}

var estimateHeaders = []string{
	"Number", "Customer", "Status", "Created", "Valid Until", "Subtotal", "Tax", "Total",
}

var workOrderHeaders = []string{
	"Number", "Customer", "Status", "Priority", "Scheduled", "Assigned To", "Created", "Subtotal", "Tax", "Total",
}

var invoiceHeaders = []string{
	"Number", "Customer", "Status", "Created", "Due", "Subtotal", "Tax", "Total", "Paid", "Balance",
}

// EstimateTable flattens estimates into export rows. Statuses are the
// display statuses, so an expired estimate exports as "expired".
func EstimateTable(estimates []*domain.Estimate, now time.Time) Table {
	rows := make([][]string, 0, len(estimates))
	for _, e := range estimates {
		rows = append(rows, []string{
			e.DocumentNumber,
			e.Customer.Name,
			string(e.DisplayStatus(now)),
			formatDate(e.CreatedAt),
			formatDatePtr(e.ValidUntil),
			money(e.Totals.Subtotal),
			money(e.Totals.TaxAmount),
			money(e.Totals.Total),
		})
	}
	return Table{Headers: estimateHeaders, Rows: rows}
}

// WorkOrderTable flattens work orders into export rows.
func WorkOrderTable(orders []*domain.WorkOrder) Table {
	rows := make([][]string, 0, len(orders))
	for _, w := range orders {
		rows = append(rows, []string{
			w.DocumentNumber,
			w.Customer.Name,
			string(w.Status),
			string(w.Priority),
			formatDatePtr(w.ScheduledDate),
			strings.Join(w.AssignedTo, "; "),
			formatDate(w.CreatedAt),
			money(w.Totals.Subtotal),
			money(w.Totals.TaxAmount),
			money(w.Totals.Total),
		})
	}
	return Table{Headers: workOrderHeaders, Rows: rows}
}

// InvoiceTable flattens invoices into export rows. Statuses are effective
// statuses, so partially paid and overdue invoices export as such.
func InvoiceTable(invoices []*domain.Invoice, now time.Time) Table {
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{
			inv.DocumentNumber,
			inv.Customer.Name,
			string(inv.EffectiveStatus(now)),
			formatDate(inv.CreatedAt),
			formatDatePtr(inv.DueDate),
			money(inv.Totals.Subtotal),
			money(inv.Totals.TaxAmount),
			money(inv.Totals.Total),
			money(inv.AmountPaid()),
			money(inv.Balance()),
		})
	}
	return Table{Headers: invoiceHeaders, Rows: rows}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}
