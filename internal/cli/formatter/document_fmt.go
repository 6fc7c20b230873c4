package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/jobledger/jobledger/internal/domain"
)

// FormatEstimateList renders estimates as a table, with derived expired
// statuses applied.
func FormatEstimateList(estimates []*domain.Estimate, now time.Time) string {
	headers := []string{"Number", "Customer", "Status", "Valid Until", "Total"}
	rows := make([][]string, 0, len(estimates))
	for _, e := range estimates {
		rows = append(rows, []string{
			e.DocumentNumber,
			Truncate(e.Customer.Name, 28),
			Status(string(e.DisplayStatus(now))),
			DatePtr(e.ValidUntil),
			Money(e.Totals.Total),
		})
	}
	return RenderTable(headers, rows)
}

// FormatWorkOrderList renders work orders as a table.
func FormatWorkOrderList(orders []*domain.WorkOrder) string {
	headers := []string{"Number", "Customer", "Status", "Priority", "Scheduled", "Assigned", "Total"}
	rows := make([][]string, 0, len(orders))
	for _, w := range orders {
		rows = append(rows, []string{
			w.DocumentNumber,
			Truncate(w.Customer.Name, 28),
			Status(string(w.Status)),
			string(w.Priority),
			DatePtr(w.ScheduledDate),
			Truncate(strings.Join(w.AssignedTo, ", "), 24),
			Money(w.Totals.Total),
		})
	}
	return RenderTable(headers, rows)
}

// FormatInvoiceList renders invoices as a table with effective statuses.
func FormatInvoiceList(invoices []*domain.Invoice, now time.Time) string {
	headers := []string{"Number", "Customer", "Status", "Due", "Total", "Balance"}
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{
			inv.DocumentNumber,
			Truncate(inv.Customer.Name, 28),
			Status(string(inv.EffectiveStatus(now))),
			DatePtr(inv.DueDate),
			Money(inv.Totals.Total),
			Money(inv.Balance()),
		})
	}
	return RenderTable(headers, rows)
}

// FormatCustomerList renders the customer directory.
func FormatCustomerList(customers []*domain.Customer) string {
	headers := []string{"ID", "Name", "Email", "Phone", "Service Address"}
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		name := c.Name
		if c.ArchivedAt != nil {
			name = Dim(name + " (archived)")
		}
		rows = append(rows, []string{
			ShortID(c.ID),
			name,
			c.Email,
			c.Phone,
			Truncate(c.ServiceAddress, 32),
		})
	}
	return RenderTable(headers, rows)
}

// FormatTeamList renders the team directory.
func FormatTeamList(members []*domain.TeamMember) string {
	headers := []string{"ID", "Name", "Role"}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		name := m.Name
		if m.ArchivedAt != nil {
			name = Dim(name + " (archived)")
		}
		rows = append(rows, []string{ShortID(m.ID), name, m.Role})
	}
	return RenderTable(headers, rows)
}

// FormatCompanyHeader renders the configured company profile above document
// detail views. Empty fields are skipped; an unconfigured profile renders
// nothing.
func FormatCompanyHeader(name, phone, email, license string) string {
	if name == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(Bold(name))
	var contact []string
	if phone != "" {
		contact = append(contact, phone)
	}
	if email != "" {
		contact = append(contact, email)
	}
	if license != "" {
		contact = append(contact, "Lic. "+license)
	}
	if len(contact) > 0 {
		b.WriteString("\n")
		b.WriteString(Dim(strings.Join(contact, " · ")))
	}
	b.WriteString("\n\n")
	return b.String()
}

func formatLineItems(items []domain.LineItem) string {
	headers := []string{"Type", "Description", "Qty", "Rate", "Amount", "Tax"}
	rows := make([][]string, 0, len(items))
	for _, li := range items {
		tax := "yes"
		if !li.Taxable {
			tax = Dim("no")
		}
		rows = append(rows, []string{
			string(li.Type),
			Truncate(li.Description, 40),
			fmt.Sprintf("%g", li.Quantity),
			Money(li.Rate),
			Money(li.Amount),
			tax,
		})
	}
	return RenderTable(headers, rows)
}

func formatTotals(t domain.DocumentTotals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("Subtotal:"), Money(t.Subtotal))
	fmt.Fprintf(&b, "%s %s\n", Dim("Tax:"), Money(t.TaxAmount))
	fmt.Fprintf(&b, "%s %s\n", Bold("Total:"), Bold(Money(t.Total)))
	if t.AmountPaid != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Paid:"), Money(*t.AmountPaid))
	}
	if t.Balance != nil {
		fmt.Fprintf(&b, "%s %s\n", Bold("Balance:"), Bold(Money(*t.Balance)))
	}
	return b.String()
}

// FormatEstimateDetail renders one estimate in full.
func FormatEstimateDetail(e *domain.Estimate, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Header("Estimate "+e.DocumentNumber))
	fmt.Fprintf(&b, "%s %s\n", Dim("Customer:"), e.Customer.Name)
	if e.ServiceAddress != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Service address:"), e.ServiceAddress)
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Status:"), Status(string(e.DisplayStatus(now))))
	fmt.Fprintf(&b, "%s %s\n", Dim("Valid until:"), DatePtr(e.ValidUntil))
	if e.ConvertedToWorkOrderID != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Converted to work order:"), e.ConvertedToWorkOrderID)
	}
	if e.ConvertedToInvoiceID != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Converted to invoice:"), e.ConvertedToInvoiceID)
	}
	b.WriteString("\n")
	b.WriteString(formatLineItems(e.LineItems))
	b.WriteString("\n")
	b.WriteString(formatTotals(e.Totals))
	return b.String()
}

// FormatWorkOrderDetail renders one work order in full.
func FormatWorkOrderDetail(w *domain.WorkOrder, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Header("Work Order "+w.DocumentNumber))
	fmt.Fprintf(&b, "%s %s\n", Dim("Customer:"), w.Customer.Name)
	fmt.Fprintf(&b, "%s %s\n", Dim("Status:"), Status(string(w.Status)))
	fmt.Fprintf(&b, "%s %s\n", Dim("Priority:"), string(w.Priority))
	fmt.Fprintf(&b, "%s %s", Dim("Scheduled:"), DatePtr(w.ScheduledDate))
	if w.ScheduledTime != "" {
		fmt.Fprintf(&b, " %s", w.ScheduledTime)
	}
	b.WriteString("\n")
	if len(w.AssignedTo) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("Assigned:"), strings.Join(w.AssignedTo, ", "))
	}
	if mins := w.LoggedMinutes(); mins > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("Time logged:"), Minutes(mins))
	}
	if w.ConvertedToInvoiceID != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Converted to invoice:"), w.ConvertedToInvoiceID)
	}
	b.WriteString("\n")
	b.WriteString(formatLineItems(w.LineItems))
	b.WriteString("\n")
	b.WriteString(formatTotals(w.Totals))
	return b.String()
}

// FormatInvoiceDetail renders one invoice in full, including payment history.
func FormatInvoiceDetail(inv *domain.Invoice, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Header("Invoice "+inv.DocumentNumber))
	fmt.Fprintf(&b, "%s %s\n", Dim("Customer:"), inv.Customer.Name)
	fmt.Fprintf(&b, "%s %s\n", Dim("Status:"), Status(string(inv.EffectiveStatus(now))))
	fmt.Fprintf(&b, "%s %s\n", Dim("Terms:"), inv.PaymentTerms)
	fmt.Fprintf(&b, "%s %s\n", Dim("Due:"), DatePtr(inv.DueDate))
	b.WriteString("\n")
	b.WriteString(formatLineItems(inv.LineItems))
	b.WriteString("\n")
	b.WriteString(formatTotals(inv.Totals))
	if len(inv.Payments) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s\n", Header("Payments"))
		headers := []string{"Date", "Amount", "Method", "Reference"}
		rows := make([][]string, 0, len(inv.Payments))
		for _, p := range inv.Payments {
			rows = append(rows, []string{Date(p.Date), Money(p.Amount), p.Method, p.Reference})
		}
		b.WriteString(RenderTable(headers, rows))
	}
	return b.String()
}
