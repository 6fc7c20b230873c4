package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobledger/jobledger/internal/domain"
)

// looksLikeNumber reports whether input has the PREFIX-NNNN shape of a
// document number rather than a UUID.
func looksLikeNumber(input string) bool {
	i := strings.IndexByte(input, '-')
	if i <= 0 || i == len(input)-1 {
		return false
	}
	for _, r := range input[:i] {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	for _, r := range input[i+1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// resolveEstimate finds an estimate by document number (case-insensitive)
// or by ID.
func resolveEstimate(ctx context.Context, app *App, input string) (*domain.Estimate, error) {
	if input == "" {
		return nil, fmt.Errorf("estimate number or ID is required")
	}
	if looksLikeNumber(input) {
		return app.Estimates.GetByNumber(ctx, input)
	}
	return app.Estimates.GetByID(ctx, input)
}

// resolveWorkOrder finds a work order by document number or ID.
func resolveWorkOrder(ctx context.Context, app *App, input string) (*domain.WorkOrder, error) {
	if input == "" {
		return nil, fmt.Errorf("work order number or ID is required")
	}
	if looksLikeNumber(input) {
		return app.WorkOrders.GetByNumber(ctx, input)
	}
	return app.WorkOrders.GetByID(ctx, input)
}

// resolveInvoice finds an invoice by document number or ID.
func resolveInvoice(ctx context.Context, app *App, input string) (*domain.Invoice, error) {
	if input == "" {
		return nil, fmt.Errorf("invoice number or ID is required")
	}
	if looksLikeNumber(input) {
		return app.Invoices.GetByNumber(ctx, input)
	}
	return app.Invoices.GetByID(ctx, input)
}

// resolveCustomerID matches input against the customer directory.
//
//  1. Exact name match (case-insensitive)
//  2. Exact ID match
//  3. ID prefix match
func resolveCustomerID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("customer name or ID is required")
	}

	customers, err := app.Customers.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, c := range customers {
		if strings.EqualFold(c.Name, input) {
			return c.ID, nil
		}
	}

	for _, c := range customers {
		if c.ID == input {
			return c.ID, nil
		}
	}

	var matches []string
	for _, c := range customers {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("customer not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("customer ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTeamMemberID matches input against the team directory using the
// same rules as resolveCustomerID.
func resolveTeamMemberID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("team member name or ID is required")
	}

	members, err := app.Team.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, m := range members {
		if strings.EqualFold(m.Name, input) {
			return m.ID, nil
		}
	}
	for _, m := range members {
		if m.ID == input {
			return m.ID, nil
		}
	}

	var matches []string
	for _, m := range members {
		if strings.HasPrefix(m.ID, input) {
			matches = append(matches, m.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("team member not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("team member ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
