package repository

import (
	"context"
	"fmt"

	"github.com/jobledger/jobledger/internal/db"
	"github.com/jobledger/jobledger/internal/domain"
)

// line_items is shared by all three document tables, discriminated by
// document_type. Cross-document aliasing is impossible: a conversion writes
// fresh rows under the new document's id.
const (
	docTypeEstimate  = "estimate"
	docTypeWorkOrder = "work_order"
	docTypeInvoice   = "invoice"
)

func insertLineItems(ctx context.Context, q db.DBTX, docType, docID string, items []domain.LineItem) error {
	query := `INSERT INTO line_items (id, document_type, document_id, item_type, description, quantity, rate, amount, taxable, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, li := range items {
		_, err := q.ExecContext(ctx, query,
			li.ID, docType, docID,
			string(li.Type), li.Description,
			li.Quantity, li.Rate, li.Amount,
			boolToInt(li.Taxable), li.Order,
		)
		if err != nil {
			return fmt.Errorf("inserting line item %s: %w", li.ID, err)
		}
	}
	return nil
}

func loadLineItems(ctx context.Context, q db.DBTX, docType, docID string) ([]domain.LineItem, error) {
	query := `SELECT id, item_type, description, quantity, rate, amount, taxable, sort_order
		FROM line_items WHERE document_type = ? AND document_id = ? ORDER BY sort_order, id`
	rows, err := q.QueryContext(ctx, query, docType, docID)
	if err != nil {
		return nil, fmt.Errorf("loading line items: %w", err)
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var li domain.LineItem
		var itemType string
		var taxable int
		if err := rows.Scan(&li.ID, &itemType, &li.Description, &li.Quantity, &li.Rate, &li.Amount, &taxable, &li.Order); err != nil {
			return nil, fmt.Errorf("scanning line item: %w", err)
		}
		li.Type = domain.LineItemType(itemType)
		li.Taxable = intToBool(taxable)
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line items: %w", err)
	}
	return items, nil
}

// replaceLineItems swaps a document's full line item set. Callers run this
// inside the same statement sequence as the document row update.
func replaceLineItems(ctx context.Context, q db.DBTX, docType, docID string, items []domain.LineItem) error {
	if _, err := q.ExecContext(ctx,
		`DELETE FROM line_items WHERE document_type = ? AND document_id = ?`, docType, docID); err != nil {
		return fmt.Errorf("clearing line items: %w", err)
	}
	return insertLineItems(ctx, q, docType, docID, items)
}
