package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobledger/jobledger/internal/domain"
)

// parseLineItemSpec parses one --item flag value of the form
// "type|qty|rate|description" with an optional trailing "|notax" to mark
// the item non-taxable.
func parseLineItemSpec(spec string) (domain.LineItem, error) {
	parts := strings.Split(spec, "|")
	if len(parts) < 4 || len(parts) > 5 {
		return domain.LineItem{}, fmt.Errorf("invalid --item %q, expected type|qty|rate|description[|notax]", spec)
	}

	typ := strings.ToLower(strings.TrimSpace(parts[0]))
	qty, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("invalid quantity in --item %q: %w", spec, err)
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("invalid rate in --item %q: %w", spec, err)
	}
	desc := strings.TrimSpace(parts[3])

	taxable := true
	if len(parts) == 5 {
		switch strings.ToLower(strings.TrimSpace(parts[4])) {
		case "notax":
			taxable = false
		case "tax", "":
		default:
			return domain.LineItem{}, fmt.Errorf("invalid tax marker in --item %q, expected \"notax\"", spec)
		}
	}

	return domain.NewLineItem(uuid.New().String(), domain.LineItemType(typ), desc, qty, rate, taxable)
}

// parseLineItemFlags parses all --item values, preserving flag order.
func parseLineItemFlags(specs []string) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(specs))
	for i, spec := range specs {
		li, err := parseLineItemSpec(spec)
		if err != nil {
			return nil, err
		}
		li.Order = i
		items = append(items, li)
	}
	return items, nil
}

// parseDateFlag parses a YYYY-MM-DD flag value, returning nil when empty.
func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q, use YYYY-MM-DD", name, value)
	}
	t = t.UTC()
	return &t, nil
}
