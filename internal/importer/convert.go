package importer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobledger/jobledger/internal/domain"
)

// ImportedDirectory holds the converted domain objects ready for persistence.
type ImportedDirectory struct {
	Customers []*domain.Customer
	Team      []*domain.TeamMember
}

// Convert transforms a validated ImportSchema into domain objects.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) *ImportedDirectory {
	now := time.Now().UTC()

	customers := make([]*domain.Customer, 0, len(schema.Customers))
	for _, c := range schema.Customers {
		customers = append(customers, &domain.Customer{
			ID:             uuid.New().String(),
			Name:           strings.TrimSpace(c.Name),
			Email:          strings.TrimSpace(c.Email),
			Phone:          strings.TrimSpace(c.Phone),
			ServiceAddress: strings.TrimSpace(c.ServiceAddress),
			BillingAddress: strings.TrimSpace(c.BillingAddress),
			Notes:          c.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	team := make([]*domain.TeamMember, 0, len(schema.Team))
	for _, m := range schema.Team {
		team = append(team, &domain.TeamMember{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(m.Name),
			Role:      strings.TrimSpace(m.Role),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return &ImportedDirectory{Customers: customers, Team: team}
}
