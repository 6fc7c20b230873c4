package domain

import (
	"fmt"
	"strings"
	"time"
)

// Customer is a directory entry. Documents carry a CustomerRef snapshot of
// these fields rather than a live reference, so an edited customer record
// never silently rewrites issued documents.
type Customer struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	ServiceAddress string     `json:"serviceAddress"`
	BillingAddress string     `json:"billingAddress,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	ArchivedAt     *time.Time `json:"archivedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Validate returns an error if the customer is not usable on a document.
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	return nil
}

// Ref returns the snapshot copied onto documents.
func (c *Customer) Ref() CustomerRef {
	return CustomerRef{
		CustomerID: c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
	}
}

// CustomerRef is the customer identity embedded in a document.
type CustomerRef struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"customerName"`
	Email      string `json:"customerEmail,omitempty"`
	Phone      string `json:"customerPhone,omitempty"`
}

// TeamMember is an assignment directory entry used to populate a work
// order's AssignedTo list.
type TeamMember struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Role       string     `json:"role,omitempty"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Validate returns an error if the team member record is invalid.
func (m *TeamMember) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: team member name is required", ErrValidation)
	}
	return nil
}
