package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for a directory import file.
// It seeds the customer and team directories in one shot, typically when
// migrating from a spreadsheet or another tool.
type ImportSchema struct {
	Customers []CustomerImport   `json:"customers"`
	Team      []TeamMemberImport `json:"team,omitempty"`
}

// CustomerImport defines one customer in the import file.
type CustomerImport struct {
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	ServiceAddress string `json:"service_address,omitempty"`
	BillingAddress string `json:"billing_address,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// TeamMemberImport defines one team member in the import file.
type TeamMemberImport struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// LoadImportSchema reads and parses a directory import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
