package importer

import (
	"fmt"
	"strings"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if len(schema.Customers) == 0 && len(schema.Team) == 0 {
		errs = append(errs, fmt.Errorf("import file has no customers and no team members"))
	}

	errs = append(errs, validateCustomers(schema.Customers)...)
	errs = append(errs, validateTeam(schema.Team)...)

	return errs
}

func validateCustomers(customers []CustomerImport) []error {
	var errs []error

	seen := make(map[string]bool)
	for i, c := range customers {
		prefix := fmt.Sprintf("customers[%d]", i)

		name := strings.TrimSpace(c.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate name %q", prefix, name))
		}
		seen[key] = true

		if c.Email != "" && !strings.Contains(c.Email, "@") {
			errs = append(errs, fmt.Errorf("%s.email: invalid address %q", prefix, c.Email))
		}
	}

	return errs
}

func validateTeam(members []TeamMemberImport) []error {
	var errs []error

	seen := make(map[string]bool)
	for i, m := range members {
		prefix := fmt.Sprintf("team[%d]", i)

		name := strings.TrimSpace(m.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate name %q", prefix, name))
		}
		seen[key] = true
	}

	return errs
}
