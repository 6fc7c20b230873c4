package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jobledger/jobledger/internal/cli/formatter"
	"github.com/jobledger/jobledger/internal/config"
)

// companyHeader renders the configured company profile, or nothing when the
// profile is unset.
func companyHeader(app *App) string {
	c := app.Config.Company
	return formatter.FormatCompanyHeader(c.Name, c.Phone, c.Email, c.License)
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change configuration",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigSetCmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			fmt.Printf("%s %s\n", formatter.Dim("Config file:"), config.DefaultConfigPath())
			fmt.Printf("%s %s\n", formatter.Dim("Database:"), cfg.Database.Path)
			fmt.Printf("%s %s\n", formatter.Dim("Company:"), cfg.Company.Name)
			fmt.Printf("%s %s\n", formatter.Dim("Phone:"), cfg.Company.Phone)
			fmt.Printf("%s %s\n", formatter.Dim("Email:"), cfg.Company.Email)
			fmt.Printf("%s %s\n", formatter.Dim("License:"), cfg.Company.License)
			fmt.Printf("%s %g%%\n", formatter.Dim("Default tax rate:"), cfg.Documents.DefaultTaxRate)
			fmt.Printf("%s %s\n", formatter.Dim("Payment terms:"), cfg.Documents.DefaultPaymentTerms)
			fmt.Printf("%s %d days\n", formatter.Dim("Invoices due in:"), cfg.Documents.DefaultDueDays)
			fmt.Printf("%s %d days\n", formatter.Dim("Estimates valid for:"), cfg.Documents.EstimateValidDays)
			fmt.Printf("%s %s\n", formatter.Dim("Export directory:"), cfg.Documents.ExportDir)
			return nil
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value and save",
		Long: "Set a configuration value and save the config file.\n\n" +
			"Keys: company.name, company.phone, company.email, company.address,\n" +
			"company.license, documents.tax_rate, documents.payment_terms,\n" +
			"documents.due_days, documents.valid_days, documents.export_dir,\n" +
			"database.path",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			cfg := app.Config

			switch key {
			case "company.name":
				cfg.Company.Name = value
			case "company.phone":
				cfg.Company.Phone = value
			case "company.email":
				cfg.Company.Email = value
			case "company.address":
				cfg.Company.Address = value
			case "company.license":
				cfg.Company.License = value
			case "documents.tax_rate":
				rate, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("invalid tax rate %q: %w", value, err)
				}
				cfg.Documents.DefaultTaxRate = rate
			case "documents.payment_terms":
				cfg.Documents.DefaultPaymentTerms = value
			case "documents.due_days":
				days, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("invalid due days %q: %w", value, err)
				}
				cfg.Documents.DefaultDueDays = days
			case "documents.valid_days":
				days, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("invalid valid days %q: %w", value, err)
				}
				cfg.Documents.EstimateValidDays = days
			case "documents.export_dir":
				cfg.Documents.ExportDir = value
			case "database.path":
				cfg.Database.Path = value
			default:
				return fmt.Errorf("unknown config key %q", key)
			}

			if err := cfg.Save(config.DefaultConfigPath()); err != nil {
				return err
			}
			fmt.Printf("Set %s\n", key)
			return nil
		},
	}
}
