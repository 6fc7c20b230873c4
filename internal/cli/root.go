package cli

import (
	"github.com/spf13/cobra"

	"github.com/jobledger/jobledger/internal/config"
	"github.com/jobledger/jobledger/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Customers   service.CustomerService
	Team        service.TeamService
	Estimates   service.EstimateService
	WorkOrders  service.WorkOrderService
	Invoices    service.InvoiceService
	Conversions service.ConversionService
	Import      service.DirectoryImportService

	Config *config.Config

	// IsInteractive reports whether stdin is attached to a terminal, so
	// commands can decide between wizard forms and flag-only input.
	IsInteractive func() bool
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

// NewRootCmd creates the top-level "jobledger" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "jobledger",
		Short: "Estimates, work orders and invoices for a small contracting outfit",
	}

	root.AddCommand(
		newCustomerCmd(app),
		newTeamCmd(app),
		newEstimateCmd(app),
		newWorkOrderCmd(app),
		newInvoiceCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newDashboardCmd(app),
		newConfigCmd(app),
	)

	return root
}
