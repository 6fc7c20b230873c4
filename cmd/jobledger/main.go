package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/jobledger/jobledger/internal/cli"
	"github.com/jobledger/jobledger/internal/config"
	"github.com/jobledger/jobledger/internal/db"
	"github.com/jobledger/jobledger/internal/repository"
	"github.com/jobledger/jobledger/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	customerRepo := repository.NewSQLiteCustomerRepo(database)
	teamRepo := repository.NewSQLiteTeamRepo(database)
	estimateRepo := repository.NewSQLiteEstimateRepo(database)
	workOrderRepo := repository.NewSQLiteWorkOrderRepo(database)
	invoiceRepo := repository.NewSQLiteInvoiceRepo(database)

	// Wire unit of work for numbering and conversions
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.OperationObserver
	if os.Getenv("JOBLEDGER_LOG_OPS") != "" {
		observers = append(observers, service.NewLogOperationObserver(os.Stderr))
	}

	app := &cli.App{
		Customers:   service.NewCustomerService(customerRepo),
		Team:        service.NewTeamService(teamRepo),
		Estimates:   service.NewEstimateService(estimateRepo, customerRepo, uow),
		WorkOrders:  service.NewWorkOrderService(workOrderRepo, customerRepo, uow),
		Invoices:    service.NewInvoiceService(invoiceRepo, customerRepo, uow),
		Conversions: service.NewConversionService(uow, observers...),
		Import:      service.NewImportService(uow),
		Config:      cfg,
	}

	// Detect interactive terminal for wizard and dashboard entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
