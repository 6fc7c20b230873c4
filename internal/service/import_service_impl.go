package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jobledger/jobledger/internal/db"
	"github.com/jobledger/jobledger/internal/importer"
	"github.com/jobledger/jobledger/internal/repository"
)

type importService struct {
	uow db.UnitOfWork
}

func NewImportService(uow db.UnitOfWork) DirectoryImportService {
	return &importService{uow: uow}
}

// ImportDirectory loads, validates and persists a directory import file.
// All records commit in one transaction, so a bad row never leaves a
// half-imported directory behind.
func (s *importService) ImportDirectory(ctx context.Context, path string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, err
	}
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("invalid import file: %w", errors.Join(errs...))
	}

	dir := importer.Convert(schema)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCust := repository.NewSQLiteCustomerRepo(tx)
		txTeam := repository.NewSQLiteTeamRepo(tx)

		for _, c := range dir.Customers {
			if err := txCust.Create(ctx, c); err != nil {
				return fmt.Errorf("importing customer %q: %w", c.Name, err)
			}
		}
		for _, m := range dir.Team {
			if err := txTeam.Create(ctx, m); err != nil {
				return fmt.Errorf("importing team member %q: %w", m.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		CustomerCount: len(dir.Customers),
		TeamCount:     len(dir.Team),
	}, nil
}
