package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobledger/jobledger/internal/db"
	"github.com/jobledger/jobledger/internal/domain"
	"github.com/jobledger/jobledger/internal/repository"
)

type conversionService struct {
	uow      db.UnitOfWork
	observer OperationObserver
}

func NewConversionService(uow db.UnitOfWork, observers ...OperationObserver) ConversionService {
	return &conversionService{uow: uow, observer: observerOrNoop(observers)}
}

// EstimateToWorkOrder converts an accepted estimate into a work order. The
// source is re-read inside the transaction, so two concurrent conversions of
// the same estimate cannot both succeed.
func (s *conversionService) EstimateToWorkOrder(ctx context.Context, estimateID string, opts ConvertOptions) (wo *domain.WorkOrder, err error) {
	defer s.observe(ctx, "convert-estimate-to-work-order", time.Now().UTC(),
		map[string]any{"estimate_id": estimateID}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEst := repository.NewSQLiteEstimateRepo(tx)
		txWO := repository.NewSQLiteWorkOrderRepo(tx)
		txSeq := repository.NewSQLiteSequenceRepo(tx)

		est, err := txEst.GetByID(ctx, estimateID)
		if err != nil {
			return err
		}
		if est == nil {
			return fmt.Errorf("estimate %s not found", estimateID)
		}

		num, err := txSeq.NextNumber(ctx, domain.PrefixWorkOrder)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		wo, err = domain.ConvertEstimateToWorkOrder(est, uuid.New().String(), num, now, opts.ScheduledDate, opts.AssignedTo)
		if err != nil {
			return err
		}
		if err := txWO.Create(ctx, wo); err != nil {
			return err
		}
		return txEst.Update(ctx, est)
	})
	if err != nil {
		return nil, err
	}
	return wo, nil
}

// WorkOrderToInvoice converts a completed work order into an invoice.
func (s *conversionService) WorkOrderToInvoice(ctx context.Context, workOrderID string, opts ConvertOptions) (inv *domain.Invoice, err error) {
	defer s.observe(ctx, "convert-work-order-to-invoice", time.Now().UTC(),
		map[string]any{"work_order_id": workOrderID}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txWO := repository.NewSQLiteWorkOrderRepo(tx)
		txInv := repository.NewSQLiteInvoiceRepo(tx)
		txSeq := repository.NewSQLiteSequenceRepo(tx)

		wo, err := txWO.GetByID(ctx, workOrderID)
		if err != nil {
			return err
		}
		if wo == nil {
			return fmt.Errorf("work order %s not found", workOrderID)
		}

		num, err := txSeq.NextNumber(ctx, domain.PrefixInvoice)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		inv, err = domain.ConvertWorkOrderToInvoice(wo, uuid.New().String(), num, now, opts.PaymentTerms, opts.DueDate)
		if err != nil {
			return err
		}
		if err := txInv.Create(ctx, inv); err != nil {
			return err
		}
		return txWO.Update(ctx, wo)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// EstimateToInvoice is the shortcut conversion for jobs billed without a
// work order.
func (s *conversionService) EstimateToInvoice(ctx context.Context, estimateID string, opts ConvertOptions) (inv *domain.Invoice, err error) {
	defer s.observe(ctx, "convert-estimate-to-invoice", time.Now().UTC(),
		map[string]any{"estimate_id": estimateID}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEst := repository.NewSQLiteEstimateRepo(tx)
		txInv := repository.NewSQLiteInvoiceRepo(tx)
		txSeq := repository.NewSQLiteSequenceRepo(tx)

		est, err := txEst.GetByID(ctx, estimateID)
		if err != nil {
			return err
		}
		if est == nil {
			return fmt.Errorf("estimate %s not found", estimateID)
		}

		num, err := txSeq.NextNumber(ctx, domain.PrefixInvoice)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		inv, err = domain.ConvertEstimateToInvoice(est, uuid.New().String(), num, now, opts.PaymentTerms, opts.DueDate)
		if err != nil {
			return err
		}
		if err := txInv.Create(ctx, inv); err != nil {
			return err
		}
		return txEst.Update(ctx, est)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *conversionService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, errp *error) {
	s.observer.ObserveOperation(ctx, OperationEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   *errp == nil,
		Err:       *errp,
		Fields:    fields,
	})
}
