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

type workOrderService struct {
	workOrders repository.WorkOrderRepo
	customers  repository.CustomerRepo
	uow        db.UnitOfWork
}

func NewWorkOrderService(workOrders repository.WorkOrderRepo, customers repository.CustomerRepo, uow db.UnitOfWork) WorkOrderService {
	return &workOrderService{workOrders: workOrders, customers: customers, uow: uow}
}

func (s *workOrderService) CreateDraft(ctx context.Context, in WorkOrderDraftInput) (*domain.WorkOrder, error) {
	cust, err := s.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, fmt.Errorf("customer %s not found", in.CustomerID)
	}

	now := time.Now().UTC()
	wo := &domain.WorkOrder{
		ID:             uuid.New().String(),
		Customer:       cust.Ref(),
		ServiceAddress: in.ServiceAddress,
		BillingAddress: in.BillingAddress,
		Status:         domain.WorkOrderDraft,
		TaxRate:        in.TaxRate,
		Priority:       in.Priority,
		AssignedTo:     in.AssignedTo,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if wo.ServiceAddress == "" {
		wo.ServiceAddress = cust.ServiceAddress
	}
	if wo.BillingAddress == "" {
		wo.BillingAddress = cust.BillingAddress
	}
	if wo.Priority == "" {
		wo.Priority = domain.PriorityNormal
	}
	if err := wo.SetLineItems(in.LineItems, now); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSeq := repository.NewSQLiteSequenceRepo(tx)
		txWO := repository.NewSQLiteWorkOrderRepo(tx)

		num, err := txSeq.NextNumber(ctx, domain.PrefixWorkOrder)
		if err != nil {
			return err
		}
		wo.DocumentNumber = num
		return txWO.Create(ctx, wo)
	})
	if err != nil {
		return nil, err
	}
	return wo, nil
}

func (s *workOrderService) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return s.resolve(ctx, id)
}

func (s *workOrderService) GetByNumber(ctx context.Context, number string) (*domain.WorkOrder, error) {
	wo, err := s.workOrders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, fmt.Errorf("work order %s not found", number)
	}
	return wo, nil
}

func (s *workOrderService) List(ctx context.Context, customerID *string, status *domain.WorkOrderStatus) ([]*domain.WorkOrder, error) {
	return s.workOrders.List(ctx, customerID, status)
}

func (s *workOrderService) SetLineItems(ctx context.Context, id string, items []domain.LineItem) (*domain.WorkOrder, error) {
	return s.mutate(ctx, id, func(wo *domain.WorkOrder, now time.Time) error {
		if wo.IsTerminal() {
			return fmt.Errorf("%w: work order %s is %s, line items are frozen",
				domain.ErrInvalidTransition, wo.DocumentNumber, wo.Status)
		}
		return wo.SetLineItems(items, now)
	})
}

func (s *workOrderService) Assign(ctx context.Context, id string, names []string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, id, func(wo *domain.WorkOrder, now time.Time) error {
		if wo.IsTerminal() {
			return fmt.Errorf("%w: work order %s is %s, assignment is frozen",
				domain.ErrInvalidTransition, wo.DocumentNumber, wo.Status)
		}
		wo.AssignedTo = names
		wo.UpdatedAt = now
		return nil
	})
}

func (s *workOrderService) Schedule(ctx context.Context, id string, date time.Time, timeOfDay string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, id, func(wo *domain.WorkOrder, now time.Time) error {
		return wo.Schedule(date, timeOfDay, now)
	})
}

func (s *workOrderService) Start(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, id, (*domain.WorkOrder).Start)
}

func (s *workOrderService) Hold(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, id, (*domain.WorkOrder).Hold)
}

func (s *workOrderService) Resume(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, id, (*domain.WorkOrder).Resume)
}

func (s *workOrderService) Complete(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, id, (*domain.WorkOrder).Complete)
}

func (s *workOrderService) Cancel(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, id, (*domain.WorkOrder).Cancel)
}

func (s *workOrderService) LogTime(ctx context.Context, id string, entry domain.TimeEntry) (*domain.WorkOrder, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	return s.mutate(ctx, id, func(wo *domain.WorkOrder, now time.Time) error {
		entry.WorkOrderID = wo.ID
		return wo.LogTime(entry, now)
	})
}

func (s *workOrderService) Delete(ctx context.Context, id string) error {
	wo, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}
	return s.workOrders.SoftDelete(ctx, wo.ID)
}

func (s *workOrderService) resolve(ctx context.Context, id string) (*domain.WorkOrder, error) {
	wo, err := s.workOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, fmt.Errorf("work order %s not found", id)
	}
	return wo, nil
}

func (s *workOrderService) mutate(ctx context.Context, id string, fn func(*domain.WorkOrder, time.Time) error) (*domain.WorkOrder, error) {
	wo, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(wo, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.workOrders.Update(ctx, wo); err != nil {
		return nil, err
	}
	return wo, nil
}
