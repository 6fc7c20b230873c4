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

type estimateService struct {
	estimates repository.EstimateRepo
	customers repository.CustomerRepo
	uow       db.UnitOfWork
}

func NewEstimateService(estimates repository.EstimateRepo, customers repository.CustomerRepo, uow db.UnitOfWork) EstimateService {
	return &estimateService{estimates: estimates, customers: customers, uow: uow}
}

func (s *estimateService) CreateDraft(ctx context.Context, in EstimateDraftInput) (*domain.Estimate, error) {
	cust, err := s.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, fmt.Errorf("customer %s not found", in.CustomerID)
	}

	now := time.Now().UTC()
	est := &domain.Estimate{
		ID:             uuid.New().String(),
		Customer:       cust.Ref(),
		ServiceAddress: in.ServiceAddress,
		BillingAddress: in.BillingAddress,
		Status:         domain.EstimateDraft,
		TaxRate:        in.TaxRate,
		ValidUntil:     in.ValidUntil,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if est.ServiceAddress == "" {
		est.ServiceAddress = cust.ServiceAddress
	}
	if est.BillingAddress == "" {
		est.BillingAddress = cust.BillingAddress
	}
	if err := est.SetLineItems(in.LineItems, now); err != nil {
		return nil, err
	}

	// Number allocation and the insert share a transaction so a failed
	// insert never burns a number.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSeq := repository.NewSQLiteSequenceRepo(tx)
		txEst := repository.NewSQLiteEstimateRepo(tx)

		num, err := txSeq.NextNumber(ctx, domain.PrefixEstimate)
		if err != nil {
			return err
		}
		est.DocumentNumber = num
		return txEst.Create(ctx, est)
	})
	if err != nil {
		return nil, err
	}
	return est, nil
}

func (s *estimateService) GetByID(ctx context.Context, id string) (*domain.Estimate, error) {
	return s.resolve(ctx, id)
}

func (s *estimateService) GetByNumber(ctx context.Context, number string) (*domain.Estimate, error) {
	est, err := s.estimates.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if est == nil {
		return nil, fmt.Errorf("estimate %s not found", number)
	}
	return est, nil
}

func (s *estimateService) List(ctx context.Context, customerID *string, status *domain.EstimateStatus) ([]*domain.Estimate, error) {
	if status == nil || *status != domain.EstimateExpired {
		return s.estimates.List(ctx, customerID, status)
	}

	// Expired is derived from ValidUntil on read, never stored, so the
	// filter has to run against DisplayStatus after the query.
	estimates, err := s.estimates.List(ctx, customerID, nil)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	matched := make([]*domain.Estimate, 0, len(estimates))
	for _, est := range estimates {
		if est.DisplayStatus(now) == domain.EstimateExpired {
			matched = append(matched, est)
		}
	}
	return matched, nil
}

func (s *estimateService) SetLineItems(ctx context.Context, id string, items []domain.LineItem) (*domain.Estimate, error) {
	return s.mutate(ctx, id, func(est *domain.Estimate, now time.Time) error {
		if est.Status != domain.EstimateDraft {
			return fmt.Errorf("%w: estimate %s is %s, line items can only change on a draft",
				domain.ErrInvalidTransition, est.DocumentNumber, est.Status)
		}
		return est.SetLineItems(items, now)
	})
}

func (s *estimateService) Send(ctx context.Context, id string) (*domain.Estimate, error) {
	return s.mutate(ctx, id, (*domain.Estimate).Send)
}

func (s *estimateService) MarkViewed(ctx context.Context, id string) (*domain.Estimate, error) {
	return s.mutate(ctx, id, (*domain.Estimate).MarkViewed)
}

func (s *estimateService) Accept(ctx context.Context, id string) (*domain.Estimate, error) {
	return s.mutate(ctx, id, (*domain.Estimate).Accept)
}

func (s *estimateService) Decline(ctx context.Context, id string) (*domain.Estimate, error) {
	return s.mutate(ctx, id, (*domain.Estimate).Decline)
}

func (s *estimateService) Delete(ctx context.Context, id string) error {
	est, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}
	return s.estimates.SoftDelete(ctx, est.ID)
}

func (s *estimateService) resolve(ctx context.Context, id string) (*domain.Estimate, error) {
	est, err := s.estimates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if est == nil {
		return nil, fmt.Errorf("estimate %s not found", id)
	}
	return est, nil
}

func (s *estimateService) mutate(ctx context.Context, id string, fn func(*domain.Estimate, time.Time) error) (*domain.Estimate, error) {
	est, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(est, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.estimates.Update(ctx, est); err != nil {
		return nil, err
	}
	return est, nil
}
