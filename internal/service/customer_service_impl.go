package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobledger/jobledger/internal/domain"
	"github.com/jobledger/jobledger/internal/repository"
)

type customerService struct {
	customers repository.CustomerRepo
}

func NewCustomerService(customers repository.CustomerRepo) CustomerService {
	return &customerService{customers: customers}
}

func (s *customerService) Create(ctx context.Context, c *domain.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.customers.Create(ctx, c)
}

func (s *customerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("customer %s not found", id)
	}
	return c, nil
}

func (s *customerService) List(ctx context.Context, includeArchived bool) ([]*domain.Customer, error) {
	return s.customers.List(ctx, includeArchived)
}

func (s *customerService) Update(ctx context.Context, c *domain.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.customers.Update(ctx, c)
}

func (s *customerService) Archive(ctx context.Context, id string) error {
	return s.customers.Archive(ctx, id)
}

func (s *customerService) Unarchive(ctx context.Context, id string) error {
	return s.customers.Unarchive(ctx, id)
}

type teamService struct {
	team repository.TeamRepo
}

func NewTeamService(team repository.TeamRepo) TeamService {
	return &teamService{team: team}
}

func (s *teamService) Create(ctx context.Context, m *domain.TeamMember) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.team.Create(ctx, m)
}

func (s *teamService) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	m, err := s.team.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("team member %s not found", id)
	}
	return m, nil
}

func (s *teamService) List(ctx context.Context, includeArchived bool) ([]*domain.TeamMember, error) {
	return s.team.List(ctx, includeArchived)
}

func (s *teamService) Update(ctx context.Context, m *domain.TeamMember) error {
	if err := m.Validate(); err != nil {
		return err
	}
	m.UpdatedAt = time.Now().UTC()
	return s.team.Update(ctx, m)
}

func (s *teamService) Archive(ctx context.Context, id string) error {
	return s.team.Archive(ctx, id)
}
