// Package customer implements the back-office customer management
// operations: CRUD with an audit trail, dashboard summaries and per-customer
// account queries.
package customer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mhgaber/branchbank/pkg/domain"
	"github.com/mhgaber/branchbank/pkg/repository"
)

// Service manages customer records.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// New creates a customer service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new customer, stamping CreatedAt, and returns its ID.
func (s *Service) Create(ctx context.Context, customer *domain.Customer) (int64, error) {
	customer.CreatedAt = s.now()
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		customers, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		return customers.Create(ctx, customer)
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("customer created", "customer_id", customer.ID)
	return customer.ID, nil
}

// Get returns one customer by ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	var customer *domain.Customer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		customers, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		customer, err = customers.Get(ctx, id)
		return err
	})
	return customer, err
}

// Update replaces the customer's editable fields and records an audit entry
// in the same unit of work.
func (s *Service) Update(ctx context.Context, customer *domain.Customer, performedBy string) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		customers, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		if err := customers.Update(ctx, customer); err != nil {
			return err
		}
		return s.audit(ctx, uow, customer.ID, "UpdateCustomer", performedBy, "Customer record updated")
	})
	if err != nil {
		return err
	}
	s.logger.Info("customer updated", "customer_id", customer.ID, "performed_by", performedBy)
	return nil
}

// Delete removes a customer that owns no accounts and records an audit entry
// in the same unit of work.
func (s *Service) Delete(ctx context.Context, id int64, performedBy string) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		owned, err := accounts.CountByCustomer(ctx, id)
		if err != nil {
			return err
		}
		if owned > 0 {
			return fmt.Errorf("%w: %d accounts", domain.ErrCustomerHasAccounts, owned)
		}

		customers, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		if err := customers.Delete(ctx, id); err != nil {
			return err
		}
		return s.audit(ctx, uow, id, "DeleteCustomer", performedBy, "Customer record deleted")
	})
	if err != nil {
		return err
	}
	s.logger.Info("customer deleted", "customer_id", id, "performed_by", performedBy)
	return nil
}

// Summaries returns every customer with account count and total balance.
func (s *Service) Summaries(ctx context.Context) ([]*domain.CustomerSummary, error) {
	var summaries []*domain.CustomerSummary
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		customers, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		summaries, err = customers.ListSummaries(ctx)
		return err
	})
	return summaries, err
}

// Search returns summaries of customers whose full name contains the query.
func (s *Service) Search(ctx context.Context, fullName string) ([]*domain.CustomerSummary, error) {
	var summaries []*domain.CustomerSummary
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		customers, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		summaries, err = customers.SearchByName(ctx, fullName)
		return err
	})
	return summaries, err
}

// Accounts returns the customer's accounts ordered by ID.
func (s *Service) Accounts(ctx context.Context, customerID int64) ([]*domain.Account, error) {
	var accounts []*domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accounts, err = repo.ListByCustomer(ctx, customerID)
		return err
	})
	return accounts, err
}

// TotalAssets returns the sum of the customer's Active account balances.
func (s *Service) TotalAssets(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		total, err = repo.TotalAssets(ctx, customerID)
		return err
	})
	return total, err
}

func (s *Service) audit(
	ctx context.Context,
	uow repository.UnitOfWork,
	customerID int64,
	action, performedBy, details string,
) error {
	audits, err := uow.AuditLogRepository()
	if err != nil {
		return err
	}
	return audits.Create(ctx, &domain.AuditLog{
		EntityName:  "Customer",
		EntityID:    strconv.FormatInt(customerID, 10),
		Action:      action,
		PerformedBy: performedBy,
		Timestamp:   s.now(),
		Details:     details,
	})
}
