// Package repository defines the persistence contracts the services depend
// on. Implementations live in infra; tests use the in-memory fixtures.
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mhgaber/branchbank/pkg/domain"
)

// AccountRepository reads and mutates account rows. GetForUpdate is the
// serialization point for transfers: it must hold a row lock for the rest of
// the enclosing unit of work, and fail fast with domain.ErrAccountBusy when
// the lock cannot be acquired.
type AccountRepository interface {
	Get(ctx context.Context, id int64) (*domain.Account, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Account, error)
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	Create(ctx context.Context, account *domain.Account) error
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Account, error)
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)
	TotalAssets(ctx context.Context, customerID int64) (decimal.Decimal, error)
}

// TransactionRepository appends to and reads the append-only ledger.
// Create assigns the monotonic transaction ID. ListCompletedByAccount
// returns Completed transactions where the account is either party, ordered
// by timestamp ascending with the ID as tie-breaker.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *domain.Transaction) error
	ListCompletedByAccount(ctx context.Context, accountID int64) ([]*domain.Transaction, error)
}

// AuditLogRepository appends and lists write-once audit entries.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	List(ctx context.Context) ([]*domain.AuditLog, error)
}

// CustomerRepository manages customer records.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id int64) error
	ListSummaries(ctx context.Context) ([]*domain.CustomerSummary, error)
	SearchByName(ctx context.Context, fullName string) ([]*domain.CustomerSummary, error)
}

// EmployeeRepository looks up branch employees for authentication.
type EmployeeRepository interface {
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	Create(ctx context.Context, employee *domain.Employee) error
}

// UnitOfWork runs a function inside one transaction boundary and hands out
// repositories bound to that transaction. If the function returns an error
// every mutation made through those repositories is rolled back; otherwise
// they commit together.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
	AuditLogRepository() (AuditLogRepository, error)
	CustomerRepository() (CustomerRepository, error)
	EmployeeRepository() (EmployeeRepository, error)
}
