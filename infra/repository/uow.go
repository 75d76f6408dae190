package repository

import (
	"context"

	"gorm.io/gorm"

	repo "github.com/mhgaber/branchbank/pkg/repository"
)

// UoW is the gorm-backed unit of work. Every repository handed out inside Do
// shares the same database transaction, so a transfer's balance updates,
// ledger row and audit row commit or roll back together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a unit of work over the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a database transaction. A non-nil error from fn rolls
// the transaction back; otherwise it commits. Nested calls join the
// transaction already in progress.
func (u *UoW) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) AccountRepository() (repo.AccountRepository, error) {
	return NewAccountRepository(u.session()), nil
}

func (u *UoW) TransactionRepository() (repo.TransactionRepository, error) {
	return NewTransactionRepository(u.session()), nil
}

func (u *UoW) AuditLogRepository() (repo.AuditLogRepository, error) {
	return NewAuditLogRepository(u.session()), nil
}

func (u *UoW) CustomerRepository() (repo.CustomerRepository, error) {
	return NewCustomerRepository(u.session()), nil
}

func (u *UoW) EmployeeRepository() (repo.EmployeeRepository, error) {
	return NewEmployeeRepository(u.session()), nil
}
