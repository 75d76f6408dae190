package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mhgaber/branchbank/pkg/domain"
	repo "github.com/mhgaber/branchbank/pkg/repository"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates the accounts store over the given session.
func NewAccountRepository(db *gorm.DB) repo.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Get(ctx context.Context, id int64) (*domain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapAccountError(err)
	}
	return m.toDomain(), nil
}

// GetForUpdate locks the account row for the rest of the enclosing
// transaction. NOWAIT makes contention fail fast instead of queueing, so a
// blocked transfer surfaces as domain.ErrAccountBusy and the caller retries.
func (r *accountRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "NOWAIT"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, mapAccountError(err)
	}
	return m.toDomain(), nil
}

func (r *accountRepository) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Update("balance", balance)
	if result.Error != nil {
		return mapAccountError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	m := Account{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		CustomerID:    account.CustomerID,
		AccountType:   account.AccountType,
		BranchID:      account.BranchID,
		Balance:       account.Balance,
		Status:        string(account.Status),
		CreatedAt:     account.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	account.ID = m.ID
	return nil
}

func (r *accountRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Account, error) {
	var models []Account
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Account, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out, nil
}

func (r *accountRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("customer_id = ?", customerID).
		Count(&n).Error
	return n, err
}

func (r *accountRepository) TotalAssets(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("customer_id = ? AND status = ?", customerID, string(domain.AccountActive)).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// mapAccountError translates storage errors into domain errors. Lock
// contention (NOWAIT) and deadlock victims both map to ErrAccountBusy, which
// callers treat as retryable.
func mapAccountError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrAccountNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.LockNotAvailable, pgerrcode.DeadlockDetected:
			return domain.ErrAccountBusy
		}
	}
	return err
}
