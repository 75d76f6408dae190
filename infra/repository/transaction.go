package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mhgaber/branchbank/pkg/domain"
	repo "github.com/mhgaber/branchbank/pkg/repository"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates the ledger store over the given session.
func NewTransactionRepository(db *gorm.DB) repo.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends one immutable ledger row and writes the assigned ID back to
// the domain transaction.
func (r *transactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	m := Transaction{
		FromAccountID:   transaction.FromAccountID,
		ToAccountID:     transaction.ToAccountID,
		Amount:          transaction.Amount,
		TransactionType: transaction.Type,
		Status:          transaction.Status,
		InitiatedBy:     transaction.InitiatedBy,
		Timestamp:       transaction.Timestamp,
		Reference:       transaction.Reference,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	transaction.ID = m.ID
	return nil
}

// ListCompletedByAccount returns the account's completed history ordered for
// statement replay: timestamp ascending, transaction ID as tie-breaker.
func (r *transactionRepository) ListCompletedByAccount(ctx context.Context, accountID int64) ([]*domain.Transaction, error) {
	var models []Transaction
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.TransactionCompleted).
		Where("from_account_id = ? OR to_account_id = ?", accountID, accountID).
		Order("timestamp ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Transaction, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out, nil
}
