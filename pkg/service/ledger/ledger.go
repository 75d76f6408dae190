// Package ledger implements the funds-transfer engine and the account
// statement reconstruction. It is the only writer of transfer-induced
// balance changes; everything it persists for one transfer commits or rolls
// back as a single unit of work.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mhgaber/branchbank/pkg/domain"
	"github.com/mhgaber/branchbank/pkg/repository"
)

// ActionTransferFunds is the audit action recorded for every transfer.
const ActionTransferFunds = "TransferFunds"

// Service executes transfers and reconstructs statements.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// New creates a ledger service on top of the given unit of work.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Transfer moves amount from one account to another on behalf of
// initiatedBy and returns the new transaction ID.
//
// Preconditions are checked in order before any mutation: both accounts
// exist, the accounts differ, the amount is positive, the source balance
// covers it, and both accounts are Active. On success the debit, the credit,
// one Completed transaction row and one audit row commit atomically; on any
// failure nothing is persisted.
//
// Both account rows are locked for the duration of the unit of work, always
// acquiring the lower account ID first so two opposite transfers between the
// same pair cannot deadlock. A lock that cannot be acquired surfaces as
// domain.ErrAccountBusy and the caller may retry.
func (s *Service) Transfer(
	ctx context.Context,
	fromAccountID, toAccountID int64,
	amount decimal.Decimal,
	initiatedBy string,
) (int64, error) {
	var transactionID int64

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}

		locked := make(map[int64]*domain.Account, 2)
		for _, id := range lockOrder(fromAccountID, toAccountID) {
			account, err := accounts.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			locked[id] = account
		}
		from, to := locked[fromAccountID], locked[toAccountID]

		if fromAccountID == toAccountID {
			return domain.ErrTransferSameAccount
		}
		if !amount.IsPositive() {
			return domain.ErrInvalidAmount
		}
		if from.Balance.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}
		if !from.IsActive() || !to.IsActive() {
			return domain.ErrAccountNotActive
		}

		if err := accounts.UpdateBalance(ctx, fromAccountID, from.Balance.Sub(amount)); err != nil {
			return fmt.Errorf("debit account %d: %w", fromAccountID, err)
		}
		if err := accounts.UpdateBalance(ctx, toAccountID, to.Balance.Add(amount)); err != nil {
			return fmt.Errorf("credit account %d: %w", toAccountID, err)
		}

		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		committedAt := s.now()
		transaction := &domain.Transaction{
			FromAccountID: &fromAccountID,
			ToAccountID:   &toAccountID,
			Amount:        amount,
			Type:          domain.TransactionTransfer,
			Status:        domain.TransactionCompleted,
			InitiatedBy:   initiatedBy,
			Timestamp:     committedAt,
			Reference:     newReference(),
		}
		if err := transactions.Create(ctx, transaction); err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}

		audits, err := uow.AuditLogRepository()
		if err != nil {
			return err
		}
		entry := &domain.AuditLog{
			EntityName:  "Transaction",
			EntityID:    strconv.FormatInt(transaction.ID, 10),
			Action:      ActionTransferFunds,
			PerformedBy: initiatedBy,
			Timestamp:   committedAt,
			Details: fmt.Sprintf(
				"Transfer of %s from account %d to account %d",
				amount, fromAccountID, toAccountID,
			),
		}
		if err := audits.Create(ctx, entry); err != nil {
			return fmt.Errorf("append audit log: %w", err)
		}

		transactionID = transaction.ID
		return nil
	})
	if err != nil {
		s.logger.Warn("transfer failed",
			"from", fromAccountID, "to", toAccountID,
			"amount", amount, "initiated_by", initiatedBy, "error", err)
		return 0, err
	}

	s.logger.Info("transfer completed",
		"transaction_id", transactionID,
		"from", fromAccountID, "to", toAccountID,
		"amount", amount, "initiated_by", initiatedBy)
	return transactionID, nil
}

// Statement replays the account's completed transactions, oldest first, into
// a running balance and returns the lines newest first. The running balance
// next to the newest line is the account's final observed balance over the
// history. An account with no transactions yields an empty statement.
func (s *Service) Statement(ctx context.Context, accountID int64) ([]domain.StatementLine, error) {
	var lines []domain.StatementLine

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := accounts.Get(ctx, accountID); err != nil {
			return err
		}

		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		history, err := transactions.ListCompletedByAccount(ctx, accountID)
		if err != nil {
			return fmt.Errorf("load history for account %d: %w", accountID, err)
		}

		lines = make([]domain.StatementLine, 0, len(history))
		running := decimal.Zero
		for _, transaction := range history {
			delta := transaction.Delta(accountID)
			running = running.Add(delta)
			lines = append(lines, domain.StatementLine{
				TransactionID:  transaction.ID,
				Timestamp:      transaction.Timestamp,
				Type:           transaction.Type,
				Amount:         delta,
				Reference:      transaction.Reference,
				RunningBalance: running,
			})
		}
		slices.Reverse(lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// lockOrder returns the distinct account IDs in ascending order, the order
// row locks must be acquired in.
func lockOrder(a, b int64) []int64 {
	if a == b {
		return []int64{a}
	}
	if b < a {
		a, b = b, a
	}
	return []int64{a, b}
}

func newReference() string {
	return "TRF-" + uuid.NewString()
}
