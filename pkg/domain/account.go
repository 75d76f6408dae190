package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account. Only Active accounts
// may take part in transfers.
type AccountStatus string

const (
	AccountActive AccountStatus = "Active"
	AccountFrozen AccountStatus = "Frozen"
	AccountClosed AccountStatus = "Closed"
)

// Account is a customer account at a branch.
//
// Invariants:
//   - Balance is never negative while the account is Active.
//   - Balance equals the sum of signed deltas of all Completed transactions
//     touching the account; the ledger service is the only writer of
//     transfer-induced balance changes.
type Account struct {
	ID            int64
	AccountNumber string
	CustomerID    int64
	AccountType   string
	BranchID      int64
	Balance       decimal.Decimal
	Status        AccountStatus
	CreatedAt     time.Time
}

// IsActive reports whether the account can participate in transfers.
func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}
