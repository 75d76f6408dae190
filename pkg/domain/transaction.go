package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// TransactionTransfer is the type of a funds movement between two accounts.
	TransactionTransfer = "Transfer"

	// TransactionCompleted marks a committed transaction. Failed transfers
	// are never persisted, so the ledger only ever holds completed rows.
	TransactionCompleted = "Completed"
)

// Transaction is one immutable ledger entry. The stored amount is always
// positive; the sign is derived per viewing account at read time. IDs are
// assigned monotonically at commit, which makes them a stable tie-breaker
// when timestamps collide.
type Transaction struct {
	ID            int64
	FromAccountID *int64
	ToAccountID   *int64
	Amount        decimal.Decimal
	Type          string
	Status        string
	InitiatedBy   string
	Timestamp     time.Time
	Reference     string
}

// Delta returns the signed effect of the transaction on the given account:
// positive when the account is the receiving party, negative otherwise.
func (t *Transaction) Delta(accountID int64) decimal.Decimal {
	if t.ToAccountID != nil && *t.ToAccountID == accountID {
		return t.Amount
	}
	return t.Amount.Neg()
}

// StatementLine is one entry of a reconstructed account statement. Amount
// carries the sign relative to the statement's account and RunningBalance is
// the balance immediately after applying this transaction in ascending
// time order.
type StatementLine struct {
	TransactionID  int64           `json:"transaction_id"`
	Timestamp      time.Time       `json:"timestamp"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Reference      string          `json:"reference"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}
