package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a bank customer record.
type Customer struct {
	ID          int64
	FullName    string
	DateOfBirth time.Time
	Email       string
	Phone       string
	Address     string
	CreatedAt   time.Time
}

// CustomerSummary is the dashboard view of a customer with account totals.
type CustomerSummary struct {
	CustomerID    int64           `json:"customer_id"`
	FullName      string          `json:"full_name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	TotalAccounts int64           `json:"total_accounts"`
	TotalBalance  decimal.Decimal `json:"total_balance"`
}
