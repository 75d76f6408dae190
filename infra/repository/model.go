// Package repository holds the gorm-backed implementations of the
// persistence contracts in pkg/repository.
package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mhgaber/branchbank/pkg/domain"
)

// Account is the accounts table row.
type Account struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	AccountNumber string          `gorm:"size:20"`
	CustomerID    int64           `gorm:"index"`
	AccountType   string          `gorm:"size:20"`
	BranchID      int64           `gorm:"index"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status        string          `gorm:"size:20;not null;default:'Active'"`
	CreatedAt     time.Time
}

func (Account) TableName() string { return "accounts" }

func (m *Account) toDomain() *domain.Account {
	return &domain.Account{
		ID:            m.ID,
		AccountNumber: m.AccountNumber,
		CustomerID:    m.CustomerID,
		AccountType:   m.AccountType,
		BranchID:      m.BranchID,
		Balance:       m.Balance,
		Status:        domain.AccountStatus(m.Status),
		CreatedAt:     m.CreatedAt,
	}
}

// Transaction is the append-only transactions table row. Rows are never
// updated or deleted once written.
type Transaction struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	FromAccountID   *int64          `gorm:"index"`
	ToAccountID     *int64          `gorm:"index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TransactionType string          `gorm:"size:20;not null"`
	Status          string          `gorm:"size:20"`
	InitiatedBy     string          `gorm:"size:100"`
	Timestamp       time.Time       `gorm:"index"`
	Reference       string
}

func (Transaction) TableName() string { return "transactions" }

func (m *Transaction) toDomain() *domain.Transaction {
	return &domain.Transaction{
		ID:            m.ID,
		FromAccountID: m.FromAccountID,
		ToAccountID:   m.ToAccountID,
		Amount:        m.Amount,
		Type:          m.TransactionType,
		Status:        m.Status,
		InitiatedBy:   m.InitiatedBy,
		Timestamp:     m.Timestamp,
		Reference:     m.Reference,
	}
}

// AuditLog is the audit_logs table row.
type AuditLog struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	EntityName  string `gorm:"size:100;not null"`
	EntityID    string `gorm:"size:100;not null"`
	Action      string `gorm:"size:50;not null"`
	PerformedBy string `gorm:"size:100;not null"`
	Timestamp   time.Time
	Details     string
}

func (AuditLog) TableName() string { return "audit_logs" }

func (m *AuditLog) toDomain() *domain.AuditLog {
	return &domain.AuditLog{
		ID:          m.ID,
		EntityName:  m.EntityName,
		EntityID:    m.EntityID,
		Action:      m.Action,
		PerformedBy: m.PerformedBy,
		Timestamp:   m.Timestamp,
		Details:     m.Details,
	}
}

// Customer is the customers table row.
type Customer struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	FullName    string `gorm:"size:100;not null"`
	DateOfBirth time.Time
	Email       string `gorm:"size:100;not null"`
	Phone       string `gorm:"size:20"`
	Address     string `gorm:"size:255"`
	CreatedAt   time.Time
}

func (Customer) TableName() string { return "customers" }

func (m *Customer) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:          m.ID,
		FullName:    m.FullName,
		DateOfBirth: m.DateOfBirth,
		Email:       m.Email,
		Phone:       m.Phone,
		Address:     m.Address,
		CreatedAt:   m.CreatedAt,
	}
}

// Employee is the employees table row.
type Employee struct {
	ID           int64  `gorm:"primaryKey"`
	FullName     string `gorm:"size:100;not null"`
	Role         string `gorm:"size:50;not null"`
	BranchID     int64
	PasswordHash string `gorm:"size:100;not null"`
}

func (Employee) TableName() string { return "employees" }

func (m *Employee) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:           m.ID,
		FullName:     m.FullName,
		Role:         m.Role,
		BranchID:     m.BranchID,
		PasswordHash: m.PasswordHash,
	}
}
