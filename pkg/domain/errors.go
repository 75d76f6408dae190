package domain

import "errors"

// Ledger errors. Precondition failures are expected business outcomes and
// never leave partial state behind; ErrAccountBusy and any wrapped storage
// error mean the whole unit of work was rolled back.
var (
	// ErrAccountNotFound is returned when an account ID does not resolve.
	ErrAccountNotFound = errors.New("account not found")
	// ErrTransferSameAccount is returned when source and destination are the same account.
	ErrTransferSameAccount = errors.New("cannot transfer to the same account")
	// ErrInvalidAmount is returned when a transfer amount is zero or negative.
	ErrInvalidAmount = errors.New("transfer amount must be positive")
	// ErrInsufficientFunds is returned when the source balance cannot cover the transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAccountNotActive is returned when either account is Frozen or Closed.
	ErrAccountNotActive = errors.New("account not active")
	// ErrAccountBusy is returned when an account row lock cannot be acquired.
	// Nothing was mutated; callers may retry the whole transfer.
	ErrAccountBusy = errors.New("account is busy, retry the operation")
)

// Back-office errors.
var (
	// ErrCustomerNotFound is returned when a customer ID does not resolve.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrCustomerHasAccounts is returned when deleting a customer that still owns accounts.
	ErrCustomerHasAccounts = errors.New("customer still owns accounts")
	// ErrEmployeeNotFound is returned when an employee ID does not resolve.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
