// Package memory provides an in-memory repository.UnitOfWork used by service
// and HTTP tests. Do works copy-on-write: each unit of work runs against a
// deep copy of the store state which replaces the live state only when the
// function succeeds, so rollback behaves like the real database.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mhgaber/branchbank/pkg/domain"
	"github.com/mhgaber/branchbank/pkg/repository"
)

// Store is an in-memory UnitOfWork. The zero value is not usable; call New.
type Store struct {
	mu    sync.Mutex
	state *state

	// Fault injection for rollback and contention tests.
	FailTransactionCreate bool
	FailAuditCreate       bool
	BusyAccounts          map[int64]bool
}

type state struct {
	accounts     map[int64]*domain.Account
	transactions []*domain.Transaction
	audits       []*domain.AuditLog
	customers    map[int64]*domain.Customer
	employees    map[int64]*domain.Employee

	nextAccountID     int64
	nextTransactionID int64
	nextAuditID       int64
	nextCustomerID    int64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		state: &state{
			accounts:          make(map[int64]*domain.Account),
			customers:         make(map[int64]*domain.Customer),
			employees:         make(map[int64]*domain.Employee),
			nextAccountID:     1,
			nextTransactionID: 1,
			nextAuditID:       1,
			nextCustomerID:    1,
		},
		BusyAccounts: make(map[int64]bool),
	}
}

// Do runs fn against a copy of the state under the store mutex; mutations
// become visible only if fn returns nil. Units of work are fully serialized,
// which also makes concurrent transfer tests deterministic.
func (s *Store) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	tx := &txStore{store: s, state: working}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = working
	return nil
}

func (s *Store) AccountRepository() (repository.AccountRepository, error) {
	return nil, errUseDo
}

func (s *Store) TransactionRepository() (repository.TransactionRepository, error) {
	return nil, errUseDo
}

func (s *Store) AuditLogRepository() (repository.AuditLogRepository, error) {
	return nil, errUseDo
}

func (s *Store) CustomerRepository() (repository.CustomerRepository, error) {
	return nil, errUseDo
}

func (s *Store) EmployeeRepository() (repository.EmployeeRepository, error) {
	return nil, errUseDo
}

// SeedAccount inserts an account, assigning an ID when none is set, and
// returns its ID.
func (s *Store) SeedAccount(account domain.Account) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account.ID == 0 {
		account.ID = s.state.nextAccountID
	}
	if account.ID >= s.state.nextAccountID {
		s.state.nextAccountID = account.ID + 1
	}
	s.state.accounts[account.ID] = &account
	return account.ID
}

// SeedCustomer inserts a customer and returns its ID.
func (s *Store) SeedCustomer(customer domain.Customer) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if customer.ID == 0 {
		customer.ID = s.state.nextCustomerID
	}
	if customer.ID >= s.state.nextCustomerID {
		s.state.nextCustomerID = customer.ID + 1
	}
	s.state.customers[customer.ID] = &customer
	return customer.ID
}

// SeedEmployee inserts an employee.
func (s *Store) SeedEmployee(employee domain.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.employees[employee.ID] = &employee
}

// Account returns a copy of the stored account for assertions.
func (s *Store) Account(id int64) (domain.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.state.accounts[id]
	if !ok {
		return domain.Account{}, false
	}
	return *account, true
}

// Transactions returns a copy of the ledger in insertion order.
func (s *Store) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, 0, len(s.state.transactions))
	for _, t := range s.state.transactions {
		out = append(out, *t)
	}
	return out
}

// AuditLogs returns a copy of the audit trail in insertion order.
func (s *Store) AuditLogs() []domain.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditLog, 0, len(s.state.audits))
	for _, a := range s.state.audits {
		out = append(out, *a)
	}
	return out
}

// Customer returns a copy of the stored customer for assertions.
func (s *Store) Customer(id int64) (domain.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.state.customers[id]
	if !ok {
		return domain.Customer{}, false
	}
	return *customer, true
}

func (st *state) clone() *state {
	next := &state{
		accounts:          make(map[int64]*domain.Account, len(st.accounts)),
		transactions:      make([]*domain.Transaction, len(st.transactions)),
		audits:            make([]*domain.AuditLog, len(st.audits)),
		customers:         make(map[int64]*domain.Customer, len(st.customers)),
		employees:         make(map[int64]*domain.Employee, len(st.employees)),
		nextAccountID:     st.nextAccountID,
		nextTransactionID: st.nextTransactionID,
		nextAuditID:       st.nextAuditID,
		nextCustomerID:    st.nextCustomerID,
	}
	for id, a := range st.accounts {
		copied := *a
		next.accounts[id] = &copied
	}
	for i, t := range st.transactions {
		copied := *t
		next.transactions[i] = &copied
	}
	for i, a := range st.audits {
		copied := *a
		next.audits[i] = &copied
	}
	for id, c := range st.customers {
		copied := *c
		next.customers[id] = &copied
	}
	for id, e := range st.employees {
		copied := *e
		next.employees[id] = &copied
	}
	return next
}

var (
	errUseDo = errors.New("repositories are only available inside Do")

	// ErrInjectedTransaction and ErrInjectedAudit are returned by the fault
	// injection switches, for asserting rollback behavior.
	ErrInjectedTransaction = errors.New("injected transaction failure")
	ErrInjectedAudit       = errors.New("injected audit failure")
)

// txStore is the UnitOfWork handed to Do callbacks, bound to the working
// state copy.
type txStore struct {
	store *Store
	state *state
}

func (t *txStore) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	// Already inside a unit of work; join it.
	return fn(t)
}

func (t *txStore) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepo{t}, nil
}

func (t *txStore) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepo{t}, nil
}

func (t *txStore) AuditLogRepository() (repository.AuditLogRepository, error) {
	return &auditRepo{t}, nil
}

func (t *txStore) CustomerRepository() (repository.CustomerRepository, error) {
	return &customerRepo{t}, nil
}

func (t *txStore) EmployeeRepository() (repository.EmployeeRepository, error) {
	return &employeeRepo{t}, nil
}

type accountRepo struct{ tx *txStore }

func (r *accountRepo) Get(_ context.Context, id int64) (*domain.Account, error) {
	account, ok := r.tx.state.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *accountRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Account, error) {
	if r.tx.store.BusyAccounts[id] {
		return nil, domain.ErrAccountBusy
	}
	return r.Get(ctx, id)
}

func (r *accountRepo) UpdateBalance(_ context.Context, id int64, balance decimal.Decimal) error {
	account, ok := r.tx.state.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.Balance = balance
	return nil
}

func (r *accountRepo) Create(_ context.Context, account *domain.Account) error {
	if account.ID == 0 {
		account.ID = r.tx.state.nextAccountID
	}
	if account.ID >= r.tx.state.nextAccountID {
		r.tx.state.nextAccountID = account.ID + 1
	}
	copied := *account
	r.tx.state.accounts[account.ID] = &copied
	return nil
}

func (r *accountRepo) ListByCustomer(_ context.Context, customerID int64) ([]*domain.Account, error) {
	var out []*domain.Account
	for _, account := range r.tx.state.accounts {
		if account.CustomerID == customerID {
			copied := *account
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *accountRepo) CountByCustomer(_ context.Context, customerID int64) (int64, error) {
	var n int64
	for _, account := range r.tx.state.accounts {
		if account.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *accountRepo) TotalAssets(_ context.Context, customerID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, account := range r.tx.state.accounts {
		if account.CustomerID == customerID && account.Status == domain.AccountActive {
			total = total.Add(account.Balance)
		}
	}
	return total, nil
}

type transactionRepo struct{ tx *txStore }

func (r *transactionRepo) Create(_ context.Context, transaction *domain.Transaction) error {
	if r.tx.store.FailTransactionCreate {
		return ErrInjectedTransaction
	}
	transaction.ID = r.tx.state.nextTransactionID
	r.tx.state.nextTransactionID++
	copied := *transaction
	r.tx.state.transactions = append(r.tx.state.transactions, &copied)
	return nil
}

func (r *transactionRepo) ListCompletedByAccount(_ context.Context, accountID int64) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, transaction := range r.tx.state.transactions {
		if transaction.Status != domain.TransactionCompleted {
			continue
		}
		from := transaction.FromAccountID != nil && *transaction.FromAccountID == accountID
		to := transaction.ToAccountID != nil && *transaction.ToAccountID == accountID
		if from || to {
			copied := *transaction
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

type auditRepo struct{ tx *txStore }

func (r *auditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	if r.tx.store.FailAuditCreate {
		return ErrInjectedAudit
	}
	entry.ID = r.tx.state.nextAuditID
	r.tx.state.nextAuditID++
	copied := *entry
	r.tx.state.audits = append(r.tx.state.audits, &copied)
	return nil
}

func (r *auditRepo) List(_ context.Context) ([]*domain.AuditLog, error) {
	out := make([]*domain.AuditLog, 0, len(r.tx.state.audits))
	for i := len(r.tx.state.audits) - 1; i >= 0; i-- {
		copied := *r.tx.state.audits[i]
		out = append(out, &copied)
	}
	return out, nil
}

type customerRepo struct{ tx *txStore }

func (r *customerRepo) Create(_ context.Context, customer *domain.Customer) error {
	customer.ID = r.tx.state.nextCustomerID
	r.tx.state.nextCustomerID++
	copied := *customer
	r.tx.state.customers[customer.ID] = &copied
	return nil
}

func (r *customerRepo) Get(_ context.Context, id int64) (*domain.Customer, error) {
	customer, ok := r.tx.state.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	copied := *customer
	return &copied, nil
}

func (r *customerRepo) Update(_ context.Context, customer *domain.Customer) error {
	if _, ok := r.tx.state.customers[customer.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	copied := *customer
	r.tx.state.customers[customer.ID] = &copied
	return nil
}

func (r *customerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tx.state.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.tx.state.customers, id)
	return nil
}

func (r *customerRepo) ListSummaries(ctx context.Context) ([]*domain.CustomerSummary, error) {
	return r.summaries(ctx, "")
}

func (r *customerRepo) SearchByName(ctx context.Context, fullName string) ([]*domain.CustomerSummary, error) {
	return r.summaries(ctx, fullName)
}

func (r *customerRepo) summaries(_ context.Context, nameFilter string) ([]*domain.CustomerSummary, error) {
	var out []*domain.CustomerSummary
	for _, customer := range r.tx.state.customers {
		if nameFilter != "" && !strings.Contains(customer.FullName, nameFilter) {
			continue
		}
		summary := &domain.CustomerSummary{
			CustomerID:   customer.ID,
			FullName:     customer.FullName,
			Email:        customer.Email,
			Phone:        customer.Phone,
			Address:      customer.Address,
			TotalBalance: decimal.Zero,
		}
		for _, account := range r.tx.state.accounts {
			if account.CustomerID == customer.ID {
				summary.TotalAccounts++
				summary.TotalBalance = summary.TotalBalance.Add(account.Balance)
			}
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out, nil
}

type employeeRepo struct{ tx *txStore }

func (r *employeeRepo) Get(_ context.Context, id int64) (*domain.Employee, error) {
	employee, ok := r.tx.state.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	copied := *employee
	return &copied, nil
}

func (r *employeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	copied := *employee
	r.tx.state.employees[employee.ID] = &copied
	return nil
}
