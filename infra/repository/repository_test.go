package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mhgaber/branchbank/pkg/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func accountRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "account_number", "customer_id", "account_type",
		"branch_id", "balance", "status", "created_at",
	})
}

func TestAccountRepository_GetForUpdate_LocksRow(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1(.+)FOR UPDATE NOWAIT`).
		WillReturnRows(accountRows().
			AddRow(7, "ACC-0007", 3, "Savings", 1, "500.00", "Active", time.Now()))

	account, err := repo.GetForUpdate(context.Background(), 7)
	require.NoError(err)
	assert.Equal(t, int64(7), account.ID)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("500.00")))
	assert.Equal(t, domain.AccountActive, account.Status)
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_GetForUpdate_Busy(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.LockNotAvailable})

	_, err := repo.GetForUpdate(context.Background(), 7)
	require.ErrorIs(t, err, domain.ErrAccountBusy)
}

func TestAccountRepository_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).
		WillReturnRows(accountRows())

	_, err := repo.Get(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountRepository_UpdateBalance(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET "balance"=\$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateBalance(context.Background(), 7, decimal.RequireFromString("350.00"))
	require.NoError(err)
	require.NoError(mock.ExpectationsWereMet())
}

func TestTransactionRepository_Create_AssignsID(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := transactionRepository{db: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "transactions" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(101)))
	mock.ExpectCommit()

	from, to := int64(1), int64(2)
	transaction := &domain.Transaction{
		FromAccountID: &from,
		ToAccountID:   &to,
		Amount:        decimal.RequireFromString("150.00"),
		Type:          domain.TransactionTransfer,
		Status:        domain.TransactionCompleted,
		InitiatedBy:   "teller-7",
		Timestamp:     time.Now().UTC(),
		Reference:     "TRF-test",
	}
	err := repo.Create(context.Background(), transaction)
	require.NoError(err)
	assert.Equal(t, int64(101), transaction.ID)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnError(errors.New("create error"))
	mock.ExpectRollback()

	err = repo.Create(context.Background(), transaction)
	require.Error(err)
}

func TestTransactionRepository_ListCompletedByAccount_Ordering(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := transactionRepository{db: db}

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "from_account_id", "to_account_id", "amount",
		"transaction_type", "status", "initiated_by", "timestamp", "reference",
	}).
		AddRow(1, 10, 7, "100.00", "Transfer", "Completed", "teller-1", now.Add(-time.Hour), "TRF-a").
		AddRow(2, 7, 10, "30.00", "Transfer", "Completed", "teller-1", now, "TRF-b")

	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE status = \$1 AND \(from_account_id = \$2 OR to_account_id = \$3\) ORDER BY timestamp ASC, id ASC`).
		WillReturnRows(rows)

	history, err := repo.ListCompletedByAccount(context.Background(), 7)
	require.NoError(err)
	require.Len(history, 2)
	assert.True(t, history[0].Delta(7).Equal(decimal.RequireFromString("100.00")))
	assert.True(t, history[1].Delta(7).Equal(decimal.RequireFromString("-30.00")))
	require.NoError(mock.ExpectationsWereMet())
}

func TestAuditLogRepository_Create(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := auditLogRepository{db: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectCommit()

	entry := &domain.AuditLog{
		EntityName:  "Transaction",
		EntityID:    "101",
		Action:      "TransferFunds",
		PerformedBy: "teller-7",
		Timestamp:   time.Now().UTC(),
		Details:     "Transfer of 150.00 from account 1 to account 2",
	}
	err := repo.Create(context.Background(), entry)
	require.NoError(err)
	assert.Equal(t, int64(9), entry.ID)
}

func TestCustomerRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := customerRepository{db: db}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "customers" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
