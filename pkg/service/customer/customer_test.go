package customer

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhgaber/branchbank/internal/fixtures/memory"
	"github.com/mhgaber/branchbank/pkg/domain"
)

func newTestService(store *memory.Store) *Service {
	return New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreate_AssignsIDAndCreatedAt(t *testing.T) {
	require := require.New(t)
	store := memory.New()
	svc := newTestService(store)

	customer := &domain.Customer{FullName: "Omar Farid", Email: "omar@example.com"}
	id, err := svc.Create(context.Background(), customer)
	require.NoError(err)
	require.NotZero(id)

	stored, ok := store.Customer(id)
	require.True(ok)
	assert.Equal(t, "Omar Farid", stored.FullName)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestUpdate_WritesAuditEntry(t *testing.T) {
	require := require.New(t)
	store := memory.New()
	id := store.SeedCustomer(domain.Customer{FullName: "Omar Farid", Email: "omar@example.com"})
	svc := newTestService(store)

	err := svc.Update(context.Background(), &domain.Customer{
		ID:       id,
		FullName: "Omar A. Farid",
		Email:    "omar@example.com",
	}, "manager-2")
	require.NoError(err)

	stored, _ := store.Customer(id)
	assert.Equal(t, "Omar A. Farid", stored.FullName)

	audits := store.AuditLogs()
	require.Len(audits, 1)
	assert.Equal(t, "Customer", audits[0].EntityName)
	assert.Equal(t, "UpdateCustomer", audits[0].Action)
	assert.Equal(t, "manager-2", audits[0].PerformedBy)
}

func TestDelete_RefusedWhileOwningAccounts(t *testing.T) {
	store := memory.New()
	id := store.SeedCustomer(domain.Customer{FullName: "Omar Farid"})
	store.SeedAccount(domain.Account{CustomerID: id, Balance: decimal.Zero, Status: domain.AccountActive})
	svc := newTestService(store)

	err := svc.Delete(context.Background(), id, "manager-2")
	require.ErrorIs(t, err, domain.ErrCustomerHasAccounts)

	_, ok := store.Customer(id)
	assert.True(t, ok, "customer must survive a refused delete")
	assert.Empty(t, store.AuditLogs())
}

func TestDelete_RemovesAndAudits(t *testing.T) {
	require := require.New(t)
	store := memory.New()
	id := store.SeedCustomer(domain.Customer{FullName: "Omar Farid"})
	svc := newTestService(store)

	err := svc.Delete(context.Background(), id, "manager-2")
	require.NoError(err)

	_, ok := store.Customer(id)
	assert.False(t, ok)

	audits := store.AuditLogs()
	require.Len(audits, 1)
	assert.Equal(t, "DeleteCustomer", audits[0].Action)
}

func TestSummaries_AggregatesAccounts(t *testing.T) {
	require := require.New(t)
	store := memory.New()
	withAccounts := store.SeedCustomer(domain.Customer{FullName: "Omar Farid"})
	without := store.SeedCustomer(domain.Customer{FullName: "Laila Said"})
	store.SeedAccount(domain.Account{CustomerID: withAccounts, Balance: decimal.RequireFromString("120.50"), Status: domain.AccountActive})
	store.SeedAccount(domain.Account{CustomerID: withAccounts, Balance: decimal.RequireFromString("79.50"), Status: domain.AccountFrozen})
	svc := newTestService(store)

	summaries, err := svc.Summaries(context.Background())
	require.NoError(err)
	require.Len(summaries, 2)

	assert.Equal(t, int64(2), summaries[0].TotalAccounts)
	assert.True(t, summaries[0].TotalBalance.Equal(decimal.RequireFromString("200.00")))
	assert.Equal(t, without, summaries[1].CustomerID)
	assert.Equal(t, int64(0), summaries[1].TotalAccounts)
}

func TestSearch_FiltersByName(t *testing.T) {
	require := require.New(t)
	store := memory.New()
	store.SeedCustomer(domain.Customer{FullName: "Omar Farid"})
	store.SeedCustomer(domain.Customer{FullName: "Laila Said"})
	svc := newTestService(store)

	summaries, err := svc.Search(context.Background(), "Laila")
	require.NoError(err)
	require.Len(summaries, 1)
	assert.Equal(t, "Laila Said", summaries[0].FullName)
}

func TestTotalAssets_CountsOnlyActiveAccounts(t *testing.T) {
	require := require.New(t)
	store := memory.New()
	id := store.SeedCustomer(domain.Customer{FullName: "Omar Farid"})
	store.SeedAccount(domain.Account{CustomerID: id, Balance: decimal.RequireFromString("100.00"), Status: domain.AccountActive})
	store.SeedAccount(domain.Account{CustomerID: id, Balance: decimal.RequireFromString("50.00"), Status: domain.AccountFrozen})
	svc := newTestService(store)

	total, err := svc.TotalAssets(context.Background(), id)
	require.NoError(err)
	assert.True(t, total.Equal(decimal.RequireFromString("100.00")), "total: %s", total)
}
