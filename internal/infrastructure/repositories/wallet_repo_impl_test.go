package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
)

func TestWalletRepository_GetOrCreate(t *testing.T) {
	db := newTestDB(t)
	createWalletTables(t, db)
	repo := NewWalletRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	_, err := repo.GetByUserID(ctx, userID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	w, err := repo.GetOrCreateByUserID(ctx, userID)
	require.NoError(t, err)
	require.True(t, w.Balance.IsZero())
	require.Equal(t, "USD", w.Currency)

	// second call returns the same wallet
	again, err := repo.GetOrCreateByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, w.ID, again.ID)
}

func TestWalletRepository_CreditAndDebit(t *testing.T) {
	db := newTestDB(t)
	createWalletTables(t, db)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	w, err := repo.GetOrCreateByUserID(ctx, uuid.New())
	require.NoError(t, err)

	require.NoError(t, repo.CreditBalance(ctx, w.ID, decimal.NewFromInt(100)))
	require.NoError(t, repo.CreditBalance(ctx, w.ID, decimal.RequireFromString("25.50")))

	got, err := repo.GetByUserID(ctx, w.UserID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.RequireFromString("125.50")), "balance=%s", got.Balance)

	ok, err := repo.DebitBalance(ctx, w.ID, decimal.NewFromInt(100))
	require.NoError(t, err)
	require.True(t, ok)

	// insufficient balance leaves the row untouched
	ok, err = repo.DebitBalance(ctx, w.ID, decimal.NewFromInt(100))
	require.NoError(t, err)
	require.False(t, ok)

	got, err = repo.GetByUserID(ctx, w.UserID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.RequireFromString("25.50")), "balance=%s", got.Balance)

	require.ErrorIs(t, repo.CreditBalance(ctx, uuid.New(), decimal.NewFromInt(1)), domainerrors.ErrNotFound)
}

func TestWalletRepository_Ledger(t *testing.T) {
	db := newTestDB(t)
	createWalletTables(t, db)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	w, err := repo.GetOrCreateByUserID(ctx, uuid.New())
	require.NoError(t, err)

	require.NoError(t, repo.CreateTransaction(ctx, &entities.WalletTransaction{
		WalletID:  w.ID,
		Amount:    decimal.NewFromInt(100),
		Type:      entities.WalletTxDeposit,
		Status:    entities.WalletTxCompleted,
		Reference: "pi_dep_1",
	}))
	require.NoError(t, repo.CreateTransaction(ctx, &entities.WalletTransaction{
		WalletID: w.ID,
		Amount:   decimal.NewFromInt(-40),
		Type:     entities.WalletTxPurchase,
		Status:   entities.WalletTxCompleted,
	}))

	txs, total, err := repo.ListTransactions(ctx, w.ID, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, txs, 2)

	// ledger sum matches what the balance mutations would produce
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}
	require.True(t, sum.Equal(decimal.NewFromInt(60)))
}
