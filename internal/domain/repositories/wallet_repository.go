package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"voltbay.backend/internal/domain/entities"
)

// WalletRepository defines wallet and ledger data operations.
// Balance mutations and ledger inserts must share a transaction; the
// usecase layer wraps them in a UnitOfWork.
type WalletRepository interface {
	GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)

	// CreditBalance unconditionally adds amount to the wallet balance.
	CreditBalance(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) error

	// DebitBalance subtracts amount only when the balance covers it.
	// Returns false when the conditional update matched no row.
	DebitBalance(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (bool, error)

	CreateTransaction(ctx context.Context, tx *entities.WalletTransaction) error
	ListTransactions(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entities.WalletTransaction, int, error)
}
