package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletTransactionType classifies ledger entries
type WalletTransactionType string

const (
	WalletTxDeposit  WalletTransactionType = "DEPOSIT"
	WalletTxPurchase WalletTransactionType = "PURCHASE"
	WalletTxRefund   WalletTransactionType = "REFUND"
)

// WalletTransactionStatus represents ledger entry state
type WalletTransactionStatus string

const (
	WalletTxCompleted WalletTransactionStatus = "COMPLETED"
	WalletTxFailed    WalletTransactionStatus = "FAILED"
)

// Wallet holds a user's denormalized balance. The balance is only ever
// mutated in the same database transaction as a ledger insert.
type Wallet struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// WalletTransaction is an append-only signed-amount ledger row.
// Deposits and refunds are positive, purchases negative.
type WalletTransaction struct {
	ID        uuid.UUID               `json:"id"`
	WalletID  uuid.UUID               `json:"walletId"`
	Amount    decimal.Decimal         `json:"amount"`
	Type      WalletTransactionType   `json:"type"`
	Status    WalletTransactionStatus `json:"status"`
	Reference string                  `json:"reference,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}

// DepositInput represents input for a wallet deposit
type DepositInput struct {
	Amount string `json:"amount" binding:"required"`
}

// WalletPurchaseInput pays a pending order from the wallet balance
type WalletPurchaseInput struct {
	OrderID string `json:"orderId" binding:"required"`
}
