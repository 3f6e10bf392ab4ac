package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
	"voltbay.backend/internal/domain/repositories"
)

// WalletUsecase handles the wallet ledger business logic. Every balance
// mutation shares a transaction with its ledger row, so the balance is
// always the sum of the signed ledger amounts.
type WalletUsecase struct {
	walletRepo repositories.WalletRepository
	orderRepo  repositories.OrderRepository
	uow        repositories.UnitOfWork
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(
	walletRepo repositories.WalletRepository,
	orderRepo repositories.OrderRepository,
	uow repositories.UnitOfWork,
) *WalletUsecase {
	return &WalletUsecase{
		walletRepo: walletRepo,
		orderRepo:  orderRepo,
		uow:        uow,
	}
}

// GetWallet returns the user's wallet, creating it on first touch
func (u *WalletUsecase) GetWallet(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	return u.walletRepo.GetOrCreateByUserID(ctx, userID)
}

// ListTransactions returns the user's ledger, newest first
func (u *WalletUsecase) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.WalletTransaction, int, error) {
	wallet, err := u.walletRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return u.walletRepo.ListTransactions(ctx, wallet.ID, limit, offset)
}

// Deposit credits the wallet and appends the matching ledger row
func (u *WalletUsecase) Deposit(ctx context.Context, userID uuid.UUID, input *entities.DepositInput) (*entities.Wallet, error) {
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, domainerrors.BadRequest("invalid deposit amount")
	}

	wallet, err := u.walletRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.walletRepo.CreditBalance(ctx, wallet.ID, amount); err != nil {
			return err
		}
		return u.walletRepo.CreateTransaction(ctx, &entities.WalletTransaction{
			WalletID: wallet.ID,
			Amount:   amount,
			Type:     entities.WalletTxDeposit,
			Status:   entities.WalletTxCompleted,
		})
	})
	if err != nil {
		return nil, err
	}

	return u.walletRepo.GetByUserID(ctx, userID)
}

// PurchaseOrder pays a pending order from the wallet balance. The
// debit, the negative ledger row and the order flip commit together;
// an insufficient balance aborts the whole transaction.
func (u *WalletUsecase) PurchaseOrder(ctx context.Context, userID uuid.UUID, input *entities.WalletPurchaseInput) (*entities.Order, error) {
	orderID, err := uuid.Parse(input.OrderID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid order id")
	}

	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != userID {
		return nil, domainerrors.Forbidden("order belongs to another buyer")
	}
	if order.Status != entities.OrderStatusPending {
		return nil, domainerrors.UnprocessableEntity("order is not awaiting payment", domainerrors.ErrOrderStateInvalid)
	}

	wallet, err := u.walletRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		debited, err := u.walletRepo.DebitBalance(ctx, wallet.ID, order.Amount)
		if err != nil {
			return err
		}
		if !debited {
			return domainerrors.ErrInsufficientFunds
		}
		if err := u.walletRepo.CreateTransaction(ctx, &entities.WalletTransaction{
			WalletID:  wallet.ID,
			Amount:    order.Amount.Neg(),
			Type:      entities.WalletTxPurchase,
			Status:    entities.WalletTxCompleted,
			Reference: order.ID.String(),
		}); err != nil {
			return err
		}
		return u.orderRepo.UpdateStatus(ctx, order.ID, entities.OrderStatusPaid)
	})
	if err != nil {
		return nil, err
	}

	return u.orderRepo.GetByID(ctx, orderID)
}
