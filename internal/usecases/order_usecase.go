package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
	"voltbay.backend/internal/domain/repositories"
)

// OrderUsecase handles order lifecycle business logic
type OrderUsecase struct {
	orderRepo   repositories.OrderRepository
	paymentRepo repositories.PaymentRepository
	walletRepo  repositories.WalletRepository
	uow         repositories.UnitOfWork
}

// NewOrderUsecase creates a new order usecase
func NewOrderUsecase(
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	walletRepo repositories.WalletRepository,
	uow repositories.UnitOfWork,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		walletRepo:  walletRepo,
		uow:         uow,
	}
}

// GetOrder returns an order visible to its buyer, seller or an admin
func (u *OrderUsecase) GetOrder(ctx context.Context, actorID uuid.UUID, actorRole entities.Role, orderID uuid.UUID) (*entities.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != actorID && order.SellerID != actorID && actorRole != entities.RoleAdmin {
		return nil, domainerrors.Forbidden("not a party to this order")
	}
	return order, nil
}

// ListOrders returns the actor's orders: purchases for buyers, sales
// for sellers.
func (u *OrderUsecase) ListOrders(ctx context.Context, actorID uuid.UUID, asSeller bool, limit, offset int) ([]*entities.Order, int, error) {
	if asSeller {
		return u.orderRepo.ListBySeller(ctx, actorID, limit, offset)
	}
	return u.orderRepo.ListByBuyer(ctx, actorID, limit, offset)
}

// UpdateStatus applies a fulfillment transition with per-role rules:
// sellers ship, buyers or admins confirm delivery, pending orders may
// be cancelled by either party, and refunds are admin-only.
func (u *OrderUsecase) UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRole entities.Role, orderID uuid.UUID, target entities.OrderStatus) (*entities.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransition(target) {
		return nil, domainerrors.UnprocessableEntity("invalid status transition", domainerrors.ErrOrderStateInvalid)
	}

	isAdmin := actorRole == entities.RoleAdmin
	switch target {
	case entities.OrderStatusPaid:
		// Paid is only reachable through the payment and wallet flows.
		return nil, domainerrors.UnprocessableEntity("orders are paid through the payment flow", domainerrors.ErrOrderStateInvalid)
	case entities.OrderStatusShipped:
		if order.SellerID != actorID && !isAdmin {
			return nil, domainerrors.Forbidden("only the seller can ship")
		}
	case entities.OrderStatusDelivered:
		if order.BuyerID != actorID && !isAdmin {
			return nil, domainerrors.Forbidden("only the buyer can confirm delivery")
		}
	case entities.OrderStatusCancelled:
		if order.BuyerID != actorID && order.SellerID != actorID && !isAdmin {
			return nil, domainerrors.Forbidden("not a party to this order")
		}
	case entities.OrderStatusRefunded:
		if !isAdmin {
			return nil, domainerrors.Forbidden("refunds require an admin")
		}
		return u.refund(ctx, order)
	}

	if err := u.orderRepo.UpdateStatus(ctx, orderID, target); err != nil {
		return nil, err
	}
	return u.orderRepo.GetByID(ctx, orderID)
}

// refund flips the order and its payment to refunded. Wallet purchases
// have no gateway payment row; they get a compensating positive ledger
// entry instead.
func (u *OrderUsecase) refund(ctx context.Context, order *entities.Order) (*entities.Order, error) {
	payment, err := u.paymentRepo.GetByOrderID(ctx, order.ID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	paidViaGateway := err == nil && payment.Status == entities.PaymentStatusSucceeded

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.orderRepo.UpdateStatus(ctx, order.ID, entities.OrderStatusRefunded); err != nil {
			return err
		}
		if paidViaGateway {
			return u.paymentRepo.UpdateStatus(ctx, payment.ID, entities.PaymentStatusRefunded)
		}

		wallet, err := u.walletRepo.GetOrCreateByUserID(ctx, order.BuyerID)
		if err != nil {
			return err
		}
		if err := u.walletRepo.CreditBalance(ctx, wallet.ID, order.Amount); err != nil {
			return err
		}
		return u.walletRepo.CreateTransaction(ctx, &entities.WalletTransaction{
			WalletID:  wallet.ID,
			Amount:    order.Amount,
			Type:      entities.WalletTxRefund,
			Status:    entities.WalletTxCompleted,
			Reference: order.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	return u.orderRepo.GetByID(ctx, order.ID)
}
