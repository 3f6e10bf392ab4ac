package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
	"voltbay.backend/internal/domain/gateway"
	"voltbay.backend/internal/domain/repositories"
)

// PaymentConfigOptions carries the gateway settings surfaced to clients
// and used for validation.
type PaymentConfigOptions struct {
	PublicKey     string
	MinimumAmount decimal.Decimal
	Currency      string
	FeePercent    decimal.Decimal
}

// PaymentUsecase handles the payment intent workflow
type PaymentUsecase struct {
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	uow         repositories.UnitOfWork
	gw          gateway.PaymentGateway
	cfg         PaymentConfigOptions
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	paymentRepo repositories.PaymentRepository,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	uow repositories.UnitOfWork,
	gw gateway.PaymentGateway,
	cfg PaymentConfigOptions,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		uow:         uow,
		gw:          gw,
		cfg:         cfg,
	}
}

// Config returns the public gateway configuration
func (u *PaymentUsecase) Config() *entities.PaymentConfig {
	return &entities.PaymentConfig{
		PublicKey:             u.cfg.PublicKey,
		MinimumAmount:         u.cfg.MinimumAmount,
		Currency:              u.cfg.Currency,
		PlatformFeePercentage: u.cfg.FeePercent,
	}
}

// CreateIntent validates the request, resolves or creates the pending
// order, and registers an intent with the gateway. All validation runs
// before any gateway contact.
func (u *PaymentUsecase) CreateIntent(ctx context.Context, userID uuid.UUID, input *entities.CreatePaymentIntentInput) (*entities.CreatePaymentIntentResponse, error) {
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, domainerrors.BadRequest("invalid amount")
	}
	if amount.LessThan(u.cfg.MinimumAmount) {
		return nil, domainerrors.BadRequest("amount below the minimum charge")
	}
	if input.ShippingAddress == "" {
		return nil, domainerrors.BadRequest("shipping address is required")
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid product id")
	}

	order, err := u.resolveOrder(ctx, userID, productID, amount, input)
	if err != nil {
		return nil, err
	}

	intent, err := u.gw.CreateIntent(ctx, order.Amount, u.cfg.Currency, map[string]string{
		"order_id": order.ID.String(),
		"user_id":  userID.String(),
	})
	if err != nil {
		return nil, domainerrors.UnprocessableEntity(err.Error(), domainerrors.ErrPaymentFailed)
	}

	payment := &entities.Payment{
		OrderID:  order.ID,
		UserID:   userID,
		IntentID: intent.ID,
		Amount:   order.Amount,
		Currency: u.cfg.Currency,
		Status:   entities.PaymentStatusRequiresPayment,
	}
	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return &entities.CreatePaymentIntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		OrderID:         order.ID,
	}, nil
}

// ConfirmPayment re-fetches the intent from the gateway and, only when
// the gateway itself reports success, marks the payment succeeded and
// advances the order to paid in one transaction. Client-reported
// success is never trusted.
func (u *PaymentUsecase) ConfirmPayment(ctx context.Context, userID uuid.UUID, input *entities.ConfirmPaymentInput) (*entities.Payment, error) {
	payment, err := u.paymentRepo.GetByIntentID(ctx, input.PaymentIntentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, domainerrors.Forbidden("payment belongs to another user")
	}
	if payment.Status == entities.PaymentStatusSucceeded {
		return payment, nil
	}

	intent, err := u.gw.GetIntent(ctx, input.PaymentIntentID)
	if err != nil {
		return nil, domainerrors.UnprocessableEntity(err.Error(), domainerrors.ErrPaymentFailed)
	}
	if intent.Status != gateway.IntentSucceeded {
		return nil, domainerrors.UnprocessableEntity("payment has not succeeded at the gateway", domainerrors.ErrPaymentFailed)
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		order, err := u.orderRepo.GetByID(ctx, payment.OrderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransition(entities.OrderStatusPaid) {
			return domainerrors.ErrOrderStateInvalid
		}
		if err := u.paymentRepo.UpdateStatus(ctx, payment.ID, entities.PaymentStatusSucceeded); err != nil {
			return err
		}
		return u.orderRepo.UpdateStatus(ctx, order.ID, entities.OrderStatusPaid)
	})
	if err != nil {
		return nil, err
	}

	return u.paymentRepo.GetByID(ctx, payment.ID)
}

// History returns the user's payments, newest first
func (u *PaymentUsecase) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Payment, int, error) {
	return u.paymentRepo.ListByUser(ctx, userID, limit, offset)
}

// resolveOrder returns the order being paid. Auction winners reference
// the settlement order; buy-now purchases create one on the spot.
func (u *PaymentUsecase) resolveOrder(ctx context.Context, userID, productID uuid.UUID, amount decimal.Decimal, input *entities.CreatePaymentIntentInput) (*entities.Order, error) {
	if input.OrderID != "" {
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
		return order, nil
	}

	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID == userID {
		return nil, domainerrors.Forbidden("cannot buy own listing")
	}
	if product.Status != entities.ProductStatusActive {
		return nil, domainerrors.UnprocessableEntity("product is not available", domainerrors.ErrInvalidInput)
	}
	if product.IsAuction && product.BuyNowPrice == nil {
		return nil, domainerrors.UnprocessableEntity("auction listings are paid through winning bids", domainerrors.ErrInvalidInput)
	}

	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	unit := product.Price
	if product.IsAuction && product.BuyNowPrice != nil {
		unit = *product.BuyNowPrice
		quantity = 1
	}
	expected := unit.Mul(decimal.NewFromInt(int64(quantity)))
	if !amount.Equal(expected) {
		return nil, domainerrors.BadRequest("amount does not match the listing price")
	}

	split := entities.SplitFee(amount, u.cfg.FeePercent)
	order := &entities.Order{
		BuyerID:         userID,
		SellerID:        product.SellerID,
		ProductID:       product.ID,
		Quantity:        quantity,
		Amount:          split.Amount,
		PlatformFee:     split.PlatformFee,
		SellerPayout:    split.SellerPayout,
		ShippingAddress: input.ShippingAddress,
		Status:          entities.OrderStatusPending,
		FromAuction:     false,
	}
	if err := u.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
