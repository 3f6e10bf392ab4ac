package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// PaymentStatus mirrors the gateway's intent lifecycle
type PaymentStatus string

const (
	PaymentStatusRequiresPayment PaymentStatus = "REQUIRES_PAYMENT"
	PaymentStatusProcessing      PaymentStatus = "PROCESSING"
	PaymentStatusSucceeded       PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed          PaymentStatus = "FAILED"
	PaymentStatusRefunded        PaymentStatus = "REFUNDED"
)

// Payment tracks an external payment intent linked to an order.
type Payment struct {
	ID             uuid.UUID       `json:"id"`
	OrderID        uuid.UUID       `json:"orderId"`
	UserID         uuid.UUID       `json:"userId"`
	IntentID       string          `json:"paymentIntentId"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Status         PaymentStatus   `json:"status"`
	FailureMessage null.String     `json:"failureMessage,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	DeletedAt      *time.Time      `json:"-"`

	// Joins
	Order *Order `json:"order,omitempty"`
}

// CreatePaymentIntentInput represents input for starting a payment
type CreatePaymentIntentInput struct {
	ProductID       string `json:"productId" binding:"required"`
	OrderID         string `json:"orderId"`
	Amount          string `json:"amount" binding:"required"`
	Quantity        int    `json:"quantity"`
	ShippingAddress string `json:"shippingAddress" binding:"required"`
}

// CreatePaymentIntentResponse is returned after intent creation
type CreatePaymentIntentResponse struct {
	PaymentIntentID string    `json:"paymentIntentId"`
	ClientSecret    string    `json:"clientSecret"`
	OrderID         uuid.UUID `json:"orderId"`
}

// ConfirmPaymentInput represents input for confirming a payment
type ConfirmPaymentInput struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}

// PaymentConfig is the public gateway configuration surfaced to clients.
type PaymentConfig struct {
	PublicKey             string          `json:"publicKey"`
	MinimumAmount         decimal.Decimal `json:"minimumAmount"`
	Currency              string          `json:"currency"`
	PlatformFeePercentage decimal.Decimal `json:"platformFeePercentage"`
}

// FeeSplit is the computed platform fee breakdown for a sale amount.
type FeeSplit struct {
	Amount       decimal.Decimal `json:"amount"`
	PlatformFee  decimal.Decimal `json:"platformFee"`
	SellerPayout decimal.Decimal `json:"sellerPayout"`
}

// SplitFee computes the platform fee and seller payout for an amount.
// The split is recorded on the order for reporting; payout execution
// stays manual.
func SplitFee(amount, feePercent decimal.Decimal) FeeSplit {
	fee := amount.Mul(feePercent).Div(decimal.NewFromInt(100)).Round(2)
	return FeeSplit{
		Amount:       amount,
		PlatformFee:  fee,
		SellerPayout: amount.Sub(fee),
	}
}
